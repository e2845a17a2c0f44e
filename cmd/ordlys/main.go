// ordlys highlights known Norwegian vocabulary in web pages and text.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/japaniel/ordlys/cmd/ordlys/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
