// File: cmd/pixdrop/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// Explicitly import provider implementations to ensure their init() functions run and they register themselves
	_ "pixdrop/internal/provider"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
