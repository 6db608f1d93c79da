// Package main is the entrypoint of vidpick.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidpick/internal/cfg"
	"vidpick/internal/domain/paths"
	"vidpick/internal/utils/logging"
)

func main() {
	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "vidpick exiting with error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.InitCommands(); err != nil {
		fmt.Fprintf(os.Stderr, "vidpick exiting with error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cfg.Execute(ctx)

	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}
