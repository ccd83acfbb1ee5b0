// Package main is the entry point for the flutterweb build tool.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlsoShantanuBorkar/flutter/cmd/flutterweb/commands"
	"github.com/AlsoShantanuBorkar/flutter/internal/app"
	_ "github.com/AlsoShantanuBorkar/flutter/internal/wiring"
	"github.com/grindlemire/graft"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(components)
	cli.SetArgs(args)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return 1
	}
	return 0
}
