// Package main is the entry point for the weeklyctl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rezkam/weekly/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.NewRootCommand(cli.Deps{}, version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
