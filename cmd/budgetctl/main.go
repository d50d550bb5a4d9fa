package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tripbudget/backend/internal/cli"
)

// This is set at build time with -ldflags "-X main.version=..."
var version = "0.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
