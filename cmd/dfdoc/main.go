package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/simonhull/dfdoc/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()
	commands.Register(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
