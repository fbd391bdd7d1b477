package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trackr-io/trackr/internal/interfaces/cli/migrate"
	"github.com/trackr-io/trackr/internal/interfaces/cli/seed"
	"github.com/trackr-io/trackr/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "trackr",
		Short:        "Trackr - project and ticket tracking",
		Long:         `Trackr serves the ticket tracking API and ships the migration and seed tools that manage its database.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
