package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/fieldops/internal/cli"
	"github.com/example/fieldops/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "fieldops",
		Short:   "fieldops - job dispatch for property inspections",
		Version: version.String(),
		Long: `fieldops is a CLI tool for managing property inspection jobs.
It drives jobs through their lifecycle (create, assign, start, check-in,
complete), schedules clerks, and keeps a full assignment audit trail.`,
	}

	rootCmd.PersistentFlags().String("actor", "", "Acting user ID (overrides .fieldops/config.json)")

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.JobCmd())
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.PropertyCmd())
	rootCmd.AddCommand(cli.NotificationCmd())
	rootCmd.AddCommand(cli.AvailabilityCmd())
	rootCmd.AddCommand(cli.InvoiceCmd())
	rootCmd.AddCommand(cli.MessageCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
