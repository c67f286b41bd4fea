// Command fleetctl is the operator CLI: it works directly against the
// TireTrack database for tasks that should not go through the HTTP API,
// like bootstrapping the first account.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiretrack/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath string

	rootCmd := &cobra.Command{
		Use:           "fleetctl",
		Short:         "TireTrack operator CLI",
		Long:          "Administrative tasks against the TireTrack database: account bootstrap, seeding, and password tooling.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = os.Getenv("DB_PATH")
			}
			if dbPath == "" {
				dbPath = "tiretrack.sqlite"
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (default $DB_PATH or tiretrack.sqlite)")

	rootCmd.AddCommand(newCreateUserCmd(&dbPath))
	rootCmd.AddCommand(newSeedCmd(&dbPath))
	rootCmd.AddCommand(newHashPasswordCmd())
	return rootCmd
}
