package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mediaconform/internal/jobs"
)

func NewMigrateCommand(globalOptions *GlobalOptions) *cobra.Command {

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Job ledger schema migration tools",
		Long:  `Manage the job ledger's database schema. Use subcommand 'up'.`,
	}

	var upCmd = &cobra.Command{
		Use:   "up",
		Short: "Migrate the job ledger to the most recent schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(globalOptions)
		},
	}

	migrateCmd.AddCommand(upCmd)

	return migrateCmd
}

func runMigration(globalOptions *GlobalOptions) error {
	store, err := jobs.Open(globalOptions.Conf.Jobs.DatabasePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate job ledger: %w", err)
	}
	globalOptions.Logger.Info("job ledger schema is up to date")
	return nil
}
