// internal/cli/migrate.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mybudget/internal/config"
	"mybudget/internal/util"
	"mybudget/pkg/db"
)

// NewMigrateCommand creates the migrate command group.
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(newMigrateUpCommand())
	cmd.AddCommand(newMigrateDownCommand())
	cmd.AddCommand(newMigrateVersionCommand())

	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "up",
		Short:         "Apply all pending migrations",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMigrationConfig()
			if err != nil {
				return err
			}
			if err := db.MigrateUp(cfg.DB); err != nil {
				return err
			}
			util.GetLogger().Info("Migrations applied", "database", cfg.DB.DBName)
			return nil
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Revert migrations",
		Long: `Revert migrations. With --steps 0 every migration is reverted,
which drops all envelopes and transactions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 0 {
				return fmt.Errorf("invalid --steps %d: must not be negative", steps)
			}
			cfg, err := loadMigrationConfig()
			if err != nil {
				return err
			}
			if err := db.MigrateDown(cfg.DB, steps); err != nil {
				return err
			}
			util.GetLogger().Info("Migrations reverted", "database", cfg.DB.DBName, "steps", steps)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to revert (0 = all)")

	return cmd
}

func newMigrateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the current schema version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadMigrationConfig()
			if err != nil {
				return err
			}
			version, dirty, err := db.MigrationVersion(cfg.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	}
}

func loadMigrationConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	util.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}
