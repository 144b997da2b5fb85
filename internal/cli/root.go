// internal/cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command. Without a subcommand it serves the API.
func NewRootCommand() *cobra.Command {
	serveOpts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "mybudget",
		Short: "Envelope budgeting API",
		Long: `mybudget tracks named budget envelopes and the money moving in and out of them.

Configuration is read from the environment and an optional .env file
(PORT, PGHOST, PGPORT, PGUSER, PGPASSWORD, PGDATABASE, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, serveOpts)
		},
	}

	cmd.AddCommand(NewServeCommand(serveOpts))
	cmd.AddCommand(NewMigrateCommand())

	return cmd
}
