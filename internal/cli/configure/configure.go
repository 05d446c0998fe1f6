package configure

import (
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config management command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit chunkflow configuration",
		Long: `Inspect and edit the chunkflow configuration file.

This command provides subcommands for viewing the effective settings
and for managing named partitioner profiles.`,
	}

	// Add subcommands
	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newProfilesCmd())
	cmd.AddCommand(newSetProfileCmd())
	cmd.AddCommand(newRemoveProfileCmd())

	return cmd
}
