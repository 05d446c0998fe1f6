package configure

import (
	"fmt"
	"log/slog"

	"github.com/aryankumar/chunkflow/internal/config"
	"github.com/aryankumar/chunkflow/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newProfilesCmd creates the config profiles command
func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Short:   "List partitioner profiles",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadManager()
			if err != nil {
				return err
			}

			table := output.Table{
				Headers: []string{"NAME", "PARTITIONER", "DESCRIPTION"},
			}
			for _, name := range mgr.ProfileNames() {
				p, _ := mgr.GetProfile(name)
				desc := "-"
				if part, err := mgr.Partitioner(name); err == nil {
					desc = part.String()
				}
				table.Rows = append(table.Rows, []string{name, desc, p.Description})
			}

			if len(table.Rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No profiles configured")
				return nil
			}
			return formatter().Format(cmd.OutOrStdout(), table)
		},
	}

	return cmd
}

// newSetProfileCmd creates the config set-profile command
func newSetProfileCmd() *cobra.Command {
	var (
		kind        string
		size        int
		description string
	)

	cmd := &cobra.Command{
		Use:   "set-profile NAME",
		Short: "Create or replace a partitioner profile",
		Example: `  # Fine-grained dynamic scheduling
  chunkflow config set-profile fine --partitioner dynamic --chunk-size 1

  # Fixed static chunks of 64
  chunkflow config set-profile blocks --partitioner static --chunk-size 64 --description "cache-sized blocks"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadManager()
			if err != nil {
				return err
			}

			name := args[0]
			if err := mgr.SetProfile(name, config.ProfileConfig{
				Partitioner: kind,
				ChunkSize:   size,
				Description: description,
			}); err != nil {
				return err
			}
			if err := mgr.Save(); err != nil {
				return err
			}

			slog.Debug("saved profile", "profile", name, "partitioner", kind, "chunk_size", size)
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q saved\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "partitioner", "static", "partitioner kind (static, dynamic)")
	cmd.Flags().IntVar(&size, "chunk-size", 0, "static chunk size (0 = auto) or dynamic minimum chunk size")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")

	return cmd
}

// newRemoveProfileCmd creates the config remove-profile command
func newRemoveProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove-profile NAME",
		Short:   "Remove a partitioner profile",
		Aliases: []string{"rm-profile"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := loadManager()
			if err != nil {
				return err
			}

			name := args[0]
			if _, ok := mgr.GetProfile(name); !ok {
				return fmt.Errorf("profile %q not found", name)
			}
			mgr.RemoveProfile(name)
			if err := mgr.Save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Profile %q removed (%d remaining)\n", name, len(mgr.ProfileNames()))
			return nil
		},
	}

	return cmd
}

func loadManager() (*config.Manager, error) {
	mgr := config.NewManager(viper.GetString("config"))
	if _, err := mgr.Load(); err != nil {
		return nil, err
	}
	return mgr, nil
}
