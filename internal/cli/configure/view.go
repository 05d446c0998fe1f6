package configure

import (
	"log/slog"

	"github.com/aryankumar/chunkflow/internal/config"
	"github.com/aryankumar/chunkflow/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newViewCmd creates the config view command
func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration after merging the config file,
CHUNKFLOW_* environment variables and command-line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd)
		},
	}

	return cmd
}

func runView(cmd *cobra.Command) error {
	logger := slog.Default()

	mgr, err := loadManager()
	if err != nil {
		return err
	}
	if err := mgr.Validate(); err != nil {
		logger.Warn("configuration has problems", "error", err)
	}

	part, err := effectivePartitioner(mgr)
	if err != nil {
		return err
	}

	settings := map[string]interface{}{
		"configFile":  mgr.ConfigFileUsed(),
		"workers":     viper.GetInt("workers"),
		"partitioner": part,
		"size":        viper.GetInt("size"),
		"timeout":     viper.GetDuration("timeout").String(),
		"output":      viper.GetString("output"),
		"noColor":     viper.GetBool("no-color"),
		"profiles":    len(mgr.ProfileNames()),
	}

	return formatter().Format(cmd.OutOrStdout(), settings)
}

// effectivePartitioner describes the default partitioner with env overrides applied
func effectivePartitioner(mgr *config.Manager) (string, error) {
	d := &mgr.GetConfig().Defaults
	d.Partitioner = viper.GetString("partitioner")
	d.ChunkSize = viper.GetInt("chunk-size")
	d.MinChunkSize = viper.GetInt("min-chunk-size")

	p, err := mgr.Partitioner("")
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

func formatter() output.Formatter {
	return output.NewFormatter(output.Format(viper.GetString("output")),
		output.WithNoColor(viper.GetBool("no-color")))
}
