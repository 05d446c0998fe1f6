package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/aryankumar/chunkflow/internal/cli/configure"
	"github.com/aryankumar/chunkflow/internal/cli/kernel"
	"github.com/aryankumar/chunkflow/internal/config"
	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/aryankumar/chunkflow/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chunkflow",
		Short: "Chunkflow - chunked parallel loops over a worker pool",
		Long: `Chunkflow runs data-parallel loops over index ranges and slices.

It splits an iteration space into chunks with a static or dynamic
partitioner, dispatches chunk tasks to a fixed-size worker pool, and
reports how the work was scheduled.`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd)
		},
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Define persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chunkflow.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (json, yaml, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().Duration("timeout", 30*time.Second, "timeout for operations")
	rootCmd.PersistentFlags().IntP("workers", "w", 0, "number of executor workers (default is the number of CPUs)")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(kernel.NewRunCmd())
	rootCmd.AddCommand(kernel.NewPlanCmd())
	rootCmd.AddCommand(configure.NewConfigCmd())

	return rootCmd
}

// initConfig loads the config file and seeds viper defaults from it, then sets up logging
func initConfig(cmd *cobra.Command) error {
	mgr := config.NewManager(cfgFile)
	cfg, err := mgr.Load()
	if err != nil {
		return err
	}

	// Flags and CHUNKFLOW_* environment variables take precedence over these
	d := cfg.Defaults
	viper.SetDefault("workers", d.Workers)
	viper.SetDefault("output", d.OutputFormat)
	viper.SetDefault("no-color", d.NoColor)
	viper.SetDefault("timeout", d.Timeout)
	viper.SetDefault("partitioner", d.Partitioner)
	viper.SetDefault("chunk-size", d.ChunkSize)
	viper.SetDefault("min-chunk-size", d.MinChunkSize)
	viper.SetDefault("size", d.Size)

	viper.SetEnvPrefix("CHUNKFLOW")
	viper.AutomaticEnv()

	// Setup structured logging
	setupLogging(cmd)

	if file := mgr.ConfigFileUsed(); file != "" {
		slog.Debug("loaded configuration", "file", file)
	}

	if workers := viper.GetInt("workers"); workers < 1 {
		return util.NewValidationError("workers", workers, "must be at least 1")
	}

	return nil
}

// setupLogging configures structured logging with slog
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor := viper.GetBool("no-color")

	// Set log level based on verbose flag
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if noColor {
		// Use JSON handler for no-color mode
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))

	if verbose {
		slog.Debug("verbose logging enabled")
	}
}
