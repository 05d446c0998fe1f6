package kernel

import (
	"context"
	"log/slog"
	"time"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/config"
	"github.com/aryankumar/chunkflow/internal/executor"
	"github.com/aryankumar/chunkflow/internal/output"
	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// shutdownGrace bounds how long a command waits for idle workers to exit
const shutdownGrace = 5 * time.Second

// addPartitionerFlags registers the flags shared by run and plan
func addPartitionerFlags(cmd *cobra.Command) {
	cmd.Flags().Int("size", 0, "number of elements in the synthetic sequence (default from config, 1000)")
	cmd.Flags().String("partitioner", "", "partitioner kind (static, dynamic)")
	cmd.Flags().Int("chunk-size", 0, "static chunk size (0 = auto) or dynamic minimum chunk size")
	cmd.Flags().String("profile", "", "use a partitioner preset from the config file")
}

// sizeFlag returns --size, falling back to the configured default
func sizeFlag(cmd *cobra.Command) (int, error) {
	size := viper.GetInt("size")
	if cmd.Flags().Changed("size") {
		size, _ = cmd.Flags().GetInt("size")
	}
	if size < 0 {
		return 0, util.NewRangeError("size", size, "must not be negative")
	}
	return size, nil
}

// resolvePartitioner builds the partitioner from --profile, or from
// --partitioner and --chunk-size layered over the configured defaults
func resolvePartitioner(cmd *cobra.Command) (chunk.Partitioner, error) {
	if profile, _ := cmd.Flags().GetString("profile"); profile != "" {
		mgr := config.NewManager(viper.GetString("config"))
		if _, err := mgr.Load(); err != nil {
			return nil, err
		}
		return mgr.Partitioner(profile)
	}

	kind := viper.GetString("partitioner")
	if cmd.Flags().Changed("partitioner") {
		kind, _ = cmd.Flags().GetString("partitioner")
	}

	size := viper.GetInt("chunk-size")
	if chunk.Kind(kind) == chunk.KindDynamic {
		size = viper.GetInt("min-chunk-size")
	}
	if cmd.Flags().Changed("chunk-size") {
		size, _ = cmd.Flags().GetInt("chunk-size")
	}

	return chunk.Parse(kind, size)
}

// newFormatter returns the formatter selected by --output
func newFormatter(wide bool) (output.Formatter, error) {
	format := output.Format(viper.GetString("output"))
	switch format {
	case "":
		format = output.FormatTable
	case output.FormatTable, output.FormatJSON, output.FormatYAML:
	default:
		return nil, util.NewValidationError("output", format, "must be one of: table, json, yaml")
	}

	return output.NewFormatter(format,
		output.WithNoColor(viper.GetBool("no-color")),
		output.WithWide(wide),
	), nil
}

// startExecutor creates the worker pool sized by --workers.
// The returned stop function shuts it down.
func startExecutor(logger *slog.Logger) (*executor.Executor, func(), error) {
	ex, err := executor.New(viper.GetInt("workers"), logger)
	if err != nil {
		return nil, nil, err
	}

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		if err := ex.Shutdown(ctx); err != nil {
			logger.Warn("executor shutdown incomplete", "error", err)
		}
	}
	return ex, stop, nil
}
