package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aryankumar/chunkflow/internal/output"
	"github.com/aryankumar/chunkflow/internal/parallel"
	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	var (
		target int
		repeat int
		wide   bool
	)

	cmd := &cobra.Command{
		Use:   "run KERNEL",
		Short: "Run a parallel kernel over a synthetic sequence",
		Long: fmt.Sprintf(`Run a parallel kernel over the sequence [0, size).

Each invocation is partitioned, dispatched to the worker pool and wrapped
in a counting hook. The report shows how many chunk tasks were dispatched,
how many chunks they claimed, how many elements were visited and the
kernel result.

Available kernels: %s`, strings.Join(kernelNames(), ", ")),
		Example: `  # Sum [0, 1000) with the default partitioner
  chunkflow run for-each-index

  # Search with dynamic chunks of at least 16 elements
  chunkflow run find-if --size 100000 --target 4242 --partitioner dynamic --chunk-size 16

  # Repeat a run three times on 8 workers and show per-task results
  chunkflow run transform -w 8 --repeat 3 --wide

  # Use a preset from the config file
  chunkflow run for-each --profile fine -o json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: kernelNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("target") {
				target = -1
			}
			return runKernel(cmd, args[0], target, repeat, wide)
		},
	}

	addPartitionerFlags(cmd)
	cmd.Flags().IntVar(&target, "target", 0, "search key for find-if and find-if-not (default size/2)")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "number of times to run the kernel")
	cmd.Flags().BoolVar(&wide, "wide", false, "show per-task results")

	return cmd
}

func runKernel(cmd *cobra.Command, name string, target, repeat int, wide bool) error {
	logger := slog.Default()

	wl, ok := workloads[name]
	if !ok {
		return util.NewValidationError("kernel", name, "must be one of: "+strings.Join(kernelNames(), ", "))
	}
	if repeat < 1 {
		return util.NewValidationError("repeat", repeat, "must be at least 1")
	}

	size, err := sizeFlag(cmd)
	if err != nil {
		return err
	}
	if target < 0 {
		target = size / 2
	}

	part, err := resolvePartitioner(cmd)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(wide)
	if err != nil {
		return err
	}

	ex, stop, err := startExecutor(logger)
	if err != nil {
		return err
	}
	defer stop()

	logger.Debug("running kernel",
		"kernel", name,
		"partitioner", part.String(),
		"workers", ex.WorkerCount(),
		"size", size,
		"repeat", repeat)

	// Execute runs with timeout
	timeout := viper.GetDuration("timeout")
	execCtx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var (
		counter parallel.Counter
		visited atomic.Int64
		reports = make([]output.Report, 0, repeat)
	)
	hook := parallel.Chain(&counter, parallel.LogHook(logger))

	for i := 1; i <= repeat; i++ {
		counter.Reset()
		visited.Store(0)

		var stats parallel.Stats
		start := time.Now()
		result, err := wl(execCtx, ex, size, target, part, &visited, []parallel.Option{
			parallel.WithHook(hook),
			parallel.WithName(name),
			parallel.WithStats(&stats),
		})
		if err != nil {
			return fmt.Errorf("run %d: %w", i, err)
		}

		reports = append(reports, output.Report{
			Run:         i,
			Kernel:      name,
			Partitioner: stats.Partitioner,
			Workers:     ex.WorkerCount(),
			Size:        size,
			Dispatches:  counter.Count(),
			Tasks:       stats.Tasks,
			Chunks:      stats.Chunks,
			Visited:     int(visited.Load()),
			Result:      result,
			Duration:    time.Since(start),
			Results:     stats.Results,
		})
	}

	return formatter.FormatReports(cmd.OutOrStdout(), reports)
}
