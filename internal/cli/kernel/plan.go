package kernel

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/output"
	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewPlanCmd creates the plan command
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the chunks a partitioner produces",
		Long: `Show how a partitioner splits [0, size) for the configured worker count.

Static plans list the chunks owned by each task. Dynamic plans are claimed
at run time from a shared cursor, so the chunks are listed in claim order
and may be taken by any task. The plan is checked to cover every position
exactly once.`,
		Example: `  # Auto static plan for 100 elements on 4 workers
  chunkflow plan --size 100 -w 4

  # Fixed chunks of 7
  chunkflow plan --size 50 --chunk-size 7

  # Dynamic claims with a minimum of 4
  chunkflow plan --size 100 --partitioner dynamic --chunk-size 4 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd)
		},
	}

	addPartitionerFlags(cmd)

	return cmd
}

func runPlan(cmd *cobra.Command) error {
	logger := slog.Default()

	size, err := sizeFlag(cmd)
	if err != nil {
		return err
	}

	part, err := resolvePartitioner(cmd)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(false)
	if err != nil {
		return err
	}

	workers := viper.GetInt("workers")
	plan, err := part.Plan(size, workers)
	if err != nil {
		return err
	}

	perTask := chunk.Collect(plan)
	table, all := planTable(part, perTask)

	if err := chunk.Verify(all, size); err != nil {
		return util.WrapErrorf(err, "plan %s", part)
	}

	logger.Debug("planned",
		"partitioner", part.String(),
		"workers", workers,
		"size", size,
		"tasks", plan.Tasks(),
		"chunks", len(all))

	return formatter.Format(cmd.OutOrStdout(), table)
}

// planTable lists one row per chunk and returns the flattened chunks
func planTable(part chunk.Partitioner, perTask [][]chunk.Chunk) (output.Table, []chunk.Chunk) {
	shared := part.Kind() == chunk.KindDynamic

	table := output.Table{
		Headers: []string{"CHUNK", "TASK", "RANGE", "LEN"},
	}
	var all []chunk.Chunk

	for t, chunks := range perTask {
		for _, c := range chunks {
			task := strconv.Itoa(t)
			if shared {
				task = fmt.Sprintf("any of %d", len(perTask))
			}
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(len(all)),
				task,
				c.String(),
				strconv.Itoa(c.Len()),
			})
			all = append(all, c)
		}
	}
	return table, all
}
