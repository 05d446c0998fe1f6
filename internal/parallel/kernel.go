package parallel

import (
	"context"
	"errors"
	"fmt"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/executor"
	"github.com/aryankumar/chunkflow/internal/util"
)

// chunkBody processes one chunk for task t and reports whether the task is done
type chunkBody func(t int, c chunk.Chunk) (stop bool)

// taskTally is written only by its own task and read after the batch completes
type taskTally struct {
	chunks  int
	claimed int
}

func validate(ex *executor.Executor, part chunk.Partitioner, missingOp bool) error {
	switch {
	case ex == nil:
		return util.NewValidationError("executor", nil, "must not be nil")
	case part == nil:
		return util.NewValidationError("partitioner", nil, "must not be nil")
	case missingOp:
		return util.NewValidationError("op", nil, "must not be nil")
	}
	return nil
}

// run plans [0, n), dispatches one hooked task per plan slot and waits for all of them
func run(ctx context.Context, ex *executor.Executor, n int, part chunk.Partitioner, o *options, body chunkBody) error {
	plan, err := part.Plan(n, ex.WorkerCount())
	if err != nil {
		return err
	}
	if tasks := plan.Tasks(); tasks < 0 || tasks > ex.WorkerCount() {
		return fmt.Errorf("%s: %w: %s planned %d tasks for %d workers", o.name, util.ErrCoverage, part, tasks, ex.WorkerCount())
	}

	tallies := make([]taskTally, plan.Tasks())
	if plan.Tasks() == 0 {
		o.record(part, tallies, nil)
		return nil
	}

	tasks := make([]executor.Task, plan.Tasks())
	for t := range tasks {
		t, src := t, plan.Source(t)
		tasks[t] = executor.Task{
			Name: fmt.Sprintf("%s/%d", o.name, t),
			Execute: func(ctx context.Context) error {
				var err error
				o.hook.Invoke(func() {
					err = drain(ctx, t, src, body, &tallies[t])
				})
				return err
			},
		}
	}

	h := ex.Run(ctx, tasks)
	err = h.Wait()
	o.record(part, tallies, h.Results())

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w: %w", o.name, util.ErrCancelled, err)
		}
		return fmt.Errorf("%s: %w", o.name, err)
	}
	return nil
}

// drain claims chunks from src until it is exhausted, the body stops or ctx is done
func drain(ctx context.Context, t int, src chunk.Source, body chunkBody, tally *taskTally) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c, ok := src.Next()
		if !ok {
			return nil
		}

		tally.chunks++
		tally.claimed += c.Len()

		if body(t, c) {
			return nil
		}
	}
}

func (o *options) record(part chunk.Partitioner, tallies []taskTally, results []executor.Result) {
	if o.stats == nil {
		return
	}

	s := Stats{
		Partitioner: part.String(),
		Tasks:       len(tallies),
		Results:     results,
	}
	for _, tl := range tallies {
		s.Chunks += tl.chunks
		s.Claimed += tl.claimed
	}
	*o.stats = s
}
