package kernel

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/executor"
	"github.com/aryankumar/chunkflow/internal/parallel"
)

// workload runs one kernel over the synthetic sequence [0, size) and describes its result.
// Every element visit increments visited.
type workload func(ctx context.Context, ex *executor.Executor, size, target int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error)

var workloads = map[string]workload{
	"for-each-index": runForEachIndex,
	"for-each":       runForEach,
	"for-each-ptr":   runForEachPtr,
	"transform":      runTransform,
	"find-if":        runFindIf,
	"find-if-not":    runFindIfNot,
}

// kernelNames returns the sorted names accepted by `run`
func kernelNames() []string {
	names := make([]string, 0, len(workloads))
	for name := range workloads {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sequence(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func runForEachIndex(ctx context.Context, ex *executor.Executor, size, _ int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error) {
	var sum atomic.Int64
	err := parallel.ForEachIndex(ctx, ex, 0, size, 1, func(i int) {
		visited.Add(1)
		sum.Add(int64(i))
	}, part, opts...)
	return fmt.Sprintf("sum=%d", sum.Load()), err
}

func runForEach(ctx context.Context, ex *executor.Executor, size, _ int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error) {
	var sum atomic.Int64
	err := parallel.ForEach(ctx, ex, sequence(size), func(v int) {
		visited.Add(1)
		sum.Add(int64(v))
	}, part, opts...)
	return fmt.Sprintf("sum=%d", sum.Load()), err
}

func runForEachPtr(ctx context.Context, ex *executor.Executor, size, _ int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error) {
	items := sequence(size)
	err := parallel.ForEachPtr(ctx, ex, items, func(v *int) {
		visited.Add(1)
		*v++
	}, part, opts...)
	if err != nil {
		return "", err
	}

	var sum int64
	for _, v := range items {
		sum += int64(v)
	}
	return fmt.Sprintf("sum=%d", sum), nil
}

func runTransform(ctx context.Context, ex *executor.Executor, size, _ int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error) {
	dst := make([]int, size)
	err := parallel.Transform(ctx, ex, sequence(size), dst, func(v int) int {
		visited.Add(1)
		return v * 2
	}, part, opts...)
	if err != nil {
		return "", err
	}

	var sum int64
	for _, v := range dst {
		sum += int64(v)
	}
	return fmt.Sprintf("sum=%d", sum), nil
}

func runFindIf(ctx context.Context, ex *executor.Executor, size, target int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error) {
	idx, err := parallel.FindIf(ctx, ex, sequence(size), func(v int) bool {
		visited.Add(1)
		return v == target
	}, part, opts...)
	return describeIndex(idx), err
}

func runFindIfNot(ctx context.Context, ex *executor.Executor, size, target int, part chunk.Partitioner, visited *atomic.Int64, opts []parallel.Option) (string, error) {
	idx, err := parallel.FindIfNot(ctx, ex, sequence(size), func(v int) bool {
		visited.Add(1)
		return v < target
	}, part, opts...)
	return describeIndex(idx), err
}

func describeIndex(idx int) string {
	if idx == parallel.NotFound {
		return "not found"
	}
	return fmt.Sprintf("index=%d", idx)
}
