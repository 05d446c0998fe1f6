package chunk

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aryankumar/chunkflow/internal/util"
)

// Kind names a partitioning strategy
type Kind string

const (
	// KindStatic precomputes all chunks before scheduling
	KindStatic Kind = "static"
	// KindDynamic claims chunks on demand from a shared cursor
	KindDynamic Kind = "dynamic"
)

// Partitioner decides how n positions are divided into chunks for a pool of workers
type Partitioner interface {
	// Plan builds the chunk plan for one invocation over [0, n)
	Plan(n, workers int) (Plan, error)

	// Kind reports the strategy
	Kind() Kind

	// String describes the partitioner and its parameters
	String() string
}

// Plan is the chunk plan of a single invocation.
// A plan is owned by that invocation and must not be reused.
type Plan interface {
	// Tasks is the number of chunk tasks the plan needs; each task drains one Source
	Tasks() int

	// Source returns the chunk source for task t, 0 <= t < Tasks()
	Source(t int) Source

	// Len is the number of positions the plan covers
	Len() int
}

// Source yields the chunks for one task, in ascending position order
type Source interface {
	// Next returns the next chunk, or false once the task has no more work
	Next() (Chunk, bool)
}

// Parse builds a partitioner from its kind name and size parameter.
// For static the size is the chunk size (0 = auto), for dynamic the minimum chunk size.
func Parse(kind string, size int) (Partitioner, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindStatic, "":
		p := Static(size)
		return p, p.validate()
	case KindDynamic:
		p := Dynamic(size)
		return p, p.validate()
	default:
		return nil, util.NewValidationError("partitioner", kind, "must be one of: static, dynamic")
	}
}

func validateWorkers(workers int) error {
	if workers < 1 {
		return util.NewValidationError("workers", workers, "must be at least 1")
	}
	return nil
}

// Collect drains every source of a plan sequentially and returns the chunks per task.
// It consumes the plan.
func Collect(p Plan) [][]Chunk {
	out := make([][]Chunk, p.Tasks())
	for t := range out {
		src := p.Source(t)
		for c, ok := src.Next(); ok; c, ok = src.Next() {
			out[t] = append(out[t], c)
		}
	}
	return out
}

// Verify checks that chunks are non-empty and partition [0, n) exactly once
func Verify(chunks []Chunk, n int) error {
	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	next := 0
	for _, c := range sorted {
		switch {
		case c.Len() <= 0:
			return fmt.Errorf("%w: empty chunk %s", util.ErrCoverage, c)
		case c.Start < next:
			return fmt.Errorf("%w: chunk %s overlaps position %d", util.ErrCoverage, c, next-1)
		case c.Start > next:
			return fmt.Errorf("%w: gap [%d, %d)", util.ErrCoverage, next, c.Start)
		}
		next = c.Stop
	}
	if next != n {
		return fmt.Errorf("%w: covered [0, %d) of [0, %d)", util.ErrCoverage, next, n)
	}
	return nil
}
