package chunk

import (
	"fmt"
	"sync/atomic"

	"github.com/aryankumar/chunkflow/internal/util"
)

// DynamicPartitioner carves chunks on demand from a shared atomic cursor.
// Each claim takes max(MinChunkSize, remaining/tasks) positions.
type DynamicPartitioner struct {
	MinChunkSize int
}

// Dynamic returns a dynamic partitioner with the given minimum chunk size
func Dynamic(minChunkSize int) DynamicPartitioner {
	return DynamicPartitioner{MinChunkSize: minChunkSize}
}

// Kind implements Partitioner
func (p DynamicPartitioner) Kind() Kind { return KindDynamic }

// String implements Partitioner
func (p DynamicPartitioner) String() string {
	return fmt.Sprintf("dynamic(%d)", p.MinChunkSize)
}

func (p DynamicPartitioner) validate() error {
	if p.MinChunkSize < 1 {
		return util.NewValidationError("min-chunk-size", p.MinChunkSize, "must be at least 1")
	}
	return nil
}

// Plan implements Partitioner.
// The plan runs min(workers, ceil(n/MinChunkSize)) tasks, all sharing one cursor.
func (p DynamicPartitioner) Plan(n, workers int) (Plan, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}
	if n <= 0 {
		return &dynamicPlan{}, nil
	}

	tasks := min(workers, (n+p.MinChunkSize-1)/p.MinChunkSize)
	return &dynamicPlan{
		n:     int64(n),
		min:   int64(p.MinChunkSize),
		tasks: int64(tasks),
	}, nil
}

// dynamicPlan is its own Source: every task claims from the same cursor
type dynamicPlan struct {
	n      int64
	min    int64
	tasks  int64
	cursor atomic.Int64
	claims atomic.Int64
}

func (p *dynamicPlan) Tasks() int { return int(p.tasks) }

func (p *dynamicPlan) Len() int { return int(p.n) }

func (p *dynamicPlan) Source(int) Source { return p }

// Claims returns the number of chunks carved so far
func (p *dynamicPlan) Claims() int { return int(p.claims.Load()) }

// Next claims the next chunk with a compare-and-swap on the cursor
func (p *dynamicPlan) Next() (Chunk, bool) {
	for {
		cur := p.cursor.Load()
		remaining := p.n - cur
		if remaining <= 0 {
			return Chunk{}, false
		}

		size := max(p.min, remaining/p.tasks)
		size = min(size, remaining)

		if p.cursor.CompareAndSwap(cur, cur+size) {
			p.claims.Add(1)
			return Chunk{Start: int(cur), Stop: int(cur + size)}, true
		}
	}
}
