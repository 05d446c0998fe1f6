package chunk

import (
	"fmt"

	"github.com/aryankumar/chunkflow/internal/util"
)

// StaticPartitioner precomputes every chunk before scheduling.
// ChunkSize 0 selects auto mode: min(workers, n) balanced chunks, one per task.
type StaticPartitioner struct {
	ChunkSize int
}

// Static returns a static partitioner with the given chunk size (0 = auto)
func Static(chunkSize int) StaticPartitioner {
	return StaticPartitioner{ChunkSize: chunkSize}
}

// Kind implements Partitioner
func (p StaticPartitioner) Kind() Kind { return KindStatic }

// String implements Partitioner
func (p StaticPartitioner) String() string {
	if p.ChunkSize == 0 {
		return "static(auto)"
	}
	return fmt.Sprintf("static(%d)", p.ChunkSize)
}

func (p StaticPartitioner) validate() error {
	if p.ChunkSize < 0 {
		return util.NewValidationError("chunk-size", p.ChunkSize, "must not be negative")
	}
	return nil
}

// Plan implements Partitioner
func (p StaticPartitioner) Plan(n, workers int) (Plan, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}
	if n <= 0 {
		return &staticPlan{}, nil
	}

	var chunks []Chunk
	if p.ChunkSize == 0 {
		k := min(workers, n)
		chunks = make([]Chunk, k)
		for i := range chunks {
			chunks[i] = Chunk{Start: i * n / k, Stop: (i + 1) * n / k}
		}
	} else {
		count := (n + p.ChunkSize - 1) / p.ChunkSize
		chunks = make([]Chunk, count)
		for i := range chunks {
			chunks[i] = Chunk{Start: i * p.ChunkSize, Stop: min((i+1)*p.ChunkSize, n)}
		}
	}

	return &staticPlan{
		chunks: chunks,
		tasks:  min(workers, len(chunks)),
		n:      n,
	}, nil
}

// staticPlan deals its chunks round-robin: task t owns chunks t, t+tasks, t+2*tasks...
type staticPlan struct {
	chunks []Chunk
	tasks  int
	n      int
}

func (p *staticPlan) Tasks() int { return p.tasks }

func (p *staticPlan) Len() int { return p.n }

// Chunks returns the precomputed chunks in position order
func (p *staticPlan) Chunks() []Chunk { return p.chunks }

func (p *staticPlan) Source(t int) Source {
	return &staticSource{plan: p, next: t}
}

type staticSource struct {
	plan *staticPlan
	next int
}

func (s *staticSource) Next() (Chunk, bool) {
	if s.next >= len(s.plan.chunks) {
		return Chunk{}, false
	}
	c := s.plan.chunks[s.next]
	s.next += s.plan.tasks
	return c, true
}
