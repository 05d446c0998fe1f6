package chunk

import (
	"fmt"
	"sync"
	"testing"

	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatten(perTask [][]Chunk) []Chunk {
	var all []Chunk
	for _, cs := range perTask {
		all = append(all, cs...)
	}
	return all
}

func TestStatic_Auto(t *testing.T) {
	for workers := 1; workers <= 64; workers++ {
		for _, n := range []int{1, 3, 5, 100, 1000, 1001} {
			t.Run(fmt.Sprintf("w%d_n%d", workers, n), func(t *testing.T) {
				plan, err := Static(0).Plan(n, workers)
				require.NoError(t, err)

				want := min(workers, n)
				assert.Equal(t, want, plan.Tasks())

				perTask := Collect(plan)
				for task, cs := range perTask {
					assert.Len(t, cs, 1, "task %d should own exactly one chunk", task)
				}

				all := flatten(perTask)
				require.NoError(t, Verify(all, n))

				// balanced: lengths differ by at most one
				lo, hi := n, 0
				for _, c := range all {
					lo = min(lo, c.Len())
					hi = max(hi, c.Len())
				}
				assert.LessOrEqual(t, hi-lo, 1)
			})
		}
	}
}

func TestStatic_Explicit(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		workers    int
		chunkSize  int
		wantTasks  int
		wantChunks int
	}{
		{name: "unit chunks", n: 100, workers: 8, chunkSize: 1, wantTasks: 8, wantChunks: 100},
		{name: "truncated last chunk", n: 10, workers: 2, chunkSize: 4, wantTasks: 2, wantChunks: 3},
		{name: "fewer chunks than workers", n: 10, workers: 16, chunkSize: 5, wantTasks: 2, wantChunks: 2},
		{name: "chunk larger than range", n: 3, workers: 4, chunkSize: 10, wantTasks: 1, wantChunks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Static(tt.chunkSize).Plan(tt.n, tt.workers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTasks, plan.Tasks())

			perTask := Collect(plan)
			all := flatten(perTask)
			assert.Len(t, all, tt.wantChunks)
			require.NoError(t, Verify(all, tt.n))

			for task, cs := range perTask {
				for i := 1; i < len(cs); i++ {
					assert.Less(t, cs[i-1].Start, cs[i].Start, "task %d chunks must ascend", task)
				}
				for _, c := range cs {
					assert.LessOrEqual(t, c.Len(), tt.chunkSize)
				}
			}
		})
	}
}

func TestStatic_RoundRobin(t *testing.T) {
	plan, err := Static(2).Plan(10, 2)
	require.NoError(t, err)

	perTask := Collect(plan)
	assert.Equal(t, []Chunk{{0, 2}, {4, 6}, {8, 10}}, perTask[0])
	assert.Equal(t, []Chunk{{2, 4}, {6, 8}}, perTask[1])
}

func TestDynamic_Sequential(t *testing.T) {
	for workers := 1; workers <= 16; workers++ {
		for _, minChunk := range []int{1, 7, 62, 500, 2000} {
			t.Run(fmt.Sprintf("w%d_min%d", workers, minChunk), func(t *testing.T) {
				const n = 1000
				plan, err := Dynamic(minChunk).Plan(n, workers)
				require.NoError(t, err)

				assert.LessOrEqual(t, plan.Tasks(), workers)
				assert.Equal(t, min(workers, (n+minChunk-1)/minChunk), plan.Tasks())

				all := flatten(Collect(plan))
				require.NoError(t, Verify(all, n))
				for _, c := range all[:len(all)-1] {
					assert.GreaterOrEqual(t, c.Len(), min(minChunk, n))
				}
			})
		}
	}
}

func TestDynamic_ConcurrentClaims(t *testing.T) {
	const n = 100_000
	const workers = 32

	plan, err := Dynamic(1).Plan(n, workers)
	require.NoError(t, err)

	var (
		mu  sync.Mutex
		all []Chunk
		wg  sync.WaitGroup
	)
	for task := 0; task < plan.Tasks(); task++ {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			var local []Chunk
			for c, ok := src.Next(); ok; c, ok = src.Next() {
				local = append(local, c)
			}
			mu.Lock()
			all = append(all, local...)
			mu.Unlock()
		}(plan.Source(task))
	}
	wg.Wait()

	require.NoError(t, Verify(all, n))
	assert.Equal(t, len(all), plan.(*dynamicPlan).Claims())
}

func TestPlan_EmptyRange(t *testing.T) {
	for _, p := range []Partitioner{Static(0), Static(3), Dynamic(1)} {
		t.Run(p.String(), func(t *testing.T) {
			plan, err := p.Plan(0, 8)
			require.NoError(t, err)
			assert.Equal(t, 0, plan.Tasks())
			assert.Empty(t, Collect(plan))
		})
	}
}

func TestPlan_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		p       Partitioner
		workers int
	}{
		{name: "zero workers static", p: Static(0), workers: 0},
		{name: "zero workers dynamic", p: Dynamic(1), workers: 0},
		{name: "negative chunk size", p: Static(-1), workers: 4},
		{name: "zero min chunk", p: Dynamic(0), workers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Plan(10, tt.workers)
			require.Error(t, err)
			assert.ErrorIs(t, err, util.ErrInvalidConfig)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		kind    string
		size    int
		want    string
		wantErr bool
	}{
		{kind: "static", size: 0, want: "static(auto)"},
		{kind: "", size: 4, want: "static(4)"},
		{kind: "Dynamic", size: 62, want: "dynamic(62)"},
		{kind: "dynamic", size: 0, wantErr: true},
		{kind: "guided", size: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+fmt.Sprint(tt.size), func(t *testing.T) {
			p, err := Parse(tt.kind, tt.size)
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []Chunk
		n       int
		wantErr bool
	}{
		{name: "exact", chunks: []Chunk{{5, 10}, {0, 5}}, n: 10},
		{name: "empty range", chunks: nil, n: 0},
		{name: "gap", chunks: []Chunk{{0, 4}, {5, 10}}, n: 10, wantErr: true},
		{name: "overlap", chunks: []Chunk{{0, 6}, {5, 10}}, n: 10, wantErr: true},
		{name: "short", chunks: []Chunk{{0, 9}}, n: 10, wantErr: true},
		{name: "empty chunk", chunks: []Chunk{{0, 0}, {0, 10}}, n: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.chunks, tt.n)
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrCoverage)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
