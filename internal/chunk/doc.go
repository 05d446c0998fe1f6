// Package chunk describes iteration spaces and the strategies that split them
// into contiguous, non-overlapping chunks for parallel execution.
//
// A Range normalizes an index space (begin, end, step) so that every element
// has a position in [0, Len). Partitioners operate purely on positions:
//
//	r, err := chunk.NewRange(0, 100, 1)
//	plan, err := chunk.Static(0).Plan(r.Len(), 8)
//	for t := 0; t < plan.Tasks(); t++ {
//	    src := plan.Source(t)
//	    for c, ok := src.Next(); ok; c, ok = src.Next() {
//	        // visit positions c.Start..c.Stop-1
//	    }
//	}
//
// # Partitioners
//
// Static precomputes every chunk before any work starts. With a chunk size of
// zero it produces exactly min(workers, n) balanced chunks, one per task. With an
// explicit chunk size it cuts fixed-length chunks and deals them round-robin to
// min(workers, chunks) tasks.
//
// Dynamic carves chunks on demand from a shared atomic cursor. Each claim takes
// the larger of the minimum chunk size and remaining/tasks elements, so early
// claims are large and later ones shrink toward the minimum. A Dynamic plan
// never runs more than min(workers, ceil(n/minChunkSize)) tasks.
//
// # Coverage
//
// For every plan, the union of chunks handed out across all task sources equals
// [0, n) exactly once. Verify checks this property and is used by tests and the
// plan command.
package chunk
