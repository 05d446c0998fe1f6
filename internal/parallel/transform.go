package parallel

import (
	"context"
	"fmt"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/executor"
	"github.com/aryankumar/chunkflow/internal/util"
)

// Transform writes op(src[i]) to dst[i] for every i in src.
// dst must be at least as long as src; chunks write disjoint slots so no locking is needed.
func Transform[S, D any](ctx context.Context, ex *executor.Executor, src []S, dst []D, op func(S) D, part chunk.Partitioner, opts ...Option) error {
	if err := validate(ex, part, op == nil); err != nil {
		return err
	}

	if len(dst) < len(src) {
		return util.NewValidationError("dst", len(dst), fmt.Sprintf("destination shorter than source (%d elements)", len(src)))
	}

	o := newOptions("transform", opts)
	return run(ctx, ex, len(src), part, o, func(_ int, c chunk.Chunk) bool {
		for i := c.Start; i < c.Stop; i++ {
			dst[i] = op(src[i])
		}
		return false
	})
}
