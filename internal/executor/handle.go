package executor

import (
	"github.com/aryankumar/chunkflow/internal/util"
)

// Handle is the completion token of one batch
type Handle struct {
	done    chan struct{}
	results []Result
	err     error
}

func (h *Handle) finish(results []Result, err error) {
	h.results = results
	h.err = err
	close(h.done)
}

// Wait blocks until every task of the batch has finished and returns the
// first failure observed, if any
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done returns a channel that is closed when the batch completes
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Results returns per-task results in submission order. It blocks until the batch completes.
func (h *Handle) Results() []Result {
	<-h.done
	out := make([]Result, len(h.results))
	copy(out, h.results)
	return out
}

// Errors returns every task failure of the batch, or nil. It blocks until the batch completes.
func (h *Handle) Errors() error {
	<-h.done
	if h.results == nil {
		return h.err
	}
	return util.NewMultiError(GetErrors(h.results)).ErrorOrNil()
}
