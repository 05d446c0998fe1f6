package parallel

import (
	"github.com/aryankumar/chunkflow/internal/executor"
)

// Option configures a single kernel invocation
type Option func(*options)

type options struct {
	hook  Hook
	name  string
	stats *Stats
}

// WithHook wraps every chunk task of the invocation in h
func WithHook(h Hook) Option {
	return func(o *options) {
		if h != nil {
			o.hook = h
		}
	}
}

// WithName sets the task name prefix used in results and logs
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithStats records scheduling statistics of the invocation into s
func WithStats(s *Stats) Option {
	return func(o *options) {
		o.stats = s
	}
}

func newOptions(kernel string, opts []Option) *options {
	o := &options{
		hook: identity,
		name: kernel,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Stats describes how one invocation was scheduled
type Stats struct {
	// Partitioner is the partitioner description, e.g. "dynamic(62)"
	Partitioner string `json:"partitioner" yaml:"partitioner"`

	// Tasks is the number of chunk tasks dispatched
	Tasks int `json:"tasks" yaml:"tasks"`

	// Chunks is the number of chunks obtained across all tasks
	Chunks int `json:"chunks" yaml:"chunks"`

	// Claimed is the number of positions in those chunks
	Claimed int `json:"claimed" yaml:"claimed"`

	// Results holds the per-task executor results
	Results []executor.Result `json:"-" yaml:"-"`
}
