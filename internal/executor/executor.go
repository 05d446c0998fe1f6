package executor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aryankumar/chunkflow/internal/util"
	"github.com/sourcegraph/conc/panics"
)

// Task represents a unit of work to be executed by the pool
type Task struct {
	// Name identifies the task in results and logs
	Name string

	// Execute is the function to run for this task.
	// ctx is cancelled when the batch fails or the caller's context is done.
	Execute func(ctx context.Context) error
}

// Result represents the outcome of executing a task
type Result struct {
	// Task is the name of the task this result is from
	Task string

	// Worker is the ID of the worker that ran the task (-1 if it never ran)
	Worker int

	// Error contains any error that occurred during execution (nil if successful)
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration
}

// PanicError is returned for a task whose function panicked
type PanicError struct {
	Task  string
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("task %q panicked: %v", e.Task, e.Value)
}

// Unwrap returns the panic value if it is an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Executor is a fixed-size pool of worker goroutines
type Executor struct {
	// workers is the number of worker goroutines, fixed at construction
	workers int

	// queue feeds jobs from all batches to the workers
	queue chan job

	// mu guards closing the queue against concurrent enqueues
	mu     sync.RWMutex
	closed bool

	// wg tracks the worker goroutines
	wg sync.WaitGroup

	logger *slog.Logger

	// shutdown indicates the executor no longer accepts batches
	shutdown atomic.Bool

	// inflight is the number of batches not yet completed
	inflight atomic.Int32
}

// New creates an executor and starts its workers.
// workers must be > 0; a non-positive count is a configuration error.
func New(workers int, logger *slog.Logger) (*Executor, error) {
	if workers <= 0 {
		return nil, util.NewValidationError("workers", workers, "must be at least 1")
	}

	if logger == nil {
		logger = slog.Default()
	}

	e := &Executor{
		workers: workers,
		queue:   make(chan job, workers*2),
		logger:  logger,
	}

	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go e.worker(i)
	}

	logger.Debug("executor started", "workers", workers)

	return e, nil
}

// Run submits a batch of tasks and returns its completion handle
func (e *Executor) Run(ctx context.Context, tasks []Task) *Handle {
	return e.RunWithProgress(ctx, tasks, nil)
}

// RunWithProgress submits a batch with progress reporting.
// progressFn is called from worker goroutines after each task completes.
func (e *Executor) RunWithProgress(ctx context.Context, tasks []Task, progressFn func(completed, total int)) *Handle {
	h := &Handle{done: make(chan struct{})}

	if e.shutdown.Load() {
		h.finish(nil, util.ErrShutdown)
		return h
	}

	for i, task := range tasks {
		if task.Execute == nil {
			h.finish(nil, util.NewValidationError(fmt.Sprintf("tasks[%d].Execute", i), nil, "task must have an execute function"))
			return h
		}
	}

	if len(tasks) == 0 {
		e.logger.Debug("no tasks to execute")
		h.finish([]Result{}, nil)
		return h
	}

	bctx, cancel := context.WithCancelCause(ctx)
	b := &batch{
		ctx:        bctx,
		cancel:     cancel,
		tasks:      tasks,
		results:    make([]Result, len(tasks)),
		progressFn: progressFn,
		handle:     h,
		start:      time.Now(),
	}
	b.pending.Add(len(tasks))

	e.inflight.Add(1)
	e.logger.Debug("starting batch", "workers", e.workers, "tasks", len(tasks))

	go e.enqueue(b)
	go e.complete(b)

	return h
}

// enqueue hands every task of the batch to the workers
func (e *Executor) enqueue(b *batch) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := range b.tasks {
		if e.closed {
			b.skip(i, util.ErrShutdown)
			continue
		}

		select {
		case e.queue <- job{batch: b, index: i}:
		case <-b.ctx.Done():
			b.skip(i, context.Cause(b.ctx))
		}
	}
}

// complete waits for the batch and resolves its handle
func (e *Executor) complete(b *batch) {
	b.pending.Wait()
	b.cancel(nil)

	results := b.results
	total := len(results)
	successCount := CountSuccessful(results)

	e.logger.Debug("batch completed",
		"total", total,
		"successful", successCount,
		"failed", total-successCount,
		"duration", time.Since(b.start))

	b.handle.finish(results, b.firstErr)
	e.inflight.Add(-1)
}

// worker is the worker goroutine that processes jobs from the queue
func (e *Executor) worker(workerID int) {
	defer e.wg.Done()

	e.logger.Debug("worker started", "worker_id", workerID)

	for j := range e.queue {
		e.executeJob(workerID, j)
	}

	e.logger.Debug("worker finished (queue closed)", "worker_id", workerID)
}

// executeJob runs a single task and records its result
func (e *Executor) executeJob(workerID int, j job) {
	b := j.batch
	task := b.tasks[j.index]
	startTime := time.Now()

	// Check context before execution
	if b.ctx.Err() != nil {
		b.skip(j.index, context.Cause(b.ctx))
		return
	}

	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = task.Execute(b.ctx)
	})
	if r := catcher.Recovered(); r != nil {
		err = &PanicError{Task: task.Name, Value: r.Value, Stack: r.Stack}
	}

	duration := time.Since(startTime)

	if err != nil {
		e.logger.Warn("task failed",
			"worker_id", workerID,
			"task", task.Name,
			"error", err,
			"duration", duration)
	} else {
		e.logger.Debug("task succeeded",
			"worker_id", workerID,
			"task", task.Name,
			"duration", duration)
	}

	b.record(j.index, Result{
		Task:     task.Name,
		Worker:   workerID,
		Error:    err,
		Duration: duration,
	})
}

// Shutdown stops accepting batches, waits for in-flight batches to finish and
// stops the workers. The context bounds how long to wait; after a timeout
// Shutdown may be called again to finish stopping the workers.
func (e *Executor) Shutdown(ctx context.Context) error {
	e.shutdown.Store(true)

	e.mu.RLock()
	closed := e.closed
	e.mu.RUnlock()
	if closed {
		return fmt.Errorf("executor already shut down: %w", util.ErrShutdown)
	}

	e.logger.Debug("shutting down executor", "inflight", e.inflight.Load())

	// Poll until no batch is in flight or the context times out
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for e.inflight.Load() > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("shutdown timeout: %w", ctx.Err())
		case <-ticker.C:
		}
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return fmt.Errorf("executor already shut down: %w", util.ErrShutdown)
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	e.wg.Wait()

	e.logger.Debug("executor shut down")
	return nil
}

// IsShutdown returns true if the executor has been shut down
func (e *Executor) IsShutdown() bool {
	return e.shutdown.Load()
}

// InFlight returns the number of batches that have not completed
func (e *Executor) InFlight() int {
	return int(e.inflight.Load())
}

// WorkerCount returns the number of workers in the pool
func (e *Executor) WorkerCount() int {
	return e.workers
}

// job pairs a batch with the index of one of its tasks
type job struct {
	batch *batch
	index int
}

// batch is the execution state of one Run call
type batch struct {
	ctx        context.Context
	cancel     context.CancelCauseFunc
	tasks      []Task
	results    []Result
	pending    sync.WaitGroup
	completed  atomic.Int32
	progressFn func(completed, total int)
	handle     *Handle
	start      time.Time

	errOnce  sync.Once
	firstErr error
}

// record stores a result; each index is written by exactly one goroutine
func (b *batch) record(index int, r Result) {
	b.results[index] = r
	if r.Error != nil {
		b.fail(r.Error)
	}

	n := b.completed.Add(1)
	if b.progressFn != nil {
		b.progressFn(int(n), len(b.tasks))
	}
	b.pending.Done()
}

// skip records a task that never ran
func (b *batch) skip(index int, cause error) {
	b.record(index, Result{
		Task:   b.tasks[index].Name,
		Worker: -1,
		Error:  fmt.Errorf("task not executed: %w", cause),
	})
}

// fail keeps the first error and cancels the rest of the batch
func (b *batch) fail(err error) {
	b.errOnce.Do(func() {
		b.firstErr = err
		b.cancel(err)
	})
}
