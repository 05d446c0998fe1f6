// Package executor provides a fixed-size worker pool that runs batches of
// independent tasks to completion.
//
// Workers are started once, when the Executor is created, and live until
// Shutdown. Each call to Run submits one batch and returns a Handle; callers
// block only in Handle.Wait.
//
// # Basic Usage
//
//	ex, err := executor.New(8, logger)
//	if err != nil {
//	    return err
//	}
//	defer ex.Shutdown(context.Background())
//
//	h := ex.Run(ctx, []executor.Task{
//	    {Name: "chunk/0", Execute: func(ctx context.Context) error { return nil }},
//	    {Name: "chunk/1", Execute: func(ctx context.Context) error { return nil }},
//	})
//	if err := h.Wait(); err != nil {
//	    return err
//	}
//
// # Failure Semantics
//
// A task fails by returning an error or by panicking. Panics are recovered on
// the worker and surfaced as *PanicError. The first failure observed in a batch
// is what Wait returns; the batch context is cancelled at that moment so tasks
// that poll it can stop early, and tasks already running are allowed to finish.
// Every per-task outcome is still available through Handle.Results and
// Handle.Errors.
//
// # Progress Reporting
//
//	h := ex.RunWithProgress(ctx, tasks, func(completed, total int) {
//	    fmt.Printf("Progress: %d/%d\n", completed, total)
//	})
//
// # Concurrency Guarantees
//
//   - At most WorkerCount tasks run at once, across all batches
//   - A task runs on exactly one worker, exactly once, or is reported as not executed
//   - Run and Shutdown may be called concurrently
//   - No goroutine leaks after Shutdown returns
package executor
