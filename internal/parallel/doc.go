// Package parallel implements chunked parallel algorithms on top of an
// executor.Executor.
//
// Every kernel follows the same template: normalize the input into [0, n),
// ask a chunk.Partitioner for a plan, build one executor task per plan slot,
// run the batch and wait, then aggregate. A task drains its chunk source,
// visiting the elements of each chunk in ascending order. Nothing is ordered
// across chunks.
//
//	ex, _ := executor.New(8, logger)
//	defer ex.Shutdown(ctx)
//
//	var hits parallel.Counter
//	err := parallel.ForEachIndex(ctx, ex, 0, 1000, 1, func(i int) {
//	    process(i)
//	}, chunk.Dynamic(62), parallel.WithHook(&hits))
//
//	idx, err := parallel.FindIf(ctx, ex, values, func(v int) bool {
//	    return v == 500
//	}, chunk.Static(0))
//
// # Dispatch Hooks
//
// A Hook wraps the body of each chunk task. The engine never runs a task body
// except through the hook, and the hook must call it exactly once. Hooks run
// on the worker goroutine that owns the task, concurrently with each other, so
// any state they share needs its own synchronization.
//
// # Failures
//
// A panic in an operation, predicate or hook fails the invocation with an
// *executor.PanicError. The first failure wins; other tasks stop claiming new
// chunks. Slots already written by Transform stay written.
package parallel
