// Package async provides small future primitives for running a function on
// its own goroutine and collecting the outcome later.
//
// Async returns a Future[U] for computations that produce a value; Exec
// returns an ExecFuture for fire-and-forget work that only reports an
// error. Both resolve a pre-canceled context to ctx.Err() without running
// the function.
//
//	future := async.Async(ctx, userID, func(ctx context.Context, id int) (User, error) {
//		return loadUser(ctx, id)
//	})
//
//	// do other work, then collect
//	user, err := future.Await()
//
// Error-only work:
//
//	save := async.Exec(ctx, payload, func(ctx context.Context, p []byte) error {
//		return st.Save(ctx, name, p)
//	})
//	if err := save.AwaitWithTimeout(5 * time.Second); err != nil {
//		log.Error("save did not finish", "error", err)
//	}
//
// Coordination helpers wait on several futures at once:
//
//	results, err := async.WaitAll(f1, f2, f3)  // every value, first error
//	index, err := async.ExecAny(e1, e2)        // first to finish
//
// AwaitWithTimeout abandons the wait, not the computation: the goroutine
// keeps running until its function returns. Cancel the context to stop the
// work itself.
package async
