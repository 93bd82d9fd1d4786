// Package worker runs CPU-bound jobs, bcrypt hashing in particular, on a bounded set of
// goroutines so they cannot starve unrelated work.
//
// # Semantics
//
// A submitted job always runs to completion once it has a slot. The context passed to
// [Pool.Submit] only bounds the wait for a slot; callers that stop waiting for the result
// simply never read the result channel, which is buffered so the job never blocks.
//
// # What this package must NOT do
//
//   - Cancel a job that has started.
//   - Import goCred or any sibling package.
package worker
