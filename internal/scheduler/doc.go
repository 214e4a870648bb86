// Package scheduler fans the discovered file set out over a bounded worker
// pool and owns the run-level bookkeeping.
//
// Concurrency 1 processes files strictly in discovery order. Cancellation
// stops dispatching new files; in-flight workers finish their current file
// so no outcome is ever half-recorded. A panic inside a worker is caught at
// the worker boundary and converted into an error outcome for that file.
package scheduler
