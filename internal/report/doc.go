// Package report accumulates per-file outcomes into run-level statistics
// and serializes them for operators.
//
// The aggregator is purely additive: totals depend only on the set of
// outcomes added, never on the order workers finish in.
package report
