// Package planning computes deterministic output paths for selected subtitle
// tracks and detects both pre-existing outputs and cross-file collisions.
//
// Naming rule: a single track in a language group gets {stem}.{lang}.{ext};
// N>1 tracks get {stem}.{lang}.{ordinal}.{ext} with 1-based ordinals in the
// selector's preserved order. Pre-existence is decided against an explicit,
// enumerable candidate set generated from the same rule, never by prefix
// heuristics.
package planning
