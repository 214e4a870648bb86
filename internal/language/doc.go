// Package language normalizes user-supplied and container-supplied language
// tokens to canonical ISO 639-1 codes.
//
// The catalog is a static table built once at init. Strict normalization
// (Normalize, NormalizeSet) is for user input and fails loudly on unknown
// tokens so bad configuration is caught before any file is touched. Lenient
// resolution (Resolve) is for raw track tags, where an unrecognized tag just
// means the track is not a candidate.
package language
