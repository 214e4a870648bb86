// Package subsync aligns extracted subtitle timing against the source media
// using the ffsubsync command-line tool.
package subsync
