// Package resume persists which source files a run has already finished so
// an interrupted batch can pick up where it left off.
//
// The journal is advisory. A corrupt or unreadable database degrades to an
// empty done-set rather than failing the run, and a file lock keeps two
// writers from interleaving on the same journal.
package resume
