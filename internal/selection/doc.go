// Package selection decides which probed subtitle tracks qualify for
// extraction under the run policy and groups survivors by canonical
// language in container order.
//
// Grouping order is the tie-break contract downstream naming depends on:
// ordinals are assigned in first-seen container order within each group.
package selection
