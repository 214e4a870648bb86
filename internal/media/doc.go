// Package media defines the track descriptors shared by the probing,
// selection, and planning layers, including the closed set of subtitle
// codec variants and their output-format rules.
package media
