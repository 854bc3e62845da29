// Package render contains the word cloud rendering subsystem: the spiral
// placement engine under cloud/layout and the output sinks (PNG, SVG, JSON)
// under cloud/sink.
package render
