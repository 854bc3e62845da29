// Package sink renders computed word cloud layouts into output formats.
//
// The PNG sink rasterizes glyphs with fogleman/gg using the same font faces
// the layout was measured with, so painted text matches the collision boxes.
// The SVG sink emits text elements for resolution-independent output, and
// the JSON sink serializes the layout itself for caching and inspection.
package sink
