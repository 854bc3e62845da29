package sink

import "github.com/matzehuels/wordcloud/pkg/cloud"

// RenderJSON serializes the layout itself. Useful for caching, debugging
// placement, and re-rendering without recomputing the spiral search.
func RenderJSON(l cloud.Layout) ([]byte, error) {
	return cloud.MarshalLayout(l)
}
