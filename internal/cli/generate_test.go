package cli

import (
	"reflect"
	"testing"

	"github.com/matzehuels/wordcloud/pkg/pipeline"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{
			name:   "derive from input",
			output: "",
			input:  "entries.txt",
			want:   "entries",
		},
		{
			name:   "stdin fallback",
			output: "",
			input:  "-",
			want:   "wordcloud",
		},
		{
			name:   "output strips format extension",
			output: "out.png",
			input:  "entries.txt",
			want:   "out",
		},
		{
			name:   "output keeps unknown extension",
			output: "out.backup",
			input:  "entries.txt",
			want:   "out.backup",
		},
		{
			name:   "output without extension",
			output: "clouds/result",
			input:  "entries.txt",
			want:   "clouds/result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "simple", in: "png,svg", want: []string{"png", "svg"}},
		{name: "spaces trimmed", in: " png , svg ", want: []string{"png", "svg"}},
		{name: "empty items dropped", in: "png,,svg,", want: []string{"png", "svg"}},
		{name: "empty input", in: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInputArg(t *testing.T) {
	if got := inputArg(nil); got != "-" {
		t.Errorf("inputArg(nil) = %q, want -", got)
	}
	if got := inputArg([]string{"entries.txt"}); got != "entries.txt" {
		t.Errorf("inputArg() = %q, want entries.txt", got)
	}
}

func TestCacheSummary(t *testing.T) {
	tests := []struct {
		name string
		info pipeline.CacheInfo
		want string
	}{
		{name: "none", info: pipeline.CacheInfo{}, want: ""},
		{name: "terms only", info: pipeline.CacheInfo{TermsHit: true}, want: "terms"},
		{
			name: "all",
			info: pipeline.CacheInfo{TermsHit: true, LayoutHit: true, RenderHit: true},
			want: "terms, layout, artifacts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheSummary(tt.info); got != tt.want {
				t.Errorf("cacheSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
