package terms

import (
	"testing"

	"github.com/matzehuels/wordcloud/pkg/cloud"
)

func TestAggregatePhraseMode(t *testing.T) {
	entries := []string{"apple", "banana", "apple", "  apple  ", "banana", "cherry"}

	ranked, err := Aggregate(entries, Options{Mode: cloud.ModePhrase})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	if len(ranked) != 3 {
		t.Fatalf("Aggregate() returned %d terms, want 3", len(ranked))
	}
	if ranked[0].Text != "apple" || ranked[0].Count != 3 {
		t.Errorf("ranked[0] = %q/%d, want apple/3", ranked[0].Text, ranked[0].Count)
	}
	if ranked[1].Text != "banana" || ranked[1].Count != 2 {
		t.Errorf("ranked[1] = %q/%d, want banana/2", ranked[1].Text, ranked[1].Count)
	}
	if ranked[2].Text != "cherry" || ranked[2].Count != 1 {
		t.Errorf("ranked[2] = %q/%d, want cherry/1", ranked[2].Text, ranked[2].Count)
	}
}

func TestAggregatePhrasePreservesCase(t *testing.T) {
	ranked, err := Aggregate([]string{"Hello World", "Hello World"}, Options{})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("Aggregate() returned %d terms, want 1", len(ranked))
	}
	if ranked[0].Text != "Hello World" {
		t.Errorf("phrase mode altered text: got %q", ranked[0].Text)
	}
}

func TestAggregateBlankEntriesIgnored(t *testing.T) {
	ranked, err := Aggregate([]string{"", "   ", "hi", "\t"}, Options{})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("Aggregate() returned %d terms, want 1", len(ranked))
	}
	if ranked[0].Text != "hi" || ranked[0].Count != 1 {
		t.Errorf("ranked[0] = %q/%d, want hi/1", ranked[0].Text, ranked[0].Count)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
	}{
		{name: "nil entries", entries: nil},
		{name: "no entries", entries: []string{}},
		{name: "only blank", entries: []string{"", "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked, err := Aggregate(tt.entries, Options{})
			if err != nil {
				t.Fatalf("Aggregate() error: %v", err)
			}
			if ranked != nil {
				t.Errorf("Aggregate() = %v, want nil for empty input", ranked)
			}
		})
	}
}

func TestAggregateTokenMode(t *testing.T) {
	entries := []string{
		"The quick brown fox",
		"the lazy dog and the quick cat",
	}

	ranked, err := Aggregate(entries, Options{Mode: cloud.ModeToken})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	counts := make(map[string]int)
	for _, term := range ranked {
		counts[term.Text] = term.Count
	}

	// "the" and "and" are stop words; everything is lower-cased.
	if _, ok := counts["the"]; ok {
		t.Error("stop word 'the' survived aggregation")
	}
	if _, ok := counts["and"]; ok {
		t.Error("stop word 'and' survived aggregation")
	}
	if counts["quick"] != 2 {
		t.Errorf("counts[quick] = %d, want 2", counts["quick"])
	}
	if counts["fox"] != 1 {
		t.Errorf("counts[fox] = %d, want 1", counts["fox"])
	}
	if ranked[0].Text != "quick" {
		t.Errorf("ranked[0] = %q, want quick (highest count)", ranked[0].Text)
	}
}

func TestAggregateTokenModeDropsShortUnits(t *testing.T) {
	ranked, err := Aggregate([]string{"a I x yz"}, Options{Mode: cloud.ModeToken})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Text != "yz" {
		t.Errorf("Aggregate() = %v, want only yz (single-rune units dropped)", ranked)
	}
}

func TestAggregateCustomStopWords(t *testing.T) {
	stop := StopWordSet([]string{"fox"})
	ranked, err := Aggregate([]string{"quick fox"}, Options{Mode: cloud.ModeToken, StopWords: stop})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Text != "quick" {
		t.Errorf("Aggregate() = %v, want only quick", ranked)
	}
}

func TestAggregateEmptyStopWordsDisablesFiltering(t *testing.T) {
	// Non-nil empty set means no stop-word removal at all.
	ranked, err := Aggregate([]string{"the fox"}, Options{
		Mode:      cloud.ModeToken,
		StopWords: map[string]struct{}{},
	})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	counts := make(map[string]int)
	for _, term := range ranked {
		counts[term.Text] = term.Count
	}
	if counts["the"] != 1 {
		t.Errorf("counts[the] = %d, want 1 with filtering disabled", counts["the"])
	}
}

func TestAggregateMaxTermsCap(t *testing.T) {
	entries := []string{
		"alpha", "alpha", "alpha",
		"beta", "beta",
		"gamma",
		"delta",
	}

	ranked, err := Aggregate(entries, Options{MaxTerms: 2})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("Aggregate() returned %d terms, want 2", len(ranked))
	}
	if ranked[0].Text != "alpha" || ranked[1].Text != "beta" {
		t.Errorf("cap kept %q/%q, want the highest-count terms alpha/beta",
			ranked[0].Text, ranked[1].Text)
	}
}

func TestAggregateDescendingOrder(t *testing.T) {
	entries := []string{"x", "y", "y", "z", "z", "z"}
	ranked, err := Aggregate(entries, Options{})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Count > ranked[i-1].Count {
			t.Errorf("ranked[%d].Count = %d > ranked[%d].Count = %d, want descending",
				i, ranked[i].Count, i-1, ranked[i-1].Count)
		}
	}
}

func TestAggregateTieOrderStable(t *testing.T) {
	// Equal counts must rank identically on every run; ties fall back to
	// lexical order so map iteration never leaks into the result.
	entries := []string{"cherry", "banana", "apple", "date"}

	first, err := Aggregate(entries, Options{})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	want := []string{"apple", "banana", "cherry", "date"}
	for i, term := range first {
		if term.Text != want[i] {
			t.Errorf("ranked[%d] = %q, want %q", i, term.Text, want[i])
		}
	}

	for run := 0; run < 20; run++ {
		again, err := Aggregate(entries, Options{})
		if err != nil {
			t.Fatalf("Aggregate() error: %v", err)
		}
		for i := range first {
			if again[i].Text != first[i].Text {
				t.Fatalf("run %d: ranked[%d] = %q, want %q", run, i, again[i].Text, first[i].Text)
			}
		}
	}
}

func TestAggregateColorAssignmentDeterministic(t *testing.T) {
	entries := []string{"apple", "banana", "apple", "cherry"}

	first, err := Aggregate(entries, Options{Seed: 7})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	second, err := Aggregate(entries, Options{Seed: 7})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("term %d differs between identical runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestAggregateColorIndexInRange(t *testing.T) {
	entries := []string{"apple", "banana", "cherry", "date", "elderberry"}
	ranked, err := Aggregate(entries, Options{PaletteSize: 3})
	if err != nil {
		t.Fatalf("Aggregate() error: %v", err)
	}
	for _, term := range ranked {
		if term.ColorIndex < 0 || term.ColorIndex >= 3 {
			t.Errorf("ColorIndex = %d for %q, want in [0,3)", term.ColorIndex, term.Text)
		}
	}
}

func TestAggregateInvalidMode(t *testing.T) {
	if _, err := Aggregate([]string{"x"}, Options{Mode: "sentence"}); err == nil {
		t.Error("Aggregate() with invalid mode should fail")
	}
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{mode: cloud.ModePhrase, wantErr: false},
		{mode: cloud.ModeToken, wantErr: false},
		{mode: "sentence", wantErr: true},
		{mode: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			err := ValidateMode(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
		})
	}
}
