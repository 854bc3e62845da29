// Package source provides entry supply collaborators for the pipeline.
//
// The pipeline itself never fetches data: it consumes a pulled snapshot of
// text entries. A Source produces that snapshot; implementations here read
// from files, readers, or memory. MemorySource additionally supports
// subscription so interactive callers can regenerate when new entries
// arrive, and Coalescer collapses bursts of updates into single
// regenerations.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Source supplies an ordered snapshot of raw text entries.
type Source interface {
	// FetchAll returns all entries currently known to the source.
	FetchAll(ctx context.Context) ([]string, error)
}

// =============================================================================
// FileSource - One Entry Per Line
// =============================================================================

// FileSource reads entries from a text file, one entry per line. Blank
// lines are passed through; the aggregator ignores them.
type FileSource struct {
	Path string
}

// NewFileSource creates a source reading from path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchAll implements Source.
func (s *FileSource) FetchAll(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open entries file: %w", err)
	}
	defer f.Close()
	return readLines(f)
}

// =============================================================================
// ReaderSource - Stream Input
// =============================================================================

// ReaderSource reads entries from an io.Reader, one entry per line.
// Suited for stdin. FetchAll consumes the reader; it can only be called once.
type ReaderSource struct {
	R io.Reader
}

// NewReaderSource creates a source reading from r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{R: r}
}

// FetchAll implements Source.
func (s *ReaderSource) FetchAll(ctx context.Context) ([]string, error) {
	return readLines(s.R)
}

// readLines splits r into lines.
func readLines(r io.Reader) ([]string, error) {
	var entries []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		entries = append(entries, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return entries, nil
}

// =============================================================================
// MemorySource - Appendable with Subscription
// =============================================================================

// MemorySource holds entries in memory. New entries can be appended at any
// time and subscribers are notified synchronously. Safe for concurrent use.
type MemorySource struct {
	mu      sync.Mutex
	entries []string
	subs    map[int]func(entry string)
	nextSub int
}

// NewMemorySource creates a memory source seeded with initial entries.
func NewMemorySource(initial ...string) *MemorySource {
	return &MemorySource{
		entries: append([]string(nil), initial...),
		subs:    make(map[int]func(string)),
	}
}

// FetchAll implements Source. The returned slice is a copy.
func (s *MemorySource) FetchAll(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...), nil
}

// Append adds an entry and notifies subscribers.
func (s *MemorySource) Append(entry string) {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(entry)
	}
}

// Subscribe registers fn to be called for each appended entry. The returned
// cancel function removes the subscription; it is safe to call twice.
func (s *MemorySource) Subscribe(fn func(entry string)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Len returns the current number of entries.
func (s *MemorySource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
