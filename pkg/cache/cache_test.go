package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	key := "terms:abc123"
	value := []byte(`[{"text":"hello","count":3}]`)

	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get() before Set = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !hit {
		t.Fatal("Get() after Set = miss, want hit")
	}
	if !bytes.Equal(data, value) {
		t.Errorf("Get() = %q, want %q", data, value)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("data"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("Get() on expired entry = hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheZeroTTLNeverExpires(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || !hit {
		t.Errorf("Get() with zero TTL = hit %v, err %v; want hit", hit, err)
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "key", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get() after Delete = hit, want miss")
	}

	// Deleting a missing key is not an error
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete() on missing key error: %v", err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("data"), time.Hour); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, hit, err := c.Get(ctx, "key"); err != nil || hit {
		t.Errorf("NullCache Get() = hit %v, err %v; want always miss", hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestDefaultKeyerStability(t *testing.T) {
	k := NewDefaultKeyer()
	opts := TermsKeyOpts{Mode: "phrase", MaxTerms: 100, StopWords: "abc", PaletteSize: 8, Seed: 42}

	first := k.TermsKey("hash1", opts)
	second := k.TermsKey("hash1", opts)
	if first != second {
		t.Errorf("TermsKey not stable: %q vs %q", first, second)
	}
}

func TestDefaultKeyerSensitivity(t *testing.T) {
	k := NewDefaultKeyer()
	base := TermsKeyOpts{Mode: "phrase", MaxTerms: 100, StopWords: "abc", PaletteSize: 8, Seed: 42}

	baseKey := k.TermsKey("hash1", base)

	tests := []struct {
		name string
		key  string
	}{
		{
			name: "different entries hash",
			key:  k.TermsKey("hash2", base),
		},
		{
			name: "different mode",
			key:  k.TermsKey("hash1", TermsKeyOpts{Mode: "token", MaxTerms: 100, StopWords: "abc", PaletteSize: 8, Seed: 42}),
		},
		{
			name: "different seed",
			key:  k.TermsKey("hash1", TermsKeyOpts{Mode: "phrase", MaxTerms: 100, StopWords: "abc", PaletteSize: 8, Seed: 43}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == baseKey {
				t.Errorf("key identical to base despite changed input")
			}
		})
	}
}

func TestKeyFamiliesArePrefixed(t *testing.T) {
	k := NewDefaultKeyer()

	termsKey := k.TermsKey("h", TermsKeyOpts{})
	layoutKey := k.LayoutKey("h", LayoutKeyOpts{})
	artifactKey := k.ArtifactKey("h", ArtifactKeyOpts{})

	for key, prefix := range map[string]string{
		termsKey:    "terms:",
		layoutKey:   "layout:",
		artifactKey: "artifact:",
	} {
		if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
			t.Errorf("key %q missing prefix %q", key, prefix)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	k := NewScopedKeyer(NewDefaultKeyer(), "tenant:42:")

	key := k.TermsKey("h", TermsKeyOpts{})
	if key[:10] != "tenant:42:" {
		t.Errorf("scoped key %q missing prefix tenant:42:", key)
	}

	inner := NewDefaultKeyer().TermsKey("h", TermsKeyOpts{})
	if key != "tenant:42:"+inner {
		t.Errorf("scoped key %q != prefix + inner key %q", key, inner)
	}
}

func TestHashStringsFraming(t *testing.T) {
	a := HashStrings([]string{"ab", "c"})
	b := HashStrings([]string{"a", "bc"})
	if a == b {
		t.Error("HashStrings framing failed: boundary shift produced the same hash")
	}

	if HashStrings([]string{"x", "y"}) != HashStrings([]string{"x", "y"}) {
		t.Error("HashStrings not deterministic")
	}

	if HashStrings(nil) != HashStrings([]string{}) {
		t.Error("HashStrings(nil) should equal HashStrings(empty)")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if len(h) != 64 {
		t.Errorf("Hash() length = %d, want 64 hex chars", len(h))
	}
	if h != Hash([]byte("hello")) {
		t.Error("Hash not deterministic")
	}
	if h == Hash([]byte("world")) {
		t.Error("different inputs produced the same hash")
	}
}
