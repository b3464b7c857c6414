package catalog

import (
	"context"
	"testing"
	"time"
)

// fakeClock mirrors the cache package's test clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestResolveMatchesCategoriesCaseInsensitive(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "f1", "Youth")
	store.addFolder("root", "f2", "EDUCATION")
	store.addFolder("root", "f3", " spiritual ")
	store.addFolder("root", "f4", "RandomAlbum")

	r := NewResolver(store, nil, 0)

	mapping, err := r.Resolve(context.Background(), "root")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := map[string]string{"youth": "f1", "education": "f2", "spiritual": "f3"}
	if len(mapping) != len(want) {
		t.Fatalf("mapping has %d entries, want %d: %v", len(mapping), len(want), mapping)
	}
	for name, id := range want {
		if mapping[name] != id {
			t.Errorf("mapping[%q] = %q, want %q", name, mapping[name], id)
		}
	}
}

func TestResolveCachesWithinTTL(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "f1", "Charity")

	clock := newFakeClock()
	r := NewResolver(store, clock, 10*time.Minute)

	ctx := context.Background()
	if _, err := r.Resolve(ctx, "root"); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	if _, err := r.Resolve(ctx, "root"); err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if store.listChildrenCalls != 1 {
		t.Errorf("upstream calls = %d, want 1 (second call should hit cache)", store.listChildrenCalls)
	}
}

func TestResolveRefreshesAfterTTL(t *testing.T) {
	store := newFakeStore()
	store.addFolder("root", "f1", "Community")

	clock := newFakeClock()
	r := NewResolver(store, clock, 10*time.Minute)

	ctx := context.Background()
	if _, err := r.Resolve(ctx, "root"); err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}

	clock.Advance(10 * time.Minute)
	if _, err := r.Resolve(ctx, "root"); err != nil {
		t.Fatalf("Resolve after expiry failed: %v", err)
	}

	if store.listChildrenCalls != 2 {
		t.Errorf("upstream calls = %d, want 2 (expired mapping must be refetched)", store.listChildrenCalls)
	}
}

func TestResolveUpstreamFailure(t *testing.T) {
	store := newFakeStore()
	store.failChildren = true

	r := NewResolver(store, nil, 0)

	if _, err := r.Resolve(context.Background(), "root"); err == nil {
		t.Fatal("Resolve succeeded despite upstream failure")
	}

	// The failure must not be cached as an empty mapping.
	store.failChildren = false
	store.addFolder("root", "f1", "Youth")

	mapping, err := r.Resolve(context.Background(), "root")
	if err != nil {
		t.Fatalf("Resolve after recovery failed: %v", err)
	}
	if mapping["youth"] != "f1" {
		t.Errorf("mapping after recovery = %v, want youth -> f1", mapping)
	}
}
