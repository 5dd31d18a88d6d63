package cache

import (
	"bytes"
	"fmt"
	"testing"
)

func k(idx uint32) Key {
	return Key{Kind: KindXMSS, Layer: 0, Tree: 0, Height: 0, Index: idx}
}

func TestPutGet(t *testing.T) {
	nc := NewNodeCache(4)
	if _, ok := nc.Get(k(0)); ok {
		t.Fatal("get on empty cache must miss")
	}
	nc.Put(k(0), []byte("node-0"))
	got, ok := nc.Get(k(0))
	if !ok || !bytes.Equal(got, []byte("node-0")) {
		t.Fatalf("got %q, %v; want node-0, true", got, ok)
	}
	if nc.Len() != 1 {
		t.Errorf("len = %d, want 1", nc.Len())
	}
}

func TestPutUpdatesExistingKey(t *testing.T) {
	nc := NewNodeCache(2)
	nc.Put(k(0), []byte("old"))
	nc.Put(k(0), []byte("new"))
	got, ok := nc.Get(k(0))
	if !ok || !bytes.Equal(got, []byte("new")) {
		t.Fatalf("got %q, %v; want new, true", got, ok)
	}
	if nc.Len() != 1 {
		t.Errorf("len = %d, want 1", nc.Len())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	nc := NewNodeCache(2)
	nc.Put(k(0), []byte("a"))
	nc.Put(k(1), []byte("b"))

	// Touch key 0 so key 1 becomes the eviction candidate.
	nc.Get(k(0))
	nc.Put(k(2), []byte("c"))

	if _, ok := nc.Get(k(1)); ok {
		t.Error("key 1 should have been evicted")
	}
	if _, ok := nc.Get(k(0)); !ok {
		t.Error("key 0 was recently used and must survive")
	}
	if _, ok := nc.Get(k(2)); !ok {
		t.Error("key 2 was just inserted and must be present")
	}
	if nc.Len() != 2 {
		t.Errorf("len = %d, want 2", nc.Len())
	}
}

func TestDistinctKeyFields(t *testing.T) {
	nc := NewNodeCache(16)
	keys := []Key{
		{Kind: KindXMSS, Index: 1},
		{Kind: KindFORS, Index: 1},
		{Kind: KindXMSS, Layer: 1, Index: 1},
		{Kind: KindXMSS, Tree: 1, Index: 1},
		{Kind: KindXMSS, Height: 1, Index: 1},
	}
	for i, key := range keys {
		nc.Put(key, []byte(fmt.Sprintf("v%d", i)))
	}
	for i, key := range keys {
		got, ok := nc.Get(key)
		want := fmt.Sprintf("v%d", i)
		if !ok || string(got) != want {
			t.Errorf("key %d: got %q, %v; want %q", i, got, ok, want)
		}
	}
}

func TestCapacityBound(t *testing.T) {
	nc := NewNodeCache(8)
	for i := uint32(0); i < 100; i++ {
		nc.Put(k(i), []byte{byte(i)})
	}
	if nc.Len() != 8 {
		t.Errorf("len = %d, want capacity 8", nc.Len())
	}
	// The most recent inserts survive.
	for i := uint32(92); i < 100; i++ {
		if _, ok := nc.Get(k(i)); !ok {
			t.Errorf("key %d should still be cached", i)
		}
	}
}
