package geocode

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"
)

func TestCache_HitWithinTTL(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(time.Hour, func() time.Time { return clock })

	payload := json.RawMessage(`{"features":[{"text":"Brooklyn"}]}`)
	cache.Put("40.7128,-74.0060", payload)

	clock = clock.Add(59 * time.Minute)
	got, ok := cache.Get("40.7128,-74.0060")
	if !ok {
		t.Fatal("expected hit within TTL")
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("expected byte-identical payload, got %s", got)
	}
}

func TestCache_StaleEntryTreatedAsAbsent(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(time.Hour, func() time.Time { return clock })

	cache.Put("40.7128,-74.0060", json.RawMessage(`{}`))

	clock = clock.Add(time.Hour)
	if _, ok := cache.Get("40.7128,-74.0060"); ok {
		t.Fatal("expected entry at exactly TTL age to be treated as absent")
	}

	// Stale entries are superseded, never deleted.
	if cache.Len() != 1 {
		t.Fatalf("expected stale entry to remain, len = %d", cache.Len())
	}
}

func TestCache_KeyIsLiteralNotNumeric(t *testing.T) {
	cache := NewCache(time.Hour)
	cache.Put("40.7,-74.0", json.RawMessage(`{}`))

	if _, ok := cache.Get("40.70,-74.0"); ok {
		t.Fatal("expected differently formatted coordinate strings to miss")
	}
}

func TestCache_PutReplacesPriorEntry(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCacheWithClock(time.Hour, func() time.Time { return clock })

	cache.Put("k", json.RawMessage(`{"v":1}`))
	cache.Put("k", json.RawMessage(`{"v":2}`))

	got, ok := cache.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected last write to win, got %s", got)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected single entry, len = %d", cache.Len())
	}
}
