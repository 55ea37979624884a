package widget

import (
	"context"
	"sync"
	"testing"
	"time"

	"wym_site_backend/internal/places"
	"wym_site_backend/platform/geo"
)

type recordingProvider struct {
	mu      sync.Mutex
	queries []string
	results map[string][]places.Suggestion
	block   map[string]chan struct{}
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{
		results: make(map[string][]places.Suggestion),
		block:   make(map[string]chan struct{}),
	}
}

func (p *recordingProvider) Suggest(ctx context.Context, query string, bias *geo.Coordinate) ([]places.Suggestion, error) {
	p.mu.Lock()
	p.queries = append(p.queries, query)
	gate := p.block[query]
	result := p.results[query]
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, nil
}

func (p *recordingProvider) queryCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queries)
}

type applied struct {
	mu      sync.Mutex
	history [][]places.Suggestion
}

func (a *applied) apply(s []places.Suggestion) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, s)
}

func (a *applied) last() ([]places.Suggestion, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.history) == 0 {
		return nil, false
	}
	return a.history[len(a.history)-1], true
}

func TestSuggester_RapidTypingFiresOneRequest(t *testing.T) {
	provider := newRecordingProvider()
	provider.results["Central P"] = []places.Suggestion{{Label: "Central Park"}}
	sink := &applied{}
	s := NewSuggesterWithDebounce(provider, sink.apply, 40*time.Millisecond)

	s.Input("Central", nil)
	time.Sleep(10 * time.Millisecond)
	s.Input("Central P", nil)

	time.Sleep(200 * time.Millisecond)

	if got := provider.queryCount(); got != 1 {
		t.Fatalf("expected exactly one request, got %d", got)
	}
	last, ok := sink.last()
	if !ok || len(last) != 1 || last[0].Label != "Central Park" {
		t.Fatalf("expected latest query's results to be applied, got %+v", last)
	}
}

func TestSuggester_ShortInputClearsWithoutRequest(t *testing.T) {
	provider := newRecordingProvider()
	sink := &applied{}
	s := NewSuggesterWithDebounce(provider, sink.apply, 5*time.Millisecond)

	s.Input("Ce", nil)
	time.Sleep(50 * time.Millisecond)

	if provider.queryCount() != 0 {
		t.Fatal("expected no request below minimum length")
	}
	last, ok := sink.last()
	if !ok || last != nil {
		t.Fatalf("expected suggestions cleared, got %+v", last)
	}
}

func TestSuggester_MinimumLengthCountsCharactersNotBytes(t *testing.T) {
	provider := newRecordingProvider()
	provider.results["東京都"] = []places.Suggestion{{Label: "Tokyo"}}
	sink := &applied{}
	s := NewSuggesterWithDebounce(provider, sink.apply, 5*time.Millisecond)

	// Two CJK characters are six bytes but still below the minimum.
	s.Input("東京", nil)
	time.Sleep(50 * time.Millisecond)

	if got := provider.queryCount(); got != 0 {
		t.Fatalf("two-character input issued %d request(s); expected none", got)
	}

	s.Input("東京都", nil)
	time.Sleep(50 * time.Millisecond)

	if got := provider.queryCount(); got != 1 {
		t.Fatalf("three-character input issued %d request(s); expected one", got)
	}
}

func TestSuggester_StaleResponseDiscarded(t *testing.T) {
	provider := newRecordingProvider()
	gate := make(chan struct{})
	provider.block["Central"] = gate
	provider.results["Central"] = []places.Suggestion{{Label: "STALE"}}
	provider.results["Brooklyn"] = []places.Suggestion{{Label: "Brooklyn"}}
	sink := &applied{}
	s := NewSuggesterWithDebounce(provider, sink.apply, 5*time.Millisecond)

	s.Input("Central", nil)
	time.Sleep(30 * time.Millisecond) // debounce fires; request blocks on gate

	s.Input("Brooklyn", nil)
	time.Sleep(30 * time.Millisecond)
	close(gate) // stale response resolves after being superseded
	time.Sleep(30 * time.Millisecond)

	last, ok := sink.last()
	if !ok || len(last) != 1 || last[0].Label != "Brooklyn" {
		t.Fatalf("expected only the newest results, got %+v", last)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	for _, batch := range sink.history {
		for _, item := range batch {
			if item.Label == "STALE" {
				t.Fatal("stale response must never be applied")
			}
		}
	}
}

func TestSuggester_StopCancelsPendingRequest(t *testing.T) {
	provider := newRecordingProvider()
	sink := &applied{}
	s := NewSuggesterWithDebounce(provider, sink.apply, 20*time.Millisecond)

	s.Input("Central", nil)
	s.Stop()
	time.Sleep(80 * time.Millisecond)

	if provider.queryCount() != 0 {
		t.Fatal("expected stopped suggester to issue no request")
	}
}
