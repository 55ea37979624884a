package widget

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"wym_site_backend/internal/places"
	"wym_site_backend/platform/geo"
)

const (
	// DefaultDebounce is how long input must be quiet before a suggestion
	// request fires.
	DefaultDebounce = 160 * time.Millisecond

	// minInputLength is the shortest input that triggers a request.
	minInputLength = 3
)

// Suggester debounces type-ahead input and guarantees that only the
// latest request's results are ever applied. Each call to Input bumps a
// generation counter and cancels the in-flight request; a response is
// applied only while its generation is still current, so a canceled
// request that resolves anyway is discarded. The apply callback runs
// with the suggester's lock held and must not call back into it.
type Suggester struct {
	mu sync.Mutex

	provider SuggestionProvider
	apply    func([]places.Suggestion)
	debounce time.Duration

	generation uint64
	timer      *time.Timer
	cancel     context.CancelFunc
}

func NewSuggester(provider SuggestionProvider, apply func([]places.Suggestion)) *Suggester {
	return NewSuggesterWithDebounce(provider, apply, DefaultDebounce)
}

// NewSuggesterWithDebounce creates a suggester with a custom debounce
// window, used in tests.
func NewSuggesterWithDebounce(provider SuggestionProvider, apply func([]places.Suggestion), debounce time.Duration) *Suggester {
	return &Suggester{
		provider: provider,
		apply:    apply,
		debounce: debounce,
	}
}

// Input feeds one keystroke's worth of text. Text below the minimum
// length clears the suggestion list without touching the provider.
func (s *Suggester) Input(text string, bias *geo.Coordinate) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.invalidateLocked()

	// Characters, not bytes: a two-rune CJK query is still too short.
	if utf8.RuneCountInString(text) < minInputLength {
		s.mu.Unlock()
		s.apply(nil)
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.fire(gen, text, bias)
	})
	s.mu.Unlock()
}

// Stop cancels any pending or in-flight request.
func (s *Suggester) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.invalidateLocked()
}

// invalidateLocked stops the pending timer and cancels the in-flight
// request. Caller holds s.mu.
func (s *Suggester) invalidateLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Suggester) fire(gen uint64, text string, bias *geo.Coordinate) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	suggestions, err := s.provider.Suggest(ctx, text, bias)

	// The staleness check and the apply run under the same lock, so an
	// Input racing with this response cannot be superseded by it.
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	// Errors degrade to no update; stale responses are dropped outright.
	if err != nil {
		return
	}
	s.apply(suggestions)
}
