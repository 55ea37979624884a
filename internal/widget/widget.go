// Package widget holds the embeddable map widget's client-side logic:
// location resolution, pool aggregation triggers, and debounced place
// suggestions. It talks to the world exclusively through injected
// capability interfaces so hosts (and tests) decide what is real.
package widget

import (
	"context"

	"wym_site_backend/internal/places"
	"wym_site_backend/internal/pools"
	"wym_site_backend/platform/geo"
)

// State is the controller's lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateLocating
	StateLocated
)

// DefaultCenter is used when device geolocation is denied or unavailable.
var DefaultCenter = geo.Coordinate{Lat: 40.7128, Lon: -74.0060}

// Geolocator acquires the device position. Implementations should apply
// their own timeout; the controller treats any error as "unavailable".
type Geolocator interface {
	Locate(ctx context.Context) (geo.Coordinate, error)
}

// PoolFinder aggregates pools around a center.
type PoolFinder interface {
	FindPools(ctx context.Context, center geo.Coordinate, radiusMeters int) ([]pools.Pool, error)
}

// Geocoder resolves free text to a single place.
type Geocoder interface {
	Locate(ctx context.Context, query string) (*places.Suggestion, error)
}

// SuggestionProvider returns autocomplete matches for partial input.
type SuggestionProvider interface {
	Suggest(ctx context.Context, query string, bias *geo.Coordinate) ([]places.Suggestion, error)
}

// CountryLookup is the best-effort visitor-country probe. Failures are
// ignored entirely.
type CountryLookup interface {
	CountryCode(ctx context.Context) (string, error)
}

// Overlay is the host's presentation surface for loading states. The
// widget never touches the document directly.
type Overlay interface {
	SetPointerEventsBlocked(blocked bool)
	ShowOverlay()
	HideOverlay()
}

// View is a snapshot of everything the host needs to render.
type View struct {
	State       State
	Center      geo.Coordinate
	Pools       []pools.Pool
	Suggestions []places.Suggestion
	Error       string
	Country     string
}
