package widget

import (
	"context"
	"strings"
	"sync"

	"wym_site_backend/internal/places"
	"wym_site_backend/internal/pools"
	"wym_site_backend/platform/geo"
)

// Controller drives the widget's state machine: Idle until Start, then
// Locating while a center is being established, then Located. Every path
// out of Locating leaves a usable center behind.
type Controller struct {
	mu sync.Mutex

	locator Geolocator
	finder  PoolFinder
	geocode Geocoder
	country CountryLookup
	overlay Overlay

	view View
}

func NewController(locator Geolocator, finder PoolFinder, geocode Geocoder, country CountryLookup, overlay Overlay) *Controller {
	return &Controller{
		locator: locator,
		finder:  finder,
		geocode: geocode,
		country: country,
		overlay: overlay,
		view:    View{State: StateIdle, Center: DefaultCenter},
	}
}

// View returns a copy of the current render state. Slices are cloned so
// the host cannot observe in-progress mutation.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := c.view
	snapshot.Pools = append([]pools.Pool(nil), c.view.Pools...)
	snapshot.Suggestions = append([]places.Suggestion(nil), c.view.Suggestions...)
	return snapshot
}

// Start performs initial location acquisition. Geolocation denial or
// failure falls back to the default center; either way the pool list is
// populated and the state ends Located.
func (c *Controller) Start(ctx context.Context) {
	c.setLocating()

	if c.country != nil {
		if code, err := c.country.CountryCode(ctx); err == nil {
			c.mu.Lock()
			c.view.Country = code
			c.mu.Unlock()
		}
	}

	center := DefaultCenter
	if c.locator != nil {
		if located, err := c.locator.Locate(ctx); err == nil {
			center = located
		}
	}

	c.recenter(ctx, center, "")
}

// UseMyLocation re-requests device geolocation. On failure the prior
// center and pool list stay untouched and only the error message changes.
func (c *Controller) UseMyLocation(ctx context.Context) {
	located, err := c.locator.Locate(ctx)
	if err != nil {
		c.mu.Lock()
		c.view.Error = "Location unavailable. Check your browser permissions."
		c.mu.Unlock()
		return
	}

	c.setLocating()
	c.recenter(ctx, located, "")
}

// Search geocodes submitted text to its first match and recenters there.
// No match leaves center and pools unchanged behind an error message.
func (c *Controller) Search(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	place, err := c.geocode.Locate(ctx, query)
	if err != nil || place == nil {
		c.mu.Lock()
		c.view.Error = "No results found for \"" + query + "\"."
		c.mu.Unlock()
		return
	}

	c.setLocating()
	c.recenter(ctx, geo.Coordinate{Lat: place.Lat, Lon: place.Lon}, "")
}

// SelectSuggestion recenters on a suggestion the user picked. The
// coordinate travels with the suggestion, so no geocode round-trip
// happens here.
func (c *Controller) SelectSuggestion(ctx context.Context, s places.Suggestion) {
	c.mu.Lock()
	c.view.Suggestions = nil
	c.mu.Unlock()

	c.setLocating()
	c.recenter(ctx, geo.Coordinate{Lat: s.Lat, Lon: s.Lon}, "")
}

// ApplySuggestions replaces the suggestion list; wired as the Suggester's
// apply callback.
func (c *Controller) ApplySuggestions(suggestions []places.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Suggestions = suggestions
}

func (c *Controller) setLocating() {
	c.mu.Lock()
	c.view.State = StateLocating
	c.mu.Unlock()

	if c.overlay != nil {
		c.overlay.ShowOverlay()
		c.overlay.SetPointerEventsBlocked(true)
	}
}

// recenter moves the map and repopulates the pool list. An aggregation
// failure keeps the new center but surfaces an error with an empty list.
func (c *Controller) recenter(ctx context.Context, center geo.Coordinate, errMsg string) {
	found, err := c.finder.FindPools(ctx, center, 0)
	if err != nil {
		found = nil
		errMsg = "Could not load pools near this location."
	}

	c.mu.Lock()
	c.view.State = StateLocated
	c.view.Center = center
	c.view.Pools = found
	c.view.Error = errMsg
	c.mu.Unlock()

	if c.overlay != nil {
		c.overlay.SetPointerEventsBlocked(false)
		c.overlay.HideOverlay()
	}
}
