package widget

import (
	"context"
	"errors"
	"sync"
	"testing"

	"wym_site_backend/internal/places"
	"wym_site_backend/internal/pools"
	"wym_site_backend/platform/geo"
)

type fakeLocator struct {
	coord geo.Coordinate
	err   error
	calls int
}

func (f *fakeLocator) Locate(ctx context.Context) (geo.Coordinate, error) {
	f.calls++
	return f.coord, f.err
}

type fakeFinder struct {
	mu      sync.Mutex
	pools   []pools.Pool
	err     error
	centers []geo.Coordinate
}

func (f *fakeFinder) FindPools(ctx context.Context, center geo.Coordinate, radiusMeters int) ([]pools.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.centers = append(f.centers, center)
	return f.pools, f.err
}

type fakeGeocoder struct {
	place *places.Suggestion
	err   error
	calls int
}

func (f *fakeGeocoder) Locate(ctx context.Context, query string) (*places.Suggestion, error) {
	f.calls++
	return f.place, f.err
}

type fakeCountry struct{ code string }

func (f *fakeCountry) CountryCode(ctx context.Context) (string, error) {
	if f.code == "" {
		return "", errors.New("unreachable")
	}
	return f.code, nil
}

type fakeOverlay struct {
	mu      sync.Mutex
	shows   int
	hides   int
	blocked bool
}

func (f *fakeOverlay) SetPointerEventsBlocked(blocked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked = blocked
}

func (f *fakeOverlay) ShowOverlay() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
}

func (f *fakeOverlay) HideOverlay() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hides++
}

func TestController_GeolocationDenialFallsBackToDefault(t *testing.T) {
	locator := &fakeLocator{err: errors.New("permission denied")}
	finder := &fakeFinder{pools: []pools.Pool{{ID: 1, Name: "Riverside Pool"}}}
	c := NewController(locator, finder, &fakeGeocoder{}, nil, nil)

	c.Start(context.Background())

	view := c.View()
	if view.State != StateLocated {
		t.Fatalf("expected Located, got %v", view.State)
	}
	if view.Center != DefaultCenter {
		t.Fatalf("expected default center, got %+v", view.Center)
	}
	if len(view.Pools) != 1 {
		t.Fatal("expected pool list populated even on denial")
	}
	if view.Error != "" {
		t.Fatalf("denial on start is not an error state, got %q", view.Error)
	}
}

func TestController_GeolocationSuccessSetsCenter(t *testing.T) {
	home := geo.Coordinate{Lat: 51.5074, Lon: -0.1278}
	locator := &fakeLocator{coord: home}
	finder := &fakeFinder{}
	c := NewController(locator, finder, &fakeGeocoder{}, &fakeCountry{code: "GB"}, nil)

	c.Start(context.Background())

	view := c.View()
	if view.Center != home {
		t.Fatalf("expected device location, got %+v", view.Center)
	}
	if view.Country != "GB" {
		t.Fatalf("expected country code recorded, got %q", view.Country)
	}
	if len(finder.centers) != 1 || finder.centers[0] != home {
		t.Fatalf("expected aggregation at device location, got %+v", finder.centers)
	}
}

func TestController_UseMyLocationFailureKeepsPriorState(t *testing.T) {
	locator := &fakeLocator{coord: geo.Coordinate{Lat: 51.5, Lon: -0.1}}
	finder := &fakeFinder{pools: []pools.Pool{{ID: 1, Name: "Riverside Pool"}}}
	c := NewController(locator, finder, &fakeGeocoder{}, nil, nil)
	c.Start(context.Background())
	before := c.View()

	locator.err = errors.New("permission denied")
	c.UseMyLocation(context.Background())

	after := c.View()
	if after.Center != before.Center {
		t.Fatal("expected center untouched on failure")
	}
	if len(after.Pools) != len(before.Pools) {
		t.Fatal("expected pool list untouched on failure")
	}
	if after.Error == "" {
		t.Fatal("expected user-visible error message")
	}
}

func TestController_SearchAfterDenialRecentersAndClearsError(t *testing.T) {
	locator := &fakeLocator{err: errors.New("permission denied")}
	searched := geo.Coordinate{Lat: 40.6501, Lon: -73.9496}
	geocoder := &fakeGeocoder{place: &places.Suggestion{Label: "Brooklyn", Lat: searched.Lat, Lon: searched.Lon}}
	finder := &fakeFinder{pools: []pools.Pool{{ID: 2, Name: "Sunset Pool"}}}
	c := NewController(locator, finder, geocoder, nil, nil)
	c.Start(context.Background())

	c.Search(context.Background(), "Brooklyn")

	view := c.View()
	if view.Center != searched {
		t.Fatalf("expected searched center, got %+v", view.Center)
	}
	if view.Error != "" {
		t.Fatalf("expected error cleared, got %q", view.Error)
	}
	if len(finder.centers) != 2 || finder.centers[1] != searched {
		t.Fatalf("expected re-aggregation at searched center, got %+v", finder.centers)
	}
}

func TestController_SearchNoMatchLeavesStateUnchanged(t *testing.T) {
	locator := &fakeLocator{coord: geo.Coordinate{Lat: 51.5, Lon: -0.1}}
	geocoder := &fakeGeocoder{err: errors.New("no match")}
	finder := &fakeFinder{}
	c := NewController(locator, finder, geocoder, nil, nil)
	c.Start(context.Background())
	before := c.View()

	c.Search(context.Background(), "xyzzy")

	after := c.View()
	if after.Center != before.Center {
		t.Fatal("expected center unchanged")
	}
	if after.Error == "" {
		t.Fatal("expected error message for failed search")
	}
	if len(finder.centers) != 1 {
		t.Fatalf("expected no re-aggregation, got %d calls", len(finder.centers))
	}
}

func TestController_SelectSuggestionSkipsGeocoding(t *testing.T) {
	locator := &fakeLocator{coord: geo.Coordinate{Lat: 51.5, Lon: -0.1}}
	geocoder := &fakeGeocoder{}
	finder := &fakeFinder{}
	c := NewController(locator, finder, geocoder, nil, nil)
	c.Start(context.Background())
	c.ApplySuggestions([]places.Suggestion{{Label: "Brooklyn", Lat: 40.6501, Lon: -73.9496}})

	c.SelectSuggestion(context.Background(), places.Suggestion{Label: "Brooklyn", Lat: 40.6501, Lon: -73.9496})

	view := c.View()
	if geocoder.calls != 0 {
		t.Fatal("expected no geocode round-trip on selection")
	}
	if view.Center.Lat != 40.6501 || view.Center.Lon != -73.9496 {
		t.Fatalf("expected suggestion coordinate, got %+v", view.Center)
	}
	if len(view.Suggestions) != 0 {
		t.Fatal("expected suggestion state cleared on selection")
	}
}

func TestController_AggregationFailureSurfacesError(t *testing.T) {
	locator := &fakeLocator{coord: geo.Coordinate{Lat: 51.5, Lon: -0.1}}
	finder := &fakeFinder{err: errors.New("overpass down")}
	c := NewController(locator, finder, &fakeGeocoder{}, nil, nil)

	c.Start(context.Background())

	view := c.View()
	if view.State != StateLocated {
		t.Fatal("expected Located even when aggregation fails")
	}
	if len(view.Pools) != 0 {
		t.Fatal("expected empty pool list on aggregation failure")
	}
	if view.Error == "" {
		t.Fatal("expected error message on aggregation failure")
	}
}

func TestController_OverlayBlockedOnlyWhileLocating(t *testing.T) {
	locator := &fakeLocator{coord: geo.Coordinate{Lat: 51.5, Lon: -0.1}}
	overlay := &fakeOverlay{}
	c := NewController(locator, &fakeFinder{}, &fakeGeocoder{}, nil, overlay)

	c.Start(context.Background())

	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	if overlay.shows != 1 || overlay.hides != 1 {
		t.Fatalf("expected one show/hide cycle, got %d/%d", overlay.shows, overlay.hides)
	}
	if overlay.blocked {
		t.Fatal("expected pointer events unblocked after locating")
	}
}
