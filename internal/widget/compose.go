package widget

import (
	"wym_site_backend/internal/places"
	"wym_site_backend/internal/pools"
	"wym_site_backend/platform/ipapi"
)

// The pools and places services double as the widget's aggregation and
// geocoding capabilities; ipapi covers the country probe.
var (
	_ PoolFinder         = (*pools.Service)(nil)
	_ Geocoder           = (*places.Service)(nil)
	_ SuggestionProvider = (*places.Service)(nil)
	_ CountryLookup      = (*ipapi.Client)(nil)
)

// NewSiteController assembles a controller against the live ipapi.co
// country lookup. Hosts supply the remaining capabilities; locator and
// overlay may be nil for headless embeds.
func NewSiteController(locator Geolocator, finder PoolFinder, geocode Geocoder, overlay Overlay) *Controller {
	return NewController(locator, finder, geocode, ipapi.New(), overlay)
}
