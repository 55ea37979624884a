package pools

import (
	"context"
	"fmt"
	"strings"

	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/maptiler"
	"wym_site_backend/platform/nominatim"
	"wym_site_backend/platform/overpass"
)

type reversePlaceFinder interface {
	Reverse(ctx context.Context, coord geo.Coordinate) (*nominatim.ReversePlace, error)
}

type poiQuerier interface {
	Query(ctx context.Context, query string) ([]overpass.Element, error)
}

type facilityGeocoder interface {
	Enabled() bool
	ReverseFeatures(ctx context.Context, coord geo.Coordinate, limit int) ([]maptiler.Feature, error)
}

// NameResolver derives a display name for a pool that carries no usable
// tags, by asking up to three external sources in order: a reverse
// geocode of the coordinate, a named-POI search around it, and finally a
// commercial geocoder when one is configured. The first non-empty answer
// wins; provider failures move on to the next step instead of failing the
// resolution.
type NameResolver struct {
	reverse reversePlaceFinder
	poi     poiQuerier
	geo     facilityGeocoder
}

func NewNameResolver(reverse reversePlaceFinder, poi poiQuerier, geocoder facilityGeocoder) *NameResolver {
	return &NameResolver{
		reverse: reverse,
		poi:     poi,
		geo:     geocoder,
	}
}

// Resolve returns a name for the coordinate, or ok=false when every
// source came up empty.
func (r *NameResolver) Resolve(ctx context.Context, coord geo.Coordinate) (string, bool) {
	if name := r.fromReverse(ctx, coord); name != "" {
		return name, true
	}
	if name := r.fromNearbyPOI(ctx, coord); name != "" {
		return name, true
	}
	if name := r.fromGeocoder(ctx, coord); name != "" {
		return name, true
	}
	return "", false
}

func (r *NameResolver) fromReverse(ctx context.Context, coord geo.Coordinate) string {
	place, err := r.reverse.Reverse(ctx, coord)
	if err != nil || place == nil {
		return ""
	}
	if name := strings.TrimSpace(place.Name); name != "" {
		return name
	}
	// Take the most specific segment of the display name, which Nominatim
	// orders narrowest first.
	if segment, _, _ := strings.Cut(place.DisplayName, ","); strings.TrimSpace(segment) != "" {
		return strings.TrimSpace(segment)
	}
	return ""
}

// nearbyNamedQuery finds named POIs within 200m that plausibly belong to
// the same facility as the unnamed pool geometry.
func nearbyNamedQuery(coord geo.Coordinate) string {
	return fmt.Sprintf(`[out:json][timeout:10];
(
  node(around:200,%[1]f,%[2]f)["name"]["leisure"="swimming_pool"];
  way(around:200,%[1]f,%[2]f)["name"]["leisure"="swimming_pool"];
  relation(around:200,%[1]f,%[2]f)["name"]["leisure"="swimming_pool"];
  node(around:200,%[1]f,%[2]f)["name"]["leisure"="sports_centre"];
  way(around:200,%[1]f,%[2]f)["name"]["leisure"="sports_centre"];
  node(around:200,%[1]f,%[2]f)["name"~"pool|swim|aquatic|aquatics|ymca|leisure|recreation|community",i];
  way(around:200,%[1]f,%[2]f)["name"~"pool|swim|aquatic|aquatics|ymca|leisure|recreation|community",i];
);
out tags center 10;`, coord.Lat, coord.Lon)
}

func (r *NameResolver) fromNearbyPOI(ctx context.Context, coord geo.Coordinate) string {
	elements, err := r.poi.Query(ctx, nearbyNamedQuery(coord))
	if err != nil {
		return ""
	}

	fallback := ""
	for _, el := range elements {
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		if keywordRe.MatchString(name) {
			return name
		}
		if fallback == "" {
			fallback = name
		}
	}
	return fallback
}

func (r *NameResolver) fromGeocoder(ctx context.Context, coord geo.Coordinate) string {
	if r.geo == nil || !r.geo.Enabled() {
		return ""
	}

	features, err := r.geo.ReverseFeatures(ctx, coord, 6)
	if err != nil {
		return ""
	}

	fallback := ""
	for _, f := range features {
		name := strings.TrimSpace(f.Text)
		if name == "" {
			name = strings.TrimSpace(f.Properties.Label)
		}
		if name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f.Properties.Category), "swimming") {
			return name
		}
		if fallback == "" && keywordRe.MatchString(name) {
			fallback = name
		}
	}
	return fallback
}
