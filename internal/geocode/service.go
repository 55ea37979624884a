package geocode

import (
	"context"
	"encoding/json"
	"errors"

	"wym_site_backend/platform/apperr"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/maptiler"
)

// reverseGeocoder is the slice of the MapTiler client the proxy needs.
type reverseGeocoder interface {
	Enabled() bool
	ReverseRaw(ctx context.Context, lon, lat string) (json.RawMessage, error)
}

// Service is the caching reverse-geocode proxy. The cache key is the
// literal concatenation of the lat and lon query strings as received,
// never parsed or rounded, so "40.7" and "40.70" occupy different slots.
type Service struct {
	cache    *Cache
	provider reverseGeocoder
	log      *logger.Logger
}

// NewService creates the proxy service around an explicitly constructed
// cache, so its lifetime is owned by the composition root.
func NewService(cache *Cache, provider reverseGeocoder, log *logger.Logger) *Service {
	return &Service{
		cache:    cache,
		provider: provider,
		log:      log,
	}
}

// Lookup returns the geocoder payload for the raw coordinate strings,
// served from cache when a fresh entry exists. Failed upstream calls are
// never cached.
func (s *Service) Lookup(ctx context.Context, lat, lon string) (json.RawMessage, error) {
	if !s.provider.Enabled() {
		return nil, apperr.NoContent("geocoding provider not configured")
	}

	key := lat + "," + lon
	if payload, ok := s.cache.Get(key); ok {
		return payload, nil
	}

	payload, err := s.provider.ReverseRaw(ctx, lon, lat)
	if err != nil {
		var upstream *maptiler.UpstreamError
		if errors.As(err, &upstream) {
			return nil, apperr.Wrap(apperr.KindUpstream, "geocoding provider unavailable", err)
		}
		return nil, apperr.Wrap(apperr.KindInternal, "geocode lookup failed", err)
	}

	s.cache.Put(key, payload)
	return payload, nil
}
