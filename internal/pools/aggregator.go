package pools

import (
	"context"
	"fmt"

	"wym_site_backend/platform/apperr"
	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultRadiusMeters is the search radius used when the caller does
	// not specify one.
	DefaultRadiusMeters = 5000

	// resolveBatchSize bounds concurrent name resolutions. The resolver
	// fans out to free public APIs, so batches run sequentially with at
	// most this many lookups in flight.
	resolveBatchSize = 6
)

type nameResolver interface {
	Resolve(ctx context.Context, coord geo.Coordinate) (string, bool)
}

// Service aggregates swimming pools around a center point: one POI query,
// tag-derived names where possible, resolver fallback for the rest, and a
// synthesized coordinate label as the floor.
type Service struct {
	poi      poiQuerier
	resolver nameResolver
	locale   string
	log      *logger.Logger
}

func NewService(poi poiQuerier, resolver nameResolver, locale string, log *logger.Logger) *Service {
	return &Service{
		poi:      poi,
		resolver: resolver,
		locale:   locale,
		log:      log,
	}
}

// poolsQuery matches swimming-pool features of every geometry kind within
// radius of the center, requesting tags and centroids for non-points.
func poolsQuery(center geo.Coordinate, radiusMeters int) string {
	return fmt.Sprintf(`[out:json][timeout:25];
(
  node["leisure"="swimming_pool"](around:%[1]d,%[2]f,%[3]f);
  way["leisure"="swimming_pool"](around:%[1]d,%[2]f,%[3]f);
  relation["leisure"="swimming_pool"](around:%[1]d,%[2]f,%[3]f);
);
out center tags;`, radiusMeters, center.Lat, center.Lon)
}

type candidate struct {
	id    int64
	coord geo.Coordinate
	tags  map[string]string
}

// FindPools returns the deduplicated pool list around center. Features
// without a resolvable coordinate are dropped; every other feature yields
// exactly one Pool. A failed POI query returns an empty list and an error.
func (s *Service) FindPools(ctx context.Context, center geo.Coordinate, radiusMeters int) ([]Pool, error) {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	elements, err := s.poi.Query(ctx, poolsQuery(center, radiusMeters))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "pool lookup failed", err)
	}

	candidates := make([]candidate, 0, len(elements))
	for _, el := range elements {
		coord, ok := el.Coordinate()
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{id: el.ID, coord: coord, tags: el.Tags})
	}

	resolved := make([]Pool, len(candidates))
	for start := 0; start < len(candidates); start += resolveBatchSize {
		end := start + resolveBatchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				resolved[i] = s.buildPool(gctx, candidates[i])
				return nil
			})
		}
		_ = g.Wait()
	}

	// Dedupe by provider id, last write wins.
	unique := make(map[int64]int, len(resolved))
	out := make([]Pool, 0, len(resolved))
	for _, pool := range resolved {
		if at, seen := unique[pool.ID]; seen {
			out[at] = pool
			continue
		}
		unique[pool.ID] = len(out)
		out = append(out, pool)
	}
	return out, nil
}

func (s *Service) buildPool(ctx context.Context, c candidate) Pool {
	name := nameFromTags(c.tags, s.locale)
	if name == "" {
		if resolvedName, ok := s.resolver.Resolve(ctx, c.coord); ok {
			name = resolvedName
		}
	}
	if name == "" {
		name = fmt.Sprintf("Swimming Pool (%.5f, %.5f)", c.coord.Lat, c.coord.Lon)
	}

	return Pool{
		ID:   c.id,
		Name: name,
		Lat:  c.coord.Lat,
		Lon:  c.coord.Lon,
	}
}
