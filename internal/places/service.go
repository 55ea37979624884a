package places

import (
	"context"
	"fmt"
	"strings"

	"wym_site_backend/platform/apperr"
	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/logger"
	"wym_site_backend/platform/nominatim"
	"wym_site_backend/platform/photon"
)

// SuggestionLimit caps the number of autocomplete matches per query.
const SuggestionLimit = 6

// Suggestion is one autocomplete match, ready for display and selection.
// Selecting one never requires a second geocode round-trip: the coordinate
// travels with the label.
type Suggestion struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type suggestionSearcher interface {
	Search(ctx context.Context, query string, limit int, bias *geo.Coordinate) ([]photon.Feature, error)
}

type placeSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]nominatim.Place, error)
}

// Service backs place autocomplete and one-shot forward geocoding.
type Service struct {
	suggest suggestionSearcher
	geocode placeSearcher
	log     *logger.Logger
}

func NewService(suggest suggestionSearcher, geocode placeSearcher, log *logger.Logger) *Service {
	return &Service{
		suggest: suggest,
		geocode: geocode,
		log:     log,
	}
}

// Suggest returns ranked autocomplete matches for the query, biased toward
// the caller's position when provided. Matches without a resolvable
// coordinate or any label material are dropped.
func (s *Service) Suggest(ctx context.Context, query string, bias *geo.Coordinate) ([]Suggestion, error) {
	features, err := s.suggest.Search(ctx, query, SuggestionLimit, bias)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "suggestion lookup failed", err)
	}

	suggestions := make([]Suggestion, 0, len(features))
	for _, f := range features {
		coord, ok := f.Coordinate()
		if !ok {
			continue
		}
		label := buildLabel(f.Properties)
		if label == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:    fmt.Sprintf("photon-%s-%d", f.Properties.OsmType, f.Properties.OsmID),
			Label: label,
			Lat:   coord.Lat,
			Lon:   coord.Lon,
		})
	}
	return suggestions, nil
}

// Locate forward-geocodes free text to a single coordinate, used when the
// user submits a search instead of picking a suggestion.
func (s *Service) Locate(ctx context.Context, query string) (*Suggestion, error) {
	matches, err := s.geocode.Search(ctx, query, 1)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "place lookup failed", err)
	}
	if len(matches) == 0 {
		return nil, apperr.NotFound("no matching place")
	}

	place := matches[0]
	coord, err := place.Coordinate()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, "place lookup failed", err)
	}

	label := strings.TrimSpace(place.DisplayName)
	if label == "" {
		label = query
	}

	return &Suggestion{
		ID:    fmt.Sprintf("nominatim-%s-%d", place.OsmType, place.OsmID),
		Label: label,
		Lat:   coord.Lat,
		Lon:   coord.Lon,
	}, nil
}

func buildLabel(p photon.Properties) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.Name, p.City, p.Country} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
