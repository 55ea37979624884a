// Package photon provides a client for the Photon (Komoot) autocomplete
// geocoding API. This is part of the platform layer and contains no
// business logic.
package photon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wym_site_backend/platform/config"
	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/logger"
)

// Properties carries the subset of Photon feature properties used to build
// suggestion labels.
type Properties struct {
	OsmID   int64  `json:"osm_id"`
	OsmType string `json:"osm_type"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Feature is one autocomplete result. Geometry coordinates are GeoJSON
// order: [lon, lat].
type Feature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Coordinate returns the feature's location; ok is false for malformed
// geometry.
func (f Feature) Coordinate() (geo.Coordinate, bool) {
	if len(f.Geometry.Coordinates) < 2 {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: f.Geometry.Coordinates[1], Lon: f.Geometry.Coordinates[0]}, true
}

type response struct {
	Features []Feature `json:"features"`
}

// Client calls the Photon autocomplete API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a Photon client from configuration.
func New(cfg config.PhotonConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    cfg.GetPhotonURL(),
		log:        log,
	}
}

// Search returns up to limit autocomplete matches for the query, biased
// toward the given coordinate when one is provided.
func (c *Client) Search(ctx context.Context, query string, limit int, bias *geo.Coordinate) ([]Feature, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	if bias != nil {
		params.Set("lat", strconv.FormatFloat(bias.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(bias.Lon, 'f', -1, 64))
	}

	reqURL := fmt.Sprintf("%s/api/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError("photon", "search", err)
		}
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		if c.log != nil {
			c.log.UpstreamError("photon", "search", err)
		}
		return nil, err
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if c.log != nil {
			c.log.UpstreamError("photon", "search", err)
		}
		return nil, err
	}

	return decoded.Features, nil
}
