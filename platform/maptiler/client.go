// Package maptiler provides a client for the MapTiler geocoding API.
// This is part of the platform layer and contains no business logic.
package maptiler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"wym_site_backend/platform/config"
	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/logger"
)

// UpstreamError reports a non-2xx response from the MapTiler API. The
// geocode proxy distinguishes it from transport failures when choosing a
// response status.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("maptiler: upstream status %d", e.Status)
}

// FeatureProperties carries the subset of GeoJSON properties used for
// facility-name resolution.
type FeatureProperties struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

// Feature is one result of a MapTiler geocoding lookup.
type Feature struct {
	Text       string            `json:"text"`
	PlaceName  string            `json:"place_name"`
	Properties FeatureProperties `json:"properties"`
}

type featureCollection struct {
	Features []Feature `json:"features"`
}

// Client calls the MapTiler geocoding API. All methods require a key;
// Enabled reports whether one is configured.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	log        *logger.Logger
}

// New creates a MapTiler client from configuration.
func New(cfg config.MapTilerConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://api.maptiler.com",
		key:        cfg.GetMapTilerKey(),
		log:        log,
	}
}

// NewWithBaseURL creates a client against a custom endpoint, used in tests.
func NewWithBaseURL(baseURL, key string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		key:        key,
		log:        log,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.key != ""
}

// ReverseRaw performs a reverse geocode with the coordinate pair passed
// through exactly as received, returning the raw provider payload. The
// geocode proxy serves this payload verbatim, so no decoding happens here.
func (c *Client) ReverseRaw(ctx context.Context, lon, lat string) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/geocoding/%s,%s.json?key=%s&limit=6",
		c.baseURL, url.QueryEscape(lon), url.QueryEscape(lat), url.QueryEscape(c.key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError("maptiler", "reverse", err)
		}
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := &UpstreamError{Status: resp.StatusCode}
		if c.log != nil {
			c.log.UpstreamError("maptiler", "reverse", err)
		}
		return nil, err
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// ReverseFeatures performs a reverse geocode and decodes the feature list,
// used by the pool-name fallback chain.
func (c *Client) ReverseFeatures(ctx context.Context, coord geo.Coordinate, limit int) ([]Feature, error) {
	lon := strconv.FormatFloat(coord.Lon, 'f', -1, 64)
	lat := strconv.FormatFloat(coord.Lat, 'f', -1, 64)

	payload, err := c.ReverseRaw(ctx, lon, lat)
	if err != nil {
		return nil, err
	}

	var collection featureCollection
	if err := json.Unmarshal(payload, &collection); err != nil {
		return nil, err
	}

	features := collection.Features
	if limit > 0 && len(features) > limit {
		features = features[:limit]
	}
	return features, nil
}
