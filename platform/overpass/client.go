// Package overpass provides a client for Overpass QL POI queries.
// This is part of the platform layer and contains no business logic.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wym_site_backend/platform/config"
	"wym_site_backend/platform/geo"
	"wym_site_backend/platform/logger"

	"golang.org/x/time/rate"
)

// Center is the centroid Overpass reports for way and relation geometries
// when the query requests `out center`.
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Element is a single node/way/relation from an Overpass response. Nodes
// carry lat/lon directly; ways and relations only carry a centroid, so the
// point fields are pointers to distinguish "absent" from zero.
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Coordinate returns the element's point location, or the centroid for
// non-point geometries. ok is false when neither is present.
func (e Element) Coordinate() (geo.Coordinate, bool) {
	if e.Lat != nil && e.Lon != nil {
		return geo.Coordinate{Lat: *e.Lat, Lon: *e.Lon}, true
	}
	if e.Center != nil {
		return geo.Coordinate{Lat: e.Center.Lat, Lon: e.Center.Lon}, true
	}
	return geo.Coordinate{}, false
}

type response struct {
	Elements []Element `json:"elements"`
}

// Client calls an Overpass interpreter endpoint. Queries are written in
// Overpass QL by the caller; the client only handles transport and decoding.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates an Overpass client from configuration.
func New(cfg config.OSMConfig, log *logger.Logger) *Client {
	return &Client{
		// Overpass pool queries carry a 25s server-side timeout.
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.GetOverpassURL(),
		userAgent:  cfg.GetOSMUserAgent(),
		limiter:    rate.NewLimiter(rate.Limit(2), 2),
		log:        log,
	}
}

// Query executes an Overpass QL query and returns the matched elements.
func (c *Client) Query(ctx context.Context, query string) ([]Element, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("data", query)

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError("overpass", "interpreter", err)
		}
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		if c.log != nil {
			c.log.UpstreamError("overpass", "interpreter", err)
		}
		return nil, err
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if c.log != nil {
			c.log.UpstreamError("overpass", "interpreter", err)
		}
		return nil, err
	}

	return decoded.Elements, nil
}
