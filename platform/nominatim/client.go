// Package nominatim provides a client for the Nominatim geocoding API.
// This is part of the platform layer and contains no business logic.
package nominatim

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

	"golang.org/x/time/rate"
)

// Address holds the address details Nominatim returns for a place.
type Address struct {
	Road         string `json:"road"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Country      string `json:"country"`
	CountryCode  string `json:"country_code"`
}

// Place mirrors the relevant parts of the Nominatim search payload.
// Nominatim encodes coordinates as strings.
type Place struct {
	PlaceID     int64   `json:"place_id"`
	OsmType     string  `json:"osm_type"`
	OsmID       int64   `json:"osm_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

// Coordinate parses the place's stringly-typed coordinate pair.
func (p Place) Coordinate() (geo.Coordinate, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return geo.Coordinate{Lat: lat, Lon: lon}, nil
}

// ReversePlace mirrors the relevant parts of the jsonv2 reverse payload.
type ReversePlace struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

// Client calls the Nominatim HTTP API. The public instance enforces an
// absolute maximum of one request per second, so all calls go through a
// shared limiter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a Nominatim client from configuration.
func New(cfg config.OSMConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.GetNominatimURL(),
		userAgent:  cfg.GetOSMUserAgent(),
		limiter:    rate.NewLimiter(rate.Limit(1), 1),
		log:        log,
	}
}

// Search performs a forward geocode of free text.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", strconv.Itoa(limit))

	var places []Place
	if err := c.get(ctx, "/search", params, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Reverse resolves the place at a coordinate, zoomed to building level.
func (c *Client) Reverse(ctx context.Context, coord geo.Coordinate) (*ReversePlace, error) {
	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Set("addressdetails", "1")
	params.Set("zoom", "18")

	var place ReversePlace
	if err := c.get(ctx, "/reverse", params, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError("nominatim", path, err)
		}
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		if c.log != nil {
			c.log.UpstreamError("nominatim", path, err)
		}
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if c.log != nil {
			c.log.UpstreamError("nominatim", path, err)
		}
		return err
	}
	return nil
}
