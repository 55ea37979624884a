// Package ipapi provides a best-effort client for the ipapi.co IP lookup
// service. This is part of the platform layer and contains no business logic.
package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://ipapi.co"

// Client performs IP-based country lookups. Callers treat every failure as
// "country unknown"; nothing in the widget depends on the answer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates an ipapi.co client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewWithBaseURL creates a client against a custom endpoint, used in tests.
func NewWithBaseURL(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
	}
}

// CountryCode returns the ISO country code for the caller's public IP.
func (c *Client) CountryCode(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var decoded struct {
		CountryCode string `json:"country_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	return decoded.CountryCode, nil
}
