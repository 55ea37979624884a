// Package mailchimp provides a client for the Mailchimp lists/members API.
// This is part of the platform layer and contains no business logic.
package mailchimp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wym_site_backend/platform/config"
	"wym_site_backend/platform/logger"
)

// APIError reports a rejection from the Mailchimp API. The subscribe
// handler passes its status and title through to the frontend.
type APIError struct {
	Status int
	Title  string
	Detail string
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("mailchimp: %s (%d)", e.Title, e.Status)
	}
	return fmt.Sprintf("mailchimp: status %d", e.Status)
}

// Client subscribes members to a Mailchimp audience list.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	listID     string
	status     string
	log        *logger.Logger
}

// New creates a Mailchimp client from configuration. The API datacenter is
// encoded after the final dash of the key (e.g. "xxxx-us10") and determines
// the endpoint host.
func New(cfg config.MailchimpConfig, log *logger.Logger) *Client {
	apiKey := cfg.GetMailchimpAPIKey()

	baseURL := ""
	if dc := datacenter(apiKey); dc != "" {
		baseURL = fmt.Sprintf("https://%s.api.mailchimp.com/3.0", dc)
	}

	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		listID:     cfg.GetMailchimpListID(),
		status:     cfg.GetMailchimpStatus(),
		log:        log,
	}
}

// NewWithBaseURL creates a client against a custom endpoint, used in tests.
func NewWithBaseURL(baseURL, apiKey, listID, status string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		listID:     listID,
		status:     status,
		log:        log,
	}
}

// Enabled reports whether the client has a usable key, datacenter and list.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.listID != "" && c.baseURL != ""
}

type memberRequest struct {
	EmailAddress string            `json:"email_address"`
	Status       string            `json:"status"`
	MergeFields  map[string]string `json:"merge_fields"`
}

type memberResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Subscribe adds a member to the configured list and returns the member ID.
func (c *Client) Subscribe(ctx context.Context, email, name string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("mailchimp: not configured")
	}

	body, err := json.Marshal(memberRequest{
		EmailAddress: email,
		Status:       c.status,
		MergeFields:  map[string]string{"FNAME": name},
	})
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/lists/%s/members", c.baseURL, c.listID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+basicAuth(c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError("mailchimp", "subscribe", err)
		}
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var decoded memberResponse
	// Mailchimp error payloads are JSON too; decode failures on an error
	// status still surface the status itself.
	_ = json.NewDecoder(resp.Body).Decode(&decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Title: decoded.Title, Detail: decoded.Detail}
		if c.log != nil {
			c.log.UpstreamError("mailchimp", "subscribe", apiErr)
		}
		return "", apiErr
	}

	return decoded.ID, nil
}

// datacenter extracts the Mailchimp datacenter suffix from an API key.
func datacenter(apiKey string) string {
	idx := strings.LastIndex(apiKey, "-")
	if idx < 0 || idx == len(apiKey)-1 {
		return ""
	}
	return apiKey[idx+1:]
}

func basicAuth(apiKey string) string {
	return base64.StdEncoding.EncodeToString([]byte("anystring:" + apiKey))
}
