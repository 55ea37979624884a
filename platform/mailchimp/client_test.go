package mailchimp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDatacenterExtraction(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"0123456789abcdef-us10", "us10"},
		{"0123456789abcdef-", ""},
		{"nodatacenter", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := datacenter(c.key); got != c.want {
			t.Errorf("datacenter(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}

func TestEnabled(t *testing.T) {
	if (&Client{apiKey: "k", listID: "l"}).Enabled() {
		t.Fatal("expected disabled without a base URL")
	}
	if !(&Client{apiKey: "k", listID: "l", baseURL: "https://us10.api.mailchimp.com/3.0"}).Enabled() {
		t.Fatal("expected enabled with key, list and base URL")
	}
}

func TestSubscribe_SendsMemberRequest(t *testing.T) {
	var got struct {
		EmailAddress string            `json:"email_address"`
		Status       string            `json:"status"`
		MergeFields  map[string]string `json:"merge_fields"`
	}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/lists/list1/members" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "member1"})
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, "key-us10", "list1", "pending", nil)

	memberID, err := client.Subscribe(context.Background(), "a@example.com", "Ada")
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if memberID != "member1" {
		t.Fatalf("unexpected member id %q", memberID)
	}
	if got.EmailAddress != "a@example.com" || got.Status != "pending" {
		t.Fatalf("unexpected request %+v", got)
	}
	if got.MergeFields["FNAME"] != "Ada" {
		t.Fatalf("expected FNAME merge field, got %+v", got.MergeFields)
	}
	// "anystring:key-us10" base64-encoded.
	if auth != "Basic YW55c3RyaW5nOmtleS11czEw" {
		t.Fatalf("unexpected auth header %q", auth)
	}
}

func TestSubscribe_RejectionCarriesStatusAndTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"title":  "Member Exists",
			"detail": "a@example.com is already a list member",
		})
	}))
	defer srv.Close()

	client := NewWithBaseURL(srv.URL, "key-us10", "list1", "pending", nil)

	_, err := client.Subscribe(context.Background(), "a@example.com", "Ada")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Title != "Member Exists" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}
