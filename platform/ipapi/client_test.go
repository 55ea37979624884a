package ipapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCountryCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"ip":"203.0.113.9","country_code":"US"}`))
	}))
	defer srv.Close()

	code, err := NewWithBaseURL(srv.URL).CountryCode(context.Background())
	if err != nil {
		t.Fatalf("CountryCode failed: %v", err)
	}
	if code != "US" {
		t.Fatalf("unexpected country code %q", code)
	}
}

func TestCountryCode_NonOKIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := NewWithBaseURL(srv.URL).CountryCode(context.Background()); err == nil {
		t.Fatal("expected error on non-OK response")
	}
}
