// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MapTilerConfig provides settings for the MapTiler geocoding API.
type MapTilerConfig interface {
	GetMapTilerKey() string
	IsMapTilerEnabled() bool
}

// OSMConfig provides settings for the OpenStreetMap-backed providers
// (Nominatim geocoding and the Overpass POI interpreter).
type OSMConfig interface {
	GetNominatimURL() string
	GetOverpassURL() string
	GetOSMUserAgent() string
}

// PhotonConfig provides settings for the Photon autocomplete provider.
type PhotonConfig interface {
	GetPhotonURL() string
}

// GeocodeConfig provides settings for the geocode proxy cache.
type GeocodeConfig interface {
	MapTilerConfig
	GetGeocodeCacheTTL() time.Duration
}

// PlacesConfig provides settings for the place search module.
type PlacesConfig interface {
	PhotonConfig
	OSMConfig
}

// PoolsConfig provides settings for the pool discovery module.
type PoolsConfig interface {
	OSMConfig
	MapTilerConfig
	GetNameTagLocale() string
}

// MailchimpConfig provides settings for the newsletter signup relay.
type MailchimpConfig interface {
	GetMailchimpAPIKey() string
	GetMailchimpListID() string
	GetMailchimpStatus() string
	IsMailchimpEnabled() bool
}

// SchedulerConfig provides settings for the asynq background queue.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	CORSAllowAll     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	MapTilerKey      string
	NominatimURL     string
	OverpassURL      string
	PhotonURL        string
	OSMUserAgent     string
	GeocodeCacheTTL  time.Duration
	NameTagLocale    string
	MailchimpAPIKey  string
	MailchimpListID  string
	MailchimpStatus  string
	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MapTilerConfig implementation
func (c *Config) GetMapTilerKey() string { return c.MapTilerKey }
func (c *Config) IsMapTilerEnabled() bool {
	return c.MapTilerKey != ""
}

// OSMConfig implementation
func (c *Config) GetNominatimURL() string { return c.NominatimURL }
func (c *Config) GetOverpassURL() string  { return c.OverpassURL }
func (c *Config) GetOSMUserAgent() string { return c.OSMUserAgent }

// PhotonConfig implementation
func (c *Config) GetPhotonURL() string { return c.PhotonURL }

// GeocodeConfig implementation
func (c *Config) GetGeocodeCacheTTL() time.Duration { return c.GeocodeCacheTTL }

// PoolsConfig implementation
func (c *Config) GetNameTagLocale() string { return c.NameTagLocale }

// MailchimpConfig implementation
func (c *Config) GetMailchimpAPIKey() string { return c.MailchimpAPIKey }
func (c *Config) GetMailchimpListID() string { return c.MailchimpListID }
func (c *Config) GetMailchimpStatus() string { return c.MailchimpStatus }
func (c *Config) IsMailchimpEnabled() bool {
	return c.MailchimpAPIKey != "" && c.MailchimpListID != ""
}

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// Load reads configuration from environment variables.
// All provider settings are optional: a missing MapTiler key degrades the
// geocode proxy to "no content" responses and a missing Redis URL disables
// the background relay queue.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:              getEnv("APP_ENV", "development"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:     corsAllowAll,
		CORSOrigins:      corsOrigins,
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		MapTilerKey:      getEnv("MAPTILER_KEY", ""),
		NominatimURL:     getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OverpassURL:      getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		PhotonURL:        getEnv("PHOTON_URL", "https://photon.komoot.io"),
		OSMUserAgent:     getEnv("OSM_USER_AGENT", "wym-app/1.0 (contactwymofficial@gmail.com)"),
		GeocodeCacheTTL:  mustDuration(getEnv("GEOCODE_CACHE_TTL", "1h")),
		NameTagLocale:    getEnv("POOL_NAME_LOCALE", "en"),
		MailchimpAPIKey:  getEnv("MAILCHIMP_API_KEY", ""),
		MailchimpListID:  getEnv("MAILCHIMP_LIST_ID", ""),
		MailchimpStatus:  getEnv("MAILCHIMP_STATUS", "pending"),
		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return time.Hour
	}
	return d
}

func mustInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
