// Package census fetches ACS population estimates from the Census Data
// API, with an optional response cache and offline CSV fallback.
package census

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches ACS population tables.
type Client interface {
	// PlacePopulations returns the population estimate for every
	// incorporated place and CDP in the country.
	PlacePopulations(ctx context.Context) ([]PopulationRow, error)

	// MetroPopulations returns the population estimate for every
	// metropolitan and micropolitan statistical area.
	MetroPopulations(ctx context.Context) ([]PopulationRow, error)
}

// PopulationRow is one geography's population estimate.
type PopulationRow struct {
	Name       string
	GeoID      string // places: STATEFP+PLACEFP; metros: CBSA code
	StateFIPS  string // places only
	Population int64
	// HasPopulation is false when the API returned a blank or
	// non-numeric value for the geography.
	HasPopulation bool
}

// Cache stores raw API response bodies between runs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// Option configures the API client.
type Option func(*apiClient)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *apiClient) {
		c.baseURL = u
	}
}

// WithAPIKey attaches a Census API key to every request. Keyless access
// is rate limited to 500 requests per day per IP.
func WithAPIKey(key string) Option {
	return func(c *apiClient) {
		c.apiKey = key
	}
}

// WithYear sets the ACS vintage.
func WithYear(year int) Option {
	return func(c *apiClient) {
		c.year = year
	}
}

// WithDatasets sets the place and metro dataset paths, e.g. "acs/acs5"
// and "acs/acs1". Places need the 5-year estimates; small CDPs have no
// 1-year coverage.
func WithDatasets(place, metro string) Option {
	return func(c *apiClient) {
		if place != "" {
			c.placeDataset = place
		}
		if metro != "" {
			c.metroDataset = metro
		}
	}
}

// WithVariable sets the population variable, default B01001_001E.
func WithVariable(v string) Option {
	return func(c *apiClient) {
		c.variable = v
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *apiClient) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *apiClient) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCache stores raw responses in the given cache with the TTL.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *apiClient) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

type apiClient struct {
	baseURL      string
	apiKey       string
	year         int
	placeDataset string
	metroDataset string
	variable     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        Cache
	cacheTTL     time.Duration
}

// NewClient creates an ACS client with the given options.
func NewClient(opts ...Option) Client {
	c := &apiClient{
		baseURL:      "https://api.census.gov/data",
		year:         2023,
		placeDataset: "acs/acs5",
		metroDataset: "acs/acs1",
		variable:     "B01001_001E",
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		limiter:      rate.NewLimiter(2, 2),
		cacheTTL:     30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
