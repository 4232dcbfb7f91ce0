// Package maps is a client for the Google Maps web services used by the
// assistant: place text search, driving directions, geocoding, and the
// polyline codec for route geometry.
//
// When no API key is configured the client runs in mock mode and serves
// fixed deterministic responses instead of calling the network, so the rest
// of the system can be exercised offline.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Cyclone1070/compassgenie/internal/geo"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	// MockPlaceName is the name of the single place returned by text search
	// in mock mode.
	MockPlaceName = "Mock Place in Requested City"
)

var (
	// Fixed mock coordinates.
	mockPlaceLocation   = geo.LatLng{Lat: 28.4595, Lng: 77.0266}
	mockGeocodeLocation = geo.LatLng{Lat: 28.4526, Lng: 77.0863}
)

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	// APIKey is the Maps credential. Empty enables mock mode.
	APIKey string

	// BaseURL overrides the provider endpoint, for tests.
	BaseURL string

	Logger *slog.Logger

	// Rate limiting across all Maps endpoints.
	RequestsPerSecond float64
	Burst             int

	// Per-call timeouts.
	SearchTimeout  time.Duration
	GeocodeTimeout time.Duration
}

// Client talks to the Maps web services. Safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	limiter        *rate.Limiter
	logger         *slog.Logger
	searchTimeout  time.Duration
	geocodeTimeout time.Duration
	geocodeCache   *ttlCache
	mock           bool
}

// NewClient creates a Maps client. Mock mode is selected when no API key is
// present in the options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 10
	}
	if opts.Burst <= 0 {
		opts.Burst = 5
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 10 * time.Second
	}
	if opts.GeocodeTimeout <= 0 {
		opts.GeocodeTimeout = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiKey:         opts.APIKey,
		baseURL:        strings.TrimSuffix(opts.BaseURL, "/"),
		limiter:        rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:         opts.Logger,
		searchTimeout:  opts.SearchTimeout,
		geocodeTimeout: opts.GeocodeTimeout,
		geocodeCache:   newTTLCache(5*time.Minute, 1000),
		mock:           opts.APIKey == "",
	}
}

// MockMode reports whether the client serves canned offline responses.
func (c *Client) MockMode() bool {
	return c.mock
}

// TextSearch finds places matching query around center within radiusMeters.
// Results come back in provider order. Zero results is not an error; any
// non-OK provider status is, with the provider's message attached.
func (c *Client) TextSearch(ctx context.Context, query string, center geo.LatLng, radiusMeters int) ([]PlaceResult, error) {
	if c.mock {
		c.logger.Debug("maps: mock text search", "query", query)
		return []PlaceResult{{
			Name:     MockPlaceName,
			Rating:   4.5,
			Geometry: Geometry{Location: mockPlaceLocation},
		}}, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("radius", strconv.Itoa(radiusMeters))

	var out searchResponse
	if err := c.get(ctx, "/place/textsearch/json", params, c.searchTimeout, &out); err != nil {
		return nil, err
	}

	switch out.Status {
	case statusOK:
		return out.Results, nil
	case statusZeroResults:
		return nil, nil
	default:
		return nil, fmt.Errorf("Maps Error: %s - %s", out.Status, out.ErrorMessage)
	}
}

// Directions requests candidate routes from origin to destination. Optional
// waypoints are visited in order. Zero routes is not an error.
//
// Mock mode reports zero routes: only the search and geocoding endpoints
// carry canned fixtures.
func (c *Client) Directions(ctx context.Context, origin, destination, mode string, waypoints []string) ([]RouteResult, error) {
	if c.mock {
		c.logger.Debug("maps: mock directions", "destination", destination)
		return nil, nil
	}

	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", mode)
	if len(waypoints) > 0 {
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}

	var out directionsResponse
	if err := c.get(ctx, "/directions/json", params, c.searchTimeout, &out); err != nil {
		return nil, err
	}

	switch out.Status {
	case statusOK:
		return out.Routes, nil
	case statusZeroResults:
		return nil, nil
	default:
		return nil, fmt.Errorf("Maps Error: %s - %s", out.Status, out.ErrorMessage)
	}
}

// Geocode resolves a free-text address to coordinates. All failures, from
// transport errors to zero results, are reported as not-found so callers can
// degrade to the caller's GPS location instead of aborting the turn.
func (c *Client) Geocode(ctx context.Context, address string) (geo.LatLng, bool) {
	if c.mock {
		c.logger.Debug("maps: mock geocode", "address", address)
		return mockGeocodeLocation, true
	}

	if cached, ok := c.geocodeCache.get(address); ok {
		return geo.LatLng{Lat: cached.lat, Lng: cached.lng}, true
	}

	params := url.Values{}
	params.Set("address", address)

	var out geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, c.geocodeTimeout, &out); err != nil {
		c.logger.Warn("maps: geocode request failed", "address", address, "error", err)
		return geo.LatLng{}, false
	}

	if out.Status != statusOK || len(out.Results) == 0 {
		return geo.LatLng{}, false
	}

	loc := out.Results[0].Geometry.Location
	c.geocodeCache.set(address, cachedLocation{lat: loc.Lat, lng: loc.Lng})
	return loc, true
}

// get performs a rate-limited GET against a Maps endpoint and decodes the
// JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps: unexpected HTTP status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
