// Package airquality queries the Google Air Quality API for current
// conditions on the 0-500 local index scale, with health recommendations.
package airquality

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Cyclone1070/compassgenie/internal/geo"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://airquality.googleapis.com/v1"

	// uaqi is the Universal AQI code; the local index is preferred when a
	// country-specific one is reported alongside it.
	universalIndexCode = "uaqi"
)

// Conditions is the distilled current-conditions report for one location.
type Conditions struct {
	AQI               int
	Category          string
	DominantPollutant string
	Recommendations   Recommendations
}

// Recommendations maps population segments to advisory text. Fields may be
// empty; callers apply their own fallback chain.
type Recommendations struct {
	GeneralPopulation     string
	LungDiseasePopulation string
	Children              string
}

// Options configures a Client.
type Options struct {
	APIKey  string
	BaseURL string
	Logger  *slog.Logger

	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Client talks to the Air Quality API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
	timeout    time.Duration
}

// NewClient creates an Air Quality client.
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
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		apiKey:  opts.APIKey,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:  opts.Logger,
		timeout: opts.Timeout,
	}
}

type lookupRequest struct {
	Location          wireLatLng `json:"location"`
	ExtraComputations []string   `json:"extraComputations"`
}

type wireLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type lookupResponse struct {
	Indexes []struct {
		Code     string `json:"code"`
		AQI      int    `json:"aqi"`
		Category string `json:"category"`
	} `json:"indexes"`
	DominantPollutant     string `json:"dominantPollutant"`
	HealthRecommendations struct {
		GeneralPopulation     string `json:"generalPopulation"`
		LungDiseasePopulation string `json:"lungDiseasePopulation"`
		Children              string `json:"children"`
	} `json:"healthRecommendations"`
}

// CurrentConditions fetches the local air quality index, dominant pollutant
// and health recommendations for a coordinate pair.
func (c *Client) CurrentConditions(ctx context.Context, loc geo.LatLng) (*Conditions, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(lookupRequest{
		Location: wireLatLng{Latitude: loc.Lat, Longitude: loc.Lng},
		ExtraComputations: []string{
			"LOCAL_AQI",
			"HEALTH_RECOMMENDATIONS",
			"DOMINANT_POLLUTANT_CONCENTRATION",
		},
	})
	if err != nil {
		return nil, err
	}

	reqURL := c.baseURL + "/currentConditions:lookup?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("air quality service returned HTTP %d", resp.StatusCode)
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if len(out.Indexes) == 0 {
		return nil, errors.New("no air quality data for location")
	}

	// Prefer the local 0-500 scale over the universal index.
	local := out.Indexes[0]
	for _, idx := range out.Indexes {
		if idx.Code != universalIndexCode {
			local = idx
			break
		}
	}

	return &Conditions{
		AQI:               local.AQI,
		Category:          local.Category,
		DominantPollutant: out.DominantPollutant,
		Recommendations: Recommendations{
			GeneralPopulation:     out.HealthRecommendations.GeneralPopulation,
			LungDiseasePopulation: out.HealthRecommendations.LungDiseasePopulation,
			Children:              out.HealthRecommendations.Children,
		},
	}, nil
}
