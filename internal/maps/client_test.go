package maps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/compassgenie/internal/geo"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Options{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
}

func TestTextSearchOK(t *testing.T) {
	var gotQuery, gotKey string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place/textsearch/json", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotKey = r.URL.Query().Get("key")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{
					"name":              "Blue Tokai",
					"rating":            4.6,
					"formatted_address": "Sector 27, Gurugram",
					"geometry":          map[string]any{"location": map[string]any{"lat": 28.46, "lng": 77.03}},
				},
			},
		})
	}))

	results, err := client.TextSearch(context.Background(), "coffee", geo.LatLng{Lat: 28.46, Lng: 77.03}, 10000)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "coffee", gotQuery)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "Blue Tokai", results[0].Name)
	assert.Equal(t, 4.6, results[0].Rating)
	assert.Equal(t, "Sector 27, Gurugram", results[0].FormattedAddress)
	assert.InDelta(t, 28.46, results[0].Geometry.Location.Lat, 1e-9)
}

func TestTextSearchZeroResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
	}))

	results, err := client.TextSearch(context.Background(), "nothing", geo.LatLng{}, 10000)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTextSearchProviderError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status":        "REQUEST_DENIED",
			"error_message": "The provided API key is invalid.",
		})
	}))

	results, err := client.TextSearch(context.Background(), "coffee", geo.LatLng{}, 10000)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.Contains(t, err.Error(), "Maps Error: REQUEST_DENIED")
	assert.Contains(t, err.Error(), "The provided API key is invalid.")
}

func TestTextSearchHTTPError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.TextSearch(context.Background(), "coffee", geo.LatLng{}, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected HTTP status 500")
}

func TestDirections(t *testing.T) {
	var gotWaypoints string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/directions/json", r.URL.Path)
		gotWaypoints = r.URL.Query().Get("waypoints")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"routes": []map[string]any{
				{
					"legs": []map[string]any{
						{
							"distance": map[string]any{"text": "12.4 km"},
							"duration": map[string]any{"text": "25 mins"},
						},
					},
					"overview_polyline": map[string]any{"points": "_p~iF~ps|U_ulLnnqC"},
				},
			},
		})
	}))

	routes, err := client.Directions(context.Background(), "28.46,77.03", "Cyber Hub", "driving", []string{"Galleria Market", "Sector 29"})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Galleria Market|Sector 29", gotWaypoints)
	assert.Equal(t, "12.4 km", routes[0].Legs[0].Distance.Text)
	assert.Equal(t, "25 mins", routes[0].Legs[0].Duration.Text)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC", routes[0].OverviewPolyline.Points)
}

func TestDirectionsZeroResults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
	}))

	routes, err := client.Directions(context.Background(), "0,0", "nowhere", "driving", nil)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestGeocode(t *testing.T) {
	var hits atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geocode/json", r.URL.Path)
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{"geometry": map[string]any{"location": map[string]any{"lat": 28.4526, "lng": 77.0863}}},
			},
		})
	}))

	loc, ok := client.Geocode(context.Background(), "Gurugram")
	require.True(t, ok)
	assert.InDelta(t, 28.4526, loc.Lat, 1e-9)
	assert.InDelta(t, 77.0863, loc.Lng, 1e-9)

	// Second lookup is served from the cache.
	loc2, ok := client.Geocode(context.Background(), "Gurugram")
	require.True(t, ok)
	assert.Equal(t, loc, loc2)
	assert.Equal(t, int64(1), hits.Load())
}

func TestGeocodeNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS"})
	}))

	_, ok := client.Geocode(context.Background(), "xyzzy")
	assert.False(t, ok)
}

func TestGeocodeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refused connections from here on
	client := NewClient(Options{APIKey: "test-key", BaseURL: srv.URL})

	_, ok := client.Geocode(context.Background(), "anywhere")
	assert.False(t, ok)
}

func TestMockMode(t *testing.T) {
	client := NewClient(Options{})
	require.True(t, client.MockMode())

	results, err := client.TextSearch(context.Background(), "coffee", geo.LatLng{Lat: 28.46, Lng: 77.03}, 10000)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, MockPlaceName, results[0].Name)
	assert.Equal(t, 4.5, results[0].Rating)
	assert.InDelta(t, 28.4595, results[0].Geometry.Location.Lat, 1e-9)
	assert.InDelta(t, 77.0266, results[0].Geometry.Location.Lng, 1e-9)

	routes, err := client.Directions(context.Background(), "0,0", "anywhere", "driving", nil)
	require.NoError(t, err)
	assert.Empty(t, routes)

	loc, ok := client.Geocode(context.Background(), "anywhere")
	require.True(t, ok)
	assert.InDelta(t, 28.4526, loc.Lat, 1e-9)
	assert.InDelta(t, 77.0863, loc.Lng, 1e-9)
}
