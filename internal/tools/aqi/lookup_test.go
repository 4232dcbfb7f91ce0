package aqi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/compassgenie/internal/airquality"
	"github.com/Cyclone1070/compassgenie/internal/geo"
)

// MockGeocoder implements Geocoder for testing
type MockGeocoder struct {
	GeocodeFunc func(ctx context.Context, address string) (geo.LatLng, bool)
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (geo.LatLng, bool) {
	if m.GeocodeFunc != nil {
		return m.GeocodeFunc(ctx, address)
	}
	return geo.LatLng{}, false
}

func newAirClient(t *testing.T, response map[string]any) *airquality.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)
	return airquality.NewClient(airquality.Options{APIKey: "test-key", BaseURL: srv.URL})
}

func floatPtr(v float64) *float64 { return &v }

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, Request{LocationName: "Gurugram"}.Validate())
	assert.NoError(t, Request{Latitude: floatPtr(28.46), Longitude: floatPtr(77.03)}.Validate())
	assert.Error(t, Request{}.Validate())
	assert.Error(t, Request{Latitude: floatPtr(28.46)}.Validate())
}

func TestLookupByName(t *testing.T) {
	air := newAirClient(t, map[string]any{
		"indexes":           []map[string]any{{"code": "ind_nai", "aqi": 92, "category": "Satisfactory air quality"}},
		"dominantPollutant": "pm10",
		"healthRecommendations": map[string]any{
			"generalPopulation":     "Enjoy your usual outdoor activities.",
			"lungDiseasePopulation": "Consider reducing prolonged exertion.",
		},
	})
	geocoder := &MockGeocoder{
		GeocodeFunc: func(ctx context.Context, address string) (geo.LatLng, bool) {
			assert.Equal(t, "Gurugram", address)
			return geo.LatLng{Lat: 28.4595, Lng: 77.0266}, true
		},
	}
	tool := New(air, geocoder, nil)

	out, err := tool.Lookup(context.Background(), Request{LocationName: "Gurugram"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "## Air Quality for Gurugram"))
	assert.Contains(t, out, "**AQI:** 92 (Satisfactory air quality)")
	assert.Contains(t, out, "**Dominant Pollutant:** pm10")
	assert.Contains(t, out, "### 💡 Health Recommendations")
	assert.Contains(t, out, "* **General Public:** Enjoy your usual outdoor activities.")
	assert.Contains(t, out, "* **Sensitive Groups:** Consider reducing prolonged exertion.")
	assert.NotContains(t, out, "WARNING")
}

func TestLookupByCoordinates(t *testing.T) {
	air := newAirClient(t, map[string]any{
		"indexes": []map[string]any{{"code": "uaqi", "aqi": 40, "category": "Good air quality"}},
	})
	tool := New(air, &MockGeocoder{}, nil)

	out, err := tool.Lookup(context.Background(), Request{
		Latitude: floatPtr(28.46), Longitude: floatPtr(77.03),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "## Air Quality for your current location"))
}

func TestLookupGeocodeFailure(t *testing.T) {
	tool := New(nil, &MockGeocoder{}, nil)

	out, err := tool.Lookup(context.Background(), Request{LocationName: "Atlantis"})
	require.NoError(t, err)
	assert.Equal(t, "Could not find coordinates for Atlantis.", out)
}

func TestLookupProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	air := airquality.NewClient(airquality.Options{APIKey: "test-key", BaseURL: srv.URL})
	tool := New(air, &MockGeocoder{}, nil)

	out, err := tool.Lookup(context.Background(), Request{
		Latitude: floatPtr(28.46), Longitude: floatPtr(77.03),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Error retrieving data:")
}

func TestFormatAdvisoryWarning(t *testing.T) {
	out := formatAdvisory("Delhi", &airquality.Conditions{
		AQI:               180,
		Category:          "Poor air quality",
		DominantPollutant: "pm25",
	})

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 2)
	// The warning leads the advisory, directly under the header.
	assert.Equal(t, "## Air Quality for Delhi", lines[0])
	assert.Equal(t, "⚠️ **WARNING: Unhealthy air levels detected.**", lines[1])
}

func TestFormatAdvisoryWarningThresholdIsExclusive(t *testing.T) {
	out := formatAdvisory("Delhi", &airquality.Conditions{AQI: 150, Category: "Moderate"})
	assert.NotContains(t, out, "WARNING")

	out = formatAdvisory("Delhi", &airquality.Conditions{AQI: 151, Category: "Poor"})
	assert.Contains(t, out, "WARNING")
}

func TestFormatAdvisoryFallbacks(t *testing.T) {
	tests := []struct {
		name          string
		conditions    airquality.Conditions
		wantSensitive string
		wantGeneral   string
		wantPollutant string
	}{
		{
			name: "lung disease advice preferred",
			conditions: airquality.Conditions{
				Recommendations: airquality.Recommendations{
					GeneralPopulation:     "General advice.",
					LungDiseasePopulation: "Lung advice.",
					Children:              "Children advice.",
				},
			},
			wantSensitive: "Lung advice.",
			wantGeneral:   "General advice.",
			wantPollutant: "N/A",
		},
		{
			name: "children advice when no lung advice",
			conditions: airquality.Conditions{
				DominantPollutant: "o3",
				Recommendations: airquality.Recommendations{
					Children: "Children advice.",
				},
			},
			wantSensitive: "Children advice.",
			wantGeneral:   "No specific advice.",
			wantPollutant: "o3",
		},
		{
			name:          "generic caution when nothing reported",
			conditions:    airquality.Conditions{},
			wantSensitive: "Take extra precautions if you have respiratory issues.",
			wantGeneral:   "No specific advice.",
			wantPollutant: "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatAdvisory("here", &tt.conditions)
			assert.Contains(t, out, "* **Sensitive Groups:** "+tt.wantSensitive)
			assert.Contains(t, out, "* **General Public:** "+tt.wantGeneral)
			assert.Contains(t, out, "**Dominant Pollutant:** "+tt.wantPollutant)
		})
	}
}
