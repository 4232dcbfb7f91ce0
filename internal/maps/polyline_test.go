package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/compassgenie/internal/geo"
)

func TestDecodePolyline(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    []geo.LatLng
	}{
		{
			name:    "empty string decodes to empty slice",
			encoded: "",
			want:    []geo.LatLng{},
		},
		{
			name:    "reference example",
			encoded: "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			want: []geo.LatLng{
				{Lat: 38.5, Lng: -120.2},
				{Lat: 40.7, Lng: -120.95},
				{Lat: 43.252, Lng: -126.453},
			},
		},
		{
			name:    "single point",
			encoded: "_p~iF~ps|U",
			want: []geo.LatLng{
				{Lat: 38.5, Lng: -120.2},
			},
		},
		{
			name:    "negative deltas",
			encoded: EncodePolyline([]geo.LatLng{{Lat: 10, Lng: 10}, {Lat: 9.99, Lng: 9.98}}),
			want: []geo.LatLng{
				{Lat: 10, Lng: 10},
				{Lat: 9.99, Lng: 9.98},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePolyline(tt.encoded)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i].Lat, got[i].Lat, 1e-5)
				assert.InDelta(t, tt.want[i].Lng, got[i].Lng, 1e-5)
			}
		})
	}
}

func TestDecodePolylineMalformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		// Ends inside a continuation run.
		{name: "truncated mid value", encoded: "_p~iF~ps|U_ulLnnq"},
		// A full latitude but no longitude.
		{name: "odd value count", encoded: "_p~iF"},
		// Bytes below the 63 offset are never produced by the encoder.
		{name: "invalid byte", encoded: "_p~iF~ps|U !"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePolyline(tt.encoded)
			require.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestEncodePolyline(t *testing.T) {
	assert.Equal(t, "", EncodePolyline(nil))
	assert.Equal(t, "", EncodePolyline([]geo.LatLng{}))

	got := EncodePolyline([]geo.LatLng{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	})
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", got)
}

func TestPolylineRoundTrip(t *testing.T) {
	original := []geo.LatLng{
		{Lat: 28.4595, Lng: 77.0266},
		{Lat: 28.4601, Lng: 77.031},
		{Lat: 28.47, Lng: 77.05},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 0, Lng: 0},
	}

	decoded, err := DecodePolyline(EncodePolyline(original))
	require.NoError(t, err)
	require.Len(t, decoded, len(original))
	for i := range original {
		assert.InDelta(t, original[i].Lat, decoded[i].Lat, 1e-5)
		assert.InDelta(t, original[i].Lng, decoded[i].Lng, 1e-5)
	}
}

// Decoding an already-decoded error case must not panic regardless of input.
func TestDecodePolylineArbitraryBytes(t *testing.T) {
	for _, s := range []string{"?", "??", "~", "a", "zzzzzz"} {
		_, _ = DecodePolyline(s)
	}
}
