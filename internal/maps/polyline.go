package maps

import (
	"fmt"
	"math"

	"github.com/Cyclone1070/compassgenie/internal/geo"
)

// DecodePolyline decodes a Google encoded polyline string into coordinates.
// The format packs zig-zag-signed latitude/longitude deltas into 5-bit groups
// offset by 63, interleaved lat/lng, at 5 decimal places of precision (1e-5).
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
//
// An empty string decodes to an empty slice. A string that ends in the middle
// of a value (no terminating low chunk) is malformed and returns an error
// rather than partial coordinates.
func DecodePolyline(encoded string) ([]geo.LatLng, error) {
	if len(encoded) == 0 {
		return []geo.LatLng{}, nil
	}

	// Roughly 4 bytes per coordinate pair in typical route geometry.
	points := make([]geo.LatLng, 0, len(encoded)/4+1)

	index := 0
	lat := 0
	lng := 0

	for index < len(encoded) {
		deltaLat, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += deltaLat

		deltaLng, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += deltaLng

		points = append(points, geo.LatLng{
			Lat: float64(lat) * 1e-5,
			Lng: float64(lng) * 1e-5,
		})
	}

	return points, nil
}

// decodeSigned decodes one variable-length signed value starting at index and
// returns the value and the index of the next unread byte.
func decodeSigned(encoded string, index int) (int, int, error) {
	result := 0
	shift := 0

	for {
		if index >= len(encoded) {
			return 0, 0, fmt.Errorf("polyline: truncated value at byte %d", len(encoded))
		}
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, 0, fmt.Errorf("polyline: invalid byte %q at offset %d", encoded[index], index)
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Undo zig-zag sign encoding.
	return (result >> 1) ^ (-(result & 1)), index, nil
}

// EncodePolyline is the inverse of DecodePolyline. It is used by tests and
// offline fixtures; the live directions provider supplies its own encoding.
func EncodePolyline(points []geo.LatLng) string {
	if len(points) == 0 {
		return ""
	}

	result := make([]byte, 0, len(points)*6)

	prevLat := 0
	prevLng := 0

	for _, point := range points {
		lat := int(math.Round(point.Lat * 1e5))
		lng := int(math.Round(point.Lng * 1e5))

		result = append(result, encodeSigned(lat-prevLat)...)
		result = append(result, encodeSigned(lng-prevLng)...)

		prevLat = lat
		prevLng = lng
	}

	return string(result)
}

func encodeSigned(value int) []byte {
	s := value << 1
	if value < 0 {
		s = ^s
	}

	var buf []byte
	for s >= 0x20 {
		buf = append(buf, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(buf, byte(s+63))
}
