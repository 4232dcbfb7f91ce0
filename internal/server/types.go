package server

import "github.com/Cyclone1070/compassgenie/internal/geo"

// ChatRequest is the POST /chat request body.
type ChatRequest struct {
	// Query is the user's message. Required.
	Query string `json:"query"`

	// Location is the caller's GPS position. Required and must be a
	// plausible lat/lng pair.
	Location geo.LatLng `json:"location"`

	// ImageBase64 optionally attaches a photo, standard base64 encoded.
	ImageBase64 string `json:"image_base64,omitempty"`

	// ImageMIME is the attachment's media type, e.g. "image/jpeg".
	ImageMIME string `json:"image_mime,omitempty"`
}

// ChatResponse is the POST /chat response body.
type ChatResponse struct {
	ResponseText string       `json:"response_text"`
	MapData      *geo.MapData `json:"map_data,omitempty"`
	SessionID    string       `json:"session_id"`
}

// ErrorResponse is the JSON error envelope for all non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
