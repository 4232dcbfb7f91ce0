package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/compassgenie/internal/agent/adapter"
	"github.com/Cyclone1070/compassgenie/internal/agent/models"
	"github.com/Cyclone1070/compassgenie/internal/geo"
	"github.com/Cyclone1070/compassgenie/internal/maps"
	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
	"github.com/Cyclone1070/compassgenie/internal/tools/places"
)

// Drives a full turn through the real places tool against the offline mock
// Maps client, with only the model scripted.
func TestRunTurnNearbySearchEndToEnd(t *testing.T) {
	mapsClient := maps.NewClient(maps.Options{}) // no key: mock mode
	require.True(t, mapsClient.MockMode())

	placesTool := places.New(mapsClient, nil, nil, 10000)

	turn := 0
	p := &MockProvider{
		GenerateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			turn++
			if turn == 1 {
				return toolCallResponse(models.ToolCall{
					ID:   "call_1",
					Name: "maps_api_search",
					Args: map[string]any{
						"search_term": "coffee",
						"latitude":    28.46,
						"longitude":   77.03,
						"search_type": "nearby",
					},
				}), nil
			}

			// Summarize the tool result like the real model would.
			require.Len(t, req.History, 3)
			toolContent := req.History[2].ToolResults[0].Content
			assert.Contains(t, toolContent, maps.MockPlaceName)
			return textResponse("I found Mock Place in Requested City nearby."), nil
		},
	}

	a := New(p, []adapter.Tool{adapter.NewMapsSearch(placesTool)}, 8, nil)

	result, err := a.RunTurn(context.Background(), models.TurnRequest{
		Query:     "find coffee near me",
		Location:  geo.LatLng{Lat: 28.46, Lng: 77.03},
		SessionID: "it-session",
	})
	require.NoError(t, err)

	assert.Contains(t, result.ResponseText, maps.MockPlaceName)
	require.NotNil(t, result.MapData)
	require.Len(t, result.MapData.Points, 1)
	assert.Equal(t, maps.MockPlaceName, result.MapData.Points[0].Name)
	assert.InDelta(t, 28.4595, result.MapData.Points[0].Latitude, 1e-9)
	assert.InDelta(t, 77.0266, result.MapData.Points[0].Longitude, 1e-9)
}
