package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Cyclone1070/compassgenie/internal/config"
)

// Without any credentials the wiring must still produce a working agent:
// mock maps clients and a nil provider that surfaces as 503 at the edge.
func TestBuildAgentWithoutCredentials(t *testing.T) {
	cfg := config.DefaultConfig()

	a, err := buildAgent(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, a)
}
