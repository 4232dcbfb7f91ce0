// Package agent implements the tool-orchestration loop: it repeatedly asks
// the model for the next action, dispatches requested tool calls, and loops
// until the model produces a terminal text answer for the turn.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Cyclone1070/compassgenie/internal/agent/adapter"
	"github.com/Cyclone1070/compassgenie/internal/agent/models"
	"github.com/Cyclone1070/compassgenie/internal/geo"
	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
)

// ErrUnavailable reports that the assistant cannot run at all because the
// model credential is not configured. Distinct from per-turn failures.
var ErrUnavailable = errors.New("assistant unavailable: model credential not configured")

// exhaustedText is the best-effort reply when a turn hits the iteration
// limit without the model ever producing a terminal answer.
const exhaustedText = "I wasn't able to fully finish answering that. Here is what I found so far."

// Agent holds the tool catalog and drives one conversation turn at a time.
// It keeps no state across turns; history lives for a single RunTurn call.
type Agent struct {
	provider      provider.Provider
	tools         map[string]adapter.Tool
	catalog       []provider.ToolDefinition
	maxIterations int
	logger        *slog.Logger
}

// New creates an Agent. A nil provider is allowed and makes every turn fail
// with ErrUnavailable, matching a deployment without a model credential.
func New(p provider.Provider, tools []adapter.Tool, maxIterations int, logger *slog.Logger) *Agent {
	if maxIterations <= 0 {
		maxIterations = 8
	}
	if logger == nil {
		logger = slog.Default()
	}

	toolMap := make(map[string]adapter.Tool, len(tools))
	catalog := make([]provider.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		toolMap[t.Name()] = t
		catalog = append(catalog, t.Definition())
	}

	return &Agent{
		provider:      p,
		tools:         toolMap,
		catalog:       catalog,
		maxIterations: maxIterations,
		logger:        logger,
	}
}

// RunTurn executes one user query through to a terminal text response,
// possibly via multiple tool round-trips. The returned map payload is the
// most recent non-empty one produced by a tool this turn, or nil.
func (a *Agent) RunTurn(ctx context.Context, req models.TurnRequest) (models.TurnResult, error) {
	if a.provider == nil {
		return models.TurnResult{}, ErrUnavailable
	}
	if strings.TrimSpace(req.Query) == "" {
		return models.TurnResult{}, errors.New("empty query")
	}

	logger := a.logger.With("session", req.SessionID)

	history := []models.Message{{
		Role:      "user",
		Content:   req.Query,
		Image:     req.Image,
		ImageMIME: req.ImageMIME,
	}}
	system := systemDirective(req.Location)

	// Map payload accumulator: updated after every tool dispatch so the
	// latest qualifying result wins without re-scanning history.
	var mapData *geo.MapData

	for range a.maxIterations {
		if ctx.Err() != nil {
			return models.TurnResult{}, ctx.Err()
		}

		resp, err := a.provider.Generate(ctx, &provider.GenerateRequest{
			System:  system,
			History: history,
			Tools:   a.catalog,
		})
		if err != nil {
			return models.TurnResult{}, fmt.Errorf("provider error: %w", err)
		}

		switch resp.Content.Type {
		case provider.ResponseTypeToolCall:
			if len(resp.Content.ToolCalls) == 0 {
				history = append(history, models.Message{
					Role:    "system",
					Content: "Error: empty tool call list",
				})
				continue
			}

			history = append(history, models.Message{
				Role:      "model",
				ToolCalls: resp.Content.ToolCalls,
			})

			results := make([]models.ToolResult, 0, len(resp.Content.ToolCalls))
			for _, call := range resp.Content.ToolCalls {
				result := a.executeToolCall(ctx, logger, call)
				if result.Error == "" {
					if payload, ok := parseMapPayload(result.Content); ok {
						mapData = payload
					}
				}
				results = append(results, result)
			}

			history = append(history, models.Message{
				Role:        "function",
				ToolResults: results,
			})

		case provider.ResponseTypeText:
			return models.TurnResult{
				ResponseText: resp.Content.Text,
				MapData:      mapData,
			}, nil

		default:
			history = append(history, models.Message{
				Role:    "system",
				Content: fmt.Sprintf("Error: unknown response type %v", resp.Content.Type),
			})
		}
	}

	logger.Warn("iteration limit reached", "max_iterations", a.maxIterations)
	return models.TurnResult{ResponseText: exhaustedText, MapData: mapData}, nil
}

// executeToolCall dispatches a single tool call and returns the result.
// Tool failures are folded into the result, never propagated.
func (a *Agent) executeToolCall(ctx context.Context, logger *slog.Logger, call models.ToolCall) models.ToolResult {
	tool, exists := a.tools[call.Name]
	if !exists {
		return models.ToolResult{
			ID:    call.ID,
			Name:  call.Name,
			Error: fmt.Sprintf("unknown tool '%s'", call.Name),
		}
	}

	logger.Debug("dispatching tool", "tool", call.Name)

	content, err := tool.Execute(ctx, call.Args)
	if err != nil {
		logger.Warn("tool execution failed", "tool", call.Name, "error", err)
		return models.ToolResult{
			ID:    call.ID,
			Name:  call.Name,
			Error: err.Error(),
		}
	}

	return models.ToolResult{
		ID:      call.ID,
		Name:    call.Name,
		Content: content,
	}
}

// parseMapPayload extracts map data from a tool result envelope. Results
// that are not JSON envelopes (plain-text tools) or that carry no points or
// routes are ignored.
func parseMapPayload(content string) (*geo.MapData, bool) {
	var payload geo.ToolPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, false
	}
	if !payload.MapData.HasContent() {
		return nil, false
	}
	data := payload.MapData
	return &data, true
}
