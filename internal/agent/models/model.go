// Package models defines the conversation types shared by the agent loop,
// the tool adapters and the model provider.
package models

import "github.com/Cyclone1070/compassgenie/internal/geo"

// Message is a single entry in the conversation history. Roles follow the
// provider convention: "user", "model" (assistant turns, including tool
// invocations), "function" (tool results) and "system" (loop-injected notes).
// History is append-only; messages are never rewritten in place.
type Message struct {
	Role    string
	Content string

	// Optional inline image attached to a user message.
	Image     []byte
	ImageMIME string

	// For model messages requesting tool invocations.
	ToolCalls []ToolCall

	// For function messages carrying tool results. Every ToolCall emitted by
	// a model message is answered by exactly one ToolResult with a matching
	// ID before the next user message.
	ToolResults []ToolResult
}

// ToolCall is a structured tool invocation from the model. Immutable once
// created.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ToolResult is the outcome of a single tool invocation.
type ToolResult struct {
	ID      string // matches ToolCall.ID
	Name    string
	Content string
	Error   string // non-empty when the tool failed
}

// TurnRequest carries one user query into the agent.
type TurnRequest struct {
	Query     string
	Image     []byte
	ImageMIME string
	Location  geo.LatLng
	SessionID string
}

// TurnResult is the only value returned to the external caller: the final
// text answer and, when a tool produced one this turn, the map payload.
type TurnResult struct {
	ResponseText string       `json:"response_text"`
	MapData      *geo.MapData `json:"map_data"`
}
