// Package models defines provider-neutral types for talking to an LLM
// backend: generation requests, responses and the tool catalog schema.
package models

import (
	"github.com/Cyclone1070/compassgenie/internal/agent/models"
)

// GenerateRequest encapsulates all parameters for a generation request.
type GenerateRequest struct {
	// System is the system directive for this turn, empty for none.
	System string

	// Prompt is a standalone user input appended after History.
	Prompt string

	// History contains the conversation so far.
	History []models.Message

	// Config contains optional generation parameters.
	Config *GenerateConfig

	// Tools contains tool definitions for native tool calling.
	Tools []ToolDefinition
}

// GenerateConfig contains optional generation parameters.
// All fields are pointers to distinguish between "not set" and "zero value".
type GenerateConfig struct {
	Temperature   *float32
	TopP          *float32
	TopK          *int
	StopSequences []string
}

// GenerateResponse contains the model's response and metadata.
type GenerateResponse struct {
	Content  ResponseContent
	Metadata ResponseMetadata
}

// ResponseContent is a union type representing different response types.
type ResponseContent struct {
	// Type indicates what the model produced.
	Type ResponseType

	// For Type = ResponseTypeText. Multi-part text candidates are joined
	// with newlines.
	Text string

	// For Type = ResponseTypeToolCall.
	ToolCalls []models.ToolCall
}

// ResponseType indicates the type of response from the model.
type ResponseType string

const (
	ResponseTypeText     ResponseType = "text"
	ResponseTypeToolCall ResponseType = "tool_call"
)

// ResponseMetadata contains information about the generation.
type ResponseMetadata struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	ModelUsed string
}

// ToolDefinition defines a tool that the model can invoke.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ParameterSchema // nil means no parameters
}

// ParameterSchema maps directly to standard JSON Schema.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}
