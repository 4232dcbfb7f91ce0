package adapter

import (
	"context"
	"fmt"

	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
	"github.com/mitchellh/mapstructure"
)

// Validator is an interface for request types that support validation.
type Validator interface {
	Validate() error
}

// ToolFunc executes a tool with a typed request and returns the result
// content handed back to the model.
type ToolFunc[Req any] func(ctx context.Context, req Req) (string, error)

// BaseAdapter provides common adapter functionality using generics,
// centralizing argument decoding (mapstructure), validation and error
// handling across all tool adapters.
type BaseAdapter[Req any] struct {
	name        string
	description string
	definition  provider.ToolDefinition
	fn          ToolFunc[Req]
}

// NewBaseAdapter creates a base adapter with the given configuration.
func NewBaseAdapter[Req any](
	name string,
	description string,
	paramSchema *provider.ParameterSchema,
	fn ToolFunc[Req],
) *BaseAdapter[Req] {
	return &BaseAdapter[Req]{
		name:        name,
		description: description,
		definition: provider.ToolDefinition{
			Name:        name,
			Description: description,
			Parameters:  paramSchema,
		},
		fn: fn,
	}
}

// Name implements Tool.
func (b *BaseAdapter[Req]) Name() string {
	return b.name
}

// Description implements Tool.
func (b *BaseAdapter[Req]) Description() string {
	return b.description
}

// Definition implements Tool.
func (b *BaseAdapter[Req]) Definition() provider.ToolDefinition {
	return b.definition
}

// Execute implements Tool. It decodes the args map into a typed request
// using mapstructure, validates it when the request implements Validator,
// and invokes the tool function.
func (b *BaseAdapter[Req]) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req Req

	if err := mapstructure.Decode(args, &req); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	return b.fn(ctx, req)
}
