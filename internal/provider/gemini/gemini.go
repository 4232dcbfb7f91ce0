// Package gemini implements the Provider interface on top of the Google
// Gemini SDK.
package gemini

import (
	"context"
	"errors"
	"sync"

	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
)

// Provider implements provider/models.Provider for Google Gemini.
type Provider struct {
	client      Client
	mu          sync.RWMutex
	modelName   string
	temperature float32
}

// New creates a Provider with the specified client, model and sampling
// temperature.
func New(client Client, modelName string, temperature float32) *Provider {
	return &Provider{
		client:      client,
		modelName:   modelName,
		temperature: temperature,
	}
}

// Generate sends a request to the Gemini API and returns the response.
func (p *Provider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	p.mu.RLock()
	model := p.modelName
	temperature := p.temperature
	p.mu.RUnlock()

	contents := toGeminiContents(req.Prompt, req.History)
	config := toGeminiConfig(req.System, req.Config)

	if config.Temperature == nil {
		config.Temperature = &temperature
	}

	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}

	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp, model)
}

// Quick sends a single prompt with no history or tool catalog and returns
// the model's text reply.
func (p *Provider) Quick(ctx context.Context, prompt string) (string, error) {
	resp, err := p.Generate(ctx, &provider.GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}
	if resp.Content.Type != provider.ResponseTypeText {
		return "", errors.New("expected text response")
	}
	return resp.Content.Text, nil
}

// SetModel changes the active model at runtime.
func (p *Provider) SetModel(model string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modelName = model
	return nil
}

// GetModel returns the currently active model name.
func (p *Provider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelName
}
