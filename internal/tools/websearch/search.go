// Package websearch implements the web_search tool, which answers free-text
// weather and fact queries by delegating to the model itself.
package websearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Advisor produces a short text answer from the model.
type Advisor interface {
	Quick(ctx context.Context, prompt string) (string, error)
}

// Request carries the decoded web_search arguments.
type Request struct {
	Query    string `mapstructure:"query"`
	Location string `mapstructure:"location"`
}

// Validate checks argument sanity.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return errors.New("query is required")
	}
	return nil
}

// Tool answers free-text lookups.
type Tool struct {
	advisor Advisor
	logger  *slog.Logger
}

// New creates the web-search tool.
func New(advisor Advisor, logger *slog.Logger) *Tool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tool{
		advisor: advisor,
		logger:  logger.With("tool", "web_search"),
	}
}

// Search asks the model for a brief answer. Failures become a "Search
// failed" text result rather than an error.
func (t *Tool) Search(ctx context.Context, req Request) (string, error) {
	if t.advisor == nil {
		return "Search failed: model unavailable", nil
	}

	answer, err := t.advisor.Quick(ctx, fmt.Sprintf("Answer briefly in bullet points: %s near %s", req.Query, req.Location))
	if err != nil {
		t.logger.Warn("web search failed", "query", req.Query, "error", err)
		return fmt.Sprintf("Search failed: %v", err), nil
	}
	return answer, nil
}
