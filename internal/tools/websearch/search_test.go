package websearch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAdvisor implements Advisor for testing
type MockAdvisor struct {
	QuickFunc func(ctx context.Context, prompt string) (string, error)
}

func (m *MockAdvisor) Quick(ctx context.Context, prompt string) (string, error) {
	if m.QuickFunc != nil {
		return m.QuickFunc(ctx, prompt)
	}
	return "", errors.New("not implemented")
}

func TestRequestValidate(t *testing.T) {
	assert.NoError(t, Request{Query: "weather today", Location: "Gurugram"}.Validate())
	assert.Error(t, Request{Location: "Gurugram"}.Validate())
	assert.Error(t, Request{Query: "   "}.Validate())
}

func TestSearch(t *testing.T) {
	var gotPrompt string
	advisor := &MockAdvisor{
		QuickFunc: func(ctx context.Context, prompt string) (string, error) {
			gotPrompt = prompt
			return "* Sunny, 34°C.", nil
		},
	}
	tool := New(advisor, nil)

	out, err := tool.Search(context.Background(), Request{Query: "weather today", Location: "Gurugram"})
	require.NoError(t, err)
	assert.Equal(t, "* Sunny, 34°C.", out)
	assert.Equal(t, "Answer briefly in bullet points: weather today near Gurugram", gotPrompt)
}

func TestSearchAdvisorFailure(t *testing.T) {
	advisor := &MockAdvisor{
		QuickFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model overloaded")
		},
	}
	tool := New(advisor, nil)

	out, err := tool.Search(context.Background(), Request{Query: "weather", Location: "here"})
	require.NoError(t, err)
	assert.Equal(t, "Search failed: model overloaded", out)
}

func TestSearchNilAdvisor(t *testing.T) {
	tool := New(nil, nil)

	out, err := tool.Search(context.Background(), Request{Query: "weather", Location: "here"})
	require.NoError(t, err)
	assert.Equal(t, "Search failed: model unavailable", out)
}
