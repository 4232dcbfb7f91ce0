package gemini

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/compassgenie/internal/agent/models"
	provider "github.com/Cyclone1070/compassgenie/internal/provider/models"
	"github.com/oklog/ulid/v2"
	"google.golang.org/genai"
)

// toGeminiContents converts a request's history and optional trailing prompt
// to Gemini Content format.
func toGeminiContents(prompt string, history []models.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)

	for _, msg := range history {
		content := messageToGeminiContent(msg)
		if content != nil {
			contents = append(contents, content)
		}
	}

	if prompt != "" {
		contents = append(contents, &genai.Content{
			Role: "user",
			Parts: []*genai.Part{
				genai.NewPartFromText(prompt),
			},
		})
	}

	return contents
}

// messageToGeminiContent converts a single message to Gemini Content format.
func messageToGeminiContent(msg models.Message) *genai.Content {
	role := "user"
	if msg.Role == "assistant" || msg.Role == "model" {
		role = "model"
	}

	parts := make([]*genai.Part, 0)

	if msg.Content != "" {
		parts = append(parts, genai.NewPartFromText(msg.Content))
	}

	// Inline image for multimodal user messages.
	if len(msg.Image) > 0 {
		mime := msg.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		parts = append(parts, genai.NewPartFromBytes(msg.Image, mime))
	}

	for _, toolCall := range msg.ToolCalls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: toolCall.Name,
				Args: toolCall.Args,
			},
		})
	}

	for _, result := range msg.ToolResults {
		responseContent := result.Content
		if result.Error != "" {
			responseContent = fmt.Sprintf("Error: %s", result.Error)
		}

		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name: result.Name,
				Response: map[string]any{
					"content": responseContent,
				},
			},
		})
	}

	// Skip empty messages
	if len(parts) == 0 {
		return nil
	}

	return &genai.Content{
		Role:  role,
		Parts: parts,
	}
}

// toGeminiConfig converts request-level settings to Gemini config.
func toGeminiConfig(system string, config *provider.GenerateConfig) *genai.GenerateContentConfig {
	geminiConfig := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}

	if system != "" {
		geminiConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(system)},
		}
	}

	if config == nil {
		return geminiConfig
	}

	if config.Temperature != nil {
		geminiConfig.Temperature = config.Temperature
	}
	if config.TopP != nil {
		geminiConfig.TopP = config.TopP
	}
	if config.TopK != nil {
		topK := float32(*config.TopK)
		geminiConfig.TopK = &topK
	}
	if len(config.StopSequences) > 0 {
		geminiConfig.StopSequences = config.StopSequences
	}

	return geminiConfig
}

// defaultSafetySettings returns safety settings with blocking disabled; the
// assistant's own directive governs tone.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockThresholdOff,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockThresholdOff,
		},
	}
}

// toGeminiTools converts internal ToolDefinition to Gemini tools.
func toGeminiTools(tools []provider.ToolDefinition) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(tools))

	for _, tool := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}

		if tool.Parameters != nil {
			fd.Parameters = toGeminiSchema(tool.Parameters)
		}

		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts ParameterSchema to Gemini Schema.
func toGeminiSchema(params *provider.ParameterSchema) *genai.Schema {
	schema := &genai.Schema{
		Type: genai.TypeObject,
	}

	if params.Properties != nil {
		schema.Properties = make(map[string]*genai.Schema)
		for name, prop := range params.Properties {
			schema.Properties[name] = &genai.Schema{
				Type:        toGeminiType(prop.Type),
				Description: prop.Description,
			}

			if len(prop.Enum) > 0 {
				schema.Properties[name].Enum = prop.Enum
			}

			if prop.Items != nil {
				schema.Properties[name].Items = &genai.Schema{
					Type:        toGeminiType(prop.Items.Type),
					Description: prop.Items.Description,
				}
			}
		}
	}

	if len(params.Required) > 0 {
		schema.Required = params.Required
	}

	return schema
}

// toGeminiType converts string type to Gemini Type.
func toGeminiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts a Gemini response to internal format.
func fromGeminiResponse(resp *genai.GenerateContentResponse, modelUsed string) (*provider.GenerateResponse, error) {
	if len(resp.Candidates) == 0 {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeInvalidRequest,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &provider.ProviderError{
			Code:      provider.ErrorCodeContentBlocked,
			Message:   "content blocked by safety filters",
			Retryable: false,
		}
	}

	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		// Return the partial response alongside the error.
		response := buildTextResponse(candidate, resp.UsageMetadata, modelUsed)
		return response, &provider.ProviderError{
			Code:      provider.ErrorCodeContextLength,
			Message:   "response truncated due to max tokens",
			Retryable: false,
		}
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.FunctionCall != nil {
				return buildToolCallResponse(candidate, resp.UsageMetadata, modelUsed), nil
			}
		}
	}

	return buildTextResponse(candidate, resp.UsageMetadata, modelUsed), nil
}

// buildTextResponse builds a text response from a candidate. Multi-part
// candidates are joined with newlines, keeping only text segments.
func buildTextResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	var segments []string
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				segments = append(segments, part.Text)
			}
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: strings.Join(segments, "\n"),
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildToolCallResponse builds a tool call response from a candidate.
// Gemini does not supply invocation IDs, so synthetic ULIDs are assigned to
// let tool results match their calls.
func buildToolCallResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	toolCalls := make([]models.ToolCall, 0)

	for _, part := range candidate.Content.Parts {
		if part.FunctionCall != nil {
			toolCalls = append(toolCalls, models.ToolCall{
				ID:   "call_" + ulid.Make().String(),
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:      provider.ResponseTypeToolCall,
			ToolCalls: toolCalls,
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildMetadata builds response metadata from usage data.
func buildMetadata(usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) provider.ResponseMetadata {
	metadata := provider.ResponseMetadata{
		ModelUsed: modelUsed,
	}

	if usage != nil {
		metadata.PromptTokens = int(usage.PromptTokenCount)
		metadata.CompletionTokens = int(usage.CandidatesTokenCount)
		metadata.TotalTokens = int(usage.TotalTokenCount)
	}

	return metadata
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 401, 403:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeAuth,
				Message:    "authentication failed",
				Underlying: err,
				Retryable:  false,
			}
		case 429:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeRateLimit,
				Message:    "rate limit exceeded",
				Underlying: err,
				Retryable:  true,
			}
		case 400:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeInvalidRequest,
				Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
				Underlying: err,
				Retryable:  false,
			}
		case 500, 502, 503, 504:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeUnavailable,
				Message:    "service unavailable",
				Underlying: err,
				Retryable:  true,
			}
		default:
			return &provider.ProviderError{
				Code:       provider.ErrorCodeNetwork,
				Message:    fmt.Sprintf("API error: %s", apiErr.Message),
				Underlying: err,
				Retryable:  true,
			}
		}
	}

	return &provider.ProviderError{
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}
