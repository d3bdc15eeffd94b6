package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ModelTier selects the capability level of the remote model.
type ModelTier string

const (
	// TierLite is for simple tasks: short classification, cheap generation.
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: answer evaluation, question sets.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning tasks.
	TierAdvanced ModelTier = "advanced"
)

// Models maps tiers to provider model names.
type Models map[ModelTier]string

// DefaultModels returns the default Gemini tier mapping.
func DefaultModels() Models {
	return Models{
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	}
}

// Resolve returns the model name for a tier, falling back to standard then
// lite when the tier has no mapping.
func (m Models) Resolve(tier ModelTier) string {
	if model, ok := m[tier]; ok {
		return model
	}
	if model, ok := m[TierStandard]; ok {
		return model
	}
	if model, ok := m[TierLite]; ok {
		return model
	}
	return ""
}

// Client is the remote-model abstraction the evaluator calls through. Only
// JSON generation is needed; the provider is asked for a JSON MIME type so
// responses arrive as bare objects rather than prose.
type Client interface {
	// GenerateJSON generates a JSON payload using the specified model tier.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the configured model name for a tier.
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client over the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
	models Models
}

// NewGeminiClient creates a Gemini-backed client. A nil models map gets the
// default tier mapping.
func NewGeminiClient(ctx context.Context, apiKey string, models Models) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if models == nil {
		models = DefaultModels()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, models: models}, nil
}

// GenerateJSON generates a JSON payload using the specified model tier.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.models.Resolve(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.models.Resolve(tier)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
