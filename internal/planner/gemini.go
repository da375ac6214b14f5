package planner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// DefaultRequestTimeout bounds a single Gemini call.
const DefaultRequestTimeout = 60 * time.Second

// GeminiGenerator sends structured-output requests to the Gemini API.
type GeminiGenerator struct {
	HTTPClient *http.Client
	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string
}

// NewGeminiGenerator returns a generator with a bounded HTTP client.
func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{
		HTTPClient: &http.Client{Timeout: DefaultRequestTimeout},
	}
}

// Generate implements Generator.
func (generator *GeminiGenerator) Generate(ctx context.Context, request Request) (string, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     request.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: generator.HTTPClient,
	}
	if generator.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: generator.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, request.Model, genai.Text(request.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   request.Schema,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if result == nil {
		return "", errors.New("generate content: nil result")
	}
	return result.Text(), nil
}
