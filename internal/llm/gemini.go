package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Client - минимальный интерфейс генеративной модели для анализа.
// Реализация обязана возвращать строго JSON.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeminiClient реализует Client поверх Google Gemini API
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient создаёт новый клиент Gemini
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	return text, nil
}
