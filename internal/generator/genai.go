package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// GenAIFactory cria clientes diretos do SDK google.golang.org/genai.
type GenAIFactory struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (f GenAIFactory) New(ctx context.Context, apiKey, modelName string) (Generator, error) {
	client, err := genai.NewClient(ctx, clientConfig(apiKey, f.BaseURL, f.HTTPClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &genAIGenerator{client: client, model: modelName}, nil
}

type genAIGenerator struct {
	client *genai.Client
	model  string
}

func (g *genAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("model %s: %w", g.model, err)
	}
	if res == nil {
		return "", fmt.Errorf("model %s: %w", g.model, ErrEmptyResponse)
	}
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("model %s: %w", g.model, ErrEmptyResponse)
	}
	return text, nil
}
