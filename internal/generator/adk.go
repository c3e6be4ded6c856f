package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// ADKFactory cria modelos Gemini através do ADK (google.golang.org/adk).
type ADKFactory struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (f ADKFactory) New(ctx context.Context, apiKey, modelName string) (Generator, error) {
	llm, err := gemini.NewModel(ctx, modelName, clientConfig(apiKey, f.BaseURL, f.HTTPClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return &adkGenerator{llm: llm, model: modelName}, nil
}

type adkGenerator struct {
	llm   model.LLM
	model string
}

func (g *adkGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := &model.LLMRequest{
		Model:    g.model,
		Contents: genai.Text(prompt),
		Config:   &genai.GenerateContentConfig{},
	}

	var text strings.Builder
	for resp, err := range g.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", fmt.Errorf("model %s: %w", g.model, err)
		}
		if resp == nil || resp.Content == nil {
			continue
		}
		for _, part := range resp.Content.Parts {
			if part != nil && !part.Thought && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("model %s: %w", g.model, ErrEmptyResponse)
	}
	return text.String(), nil
}
