// Package generator encapsula os clientes da API Gemini usados pelo serviço de chat.
package generator

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"

	"github.com/vitormoschetta/study-buddy/internal/config"
)

// ErrEmptyResponse é retornado quando o modelo responde sem nenhum texto
// (resposta bloqueada ou sem partes de texto).
var ErrEmptyResponse = errors.New("model returned no text")

// Generator envia um prompt a um modelo já escolhido e retorna o texto gerado.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Factory cria um Generator vinculado a uma credencial e a um modelo.
type Factory interface {
	New(ctx context.Context, apiKey, modelName string) (Generator, error)
}

// FactoryFunc adapta uma função ao tipo Factory
type FactoryFunc func(ctx context.Context, apiKey, modelName string) (Generator, error)

func (f FactoryFunc) New(ctx context.Context, apiKey, modelName string) (Generator, error) {
	return f(ctx, apiKey, modelName)
}

// GeneratorFunc adapta uma função ao tipo Generator
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewFactory escolhe a implementação de acordo com o backend configurado.
func NewFactory(cfg config.Config, httpClient *http.Client) Factory {
	if cfg.Backend == config.BackendADK {
		return ADKFactory{BaseURL: cfg.BaseURL, HTTPClient: httpClient}
	}
	return GenAIFactory{BaseURL: cfg.BaseURL, HTTPClient: httpClient}
}

func clientConfig(apiKey, baseURL string, httpClient *http.Client) *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	return cc
}
