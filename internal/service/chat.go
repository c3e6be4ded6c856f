package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vitormoschetta/study-buddy/internal/config"
	"github.com/vitormoschetta/study-buddy/internal/generator"
)

// MessageRequiredError é a mensagem devolvida quando o campo message é inválido
const MessageRequiredError = "Message is required and must be a string"

// promptTemplate envolve a mensagem do usuário sem escapar aspas.
const promptTemplate = `You are a helpful assistant. Respond to: "%s"`

// BuildPrompt monta o prompt enviado ao modelo.
func BuildPrompt(message string) string {
	return fmt.Sprintf(promptTemplate, message)
}

// ChatService encaminha uma mensagem ao modelo e devolve o texto gerado.
type ChatService struct {
	log     *slog.Logger
	cfg     config.Config
	factory generator.Factory
}

func NewChatService(log *slog.Logger, cfg config.Config, factory generator.Factory) *ChatService {
	return &ChatService{
		log:     log,
		cfg:     cfg,
		factory: factory,
	}
}

// Reply valida a mensagem, verifica a credencial e faz exatamente uma chamada ao modelo.
// Os erros retornados são sempre *ValidationError, *ConfigurationError ou *UpstreamError.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", &ValidationError{Message: MessageRequiredError}
	}
	if !s.cfg.HasAPIKey() {
		return "", &ConfigurationError{Variable: config.APIKeyEnv}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	g, err := s.factory.New(ctx, s.cfg.APIKey, s.cfg.Model)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	start := time.Now()
	text, err := g.Generate(ctx, BuildPrompt(message))
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	s.log.Debug("generated response",
		slog.String("model", s.cfg.Model),
		slog.Int("promptChars", len(message)),
		slog.Int("responseChars", len(text)),
		slog.Duration("elapsed", time.Since(start)))
	return text, nil
}
