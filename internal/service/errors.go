package service

import "fmt"

// ValidationError indica entrada inválida do cliente (HTTP 400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError indica que falta uma credencial obrigatória (HTTP 500).
// A mensagem é segura para ser exibida ao cliente.
type ConfigurationError struct {
	Variable string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not configured in environment variables", e.Variable)
}

// UpstreamError envolve qualquer falha do cliente de geração (HTTP 500).
// A causa é logada, nunca devolvida ao cliente.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "upstream generation failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
