package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// APIKeyEnv é a variável que guarda a credencial da API Gemini
	APIKeyEnv = "GEMINI_API_KEY"

	DefaultPort           = "3001"
	DefaultModel          = "gemini-2.5-flash"
	DefaultBackend        = BackendGenAI
	DefaultRequestTimeout = 60 * time.Second
	DefaultLogLevel       = "info"
)

// Backends de geração suportados
const (
	BackendGenAI = "genai"
	BackendADK   = "adk"
)

// Config é a configuração imutável do processo, carregada uma vez na inicialização.
type Config struct {
	Port           string
	APIKey         string
	Model          string
	Backend        string
	BaseURL        string
	RequestTimeout time.Duration
	LogLevel       string
}

// Addr retorna o endereço de escuta do servidor HTTP
func (c Config) Addr() string {
	return ":" + c.Port
}

// HasAPIKey informa se a credencial foi configurada.
// A ausência só é tratada no momento da requisição.
func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// LoadDotEnv carrega o arquivo .env, se existir, sem sobrescrever o ambiente.
func LoadDotEnv(log *slog.Logger, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		log.Warn(".env file not found or could not be loaded", slog.Any("error", err))
	}
}

// Load lê a configuração das variáveis de ambiente.
func Load() (Config, error) {
	cfg := Config{
		Port:     envOrDefault("PORT", DefaultPort),
		APIKey:   strings.TrimSpace(os.Getenv(APIKeyEnv)),
		Model:    envOrDefault("GEMINI_MODEL", DefaultModel),
		Backend:  strings.ToLower(envOrDefault("GEMINI_BACKEND", DefaultBackend)),
		BaseURL:  strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		LogLevel: strings.ToLower(envOrDefault("LOG_LEVEL", DefaultLogLevel)),
	}

	timeout, err := envDurationOrDefault("CHAT_TIMEOUT", DefaultRequestTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.RequestTimeout = timeout

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	switch c.Backend {
	case BackendGenAI, BackendADK:
	default:
		errs = append(errs, fmt.Errorf("GEMINI_BACKEND must be %q or %q, got %q", BackendGenAI, BackendADK, c.Backend))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel))
	}
	if strings.ContainsAny(c.Port, ": ") {
		errs = append(errs, fmt.Errorf("PORT must be a port number, got %q", c.Port))
	}
	return errors.Join(errs...)
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envDurationOrDefault(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 30s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}
