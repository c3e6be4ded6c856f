package generator

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport registra cada chamada HTTP feita à API Gemini.
// A query string e os headers nunca são logados, pois podem conter a credencial.
type LoggingTransport struct {
	Base http.RoundTripper
	Log  *slog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	attrs := []any{
		slog.String("method", req.Method),
		slog.String("host", req.URL.Host),
		slog.String("path", req.URL.Path),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		t.Log.Debug("upstream request failed", append(attrs, slog.Any("error", err))...)
		return nil, err
	}
	t.Log.Debug("upstream request", append(attrs, slog.Int("status", resp.StatusCode))...)
	return resp, nil
}

// NewHTTPClient cria o cliente HTTP usado pelos SDKs de geração.
// Não define Timeout: o prazo vem do contexto de cada chamada.
func NewHTTPClient(log *slog.Logger) *http.Client {
	return &http.Client{
		Transport: &LoggingTransport{
			Base: http.DefaultTransport,
			Log:  log,
		},
	}
}
