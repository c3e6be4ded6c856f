package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vitormoschetta/study-buddy/internal/config"
	"github.com/vitormoschetta/study-buddy/internal/generator"
	"github.com/vitormoschetta/study-buddy/internal/handler"
	"github.com/vitormoschetta/study-buddy/internal/service"
)

func newTestServer(t *testing.T, apiKey string, reply string) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{Port: "0", APIKey: apiKey, Model: "gemini-2.5-flash", Backend: config.BackendGenAI, RequestTimeout: time.Second}
	factory := generator.FactoryFunc(func(ctx context.Context, apiKey, modelName string) (generator.Generator, error) {
		return generator.GeneratorFunc(func(ctx context.Context, prompt string) (string, error) {
			return reply, nil
		}), nil
	})
	h := handler.NewHandler(log, service.NewChatService(log, cfg, factory), "Study Buddy")
	srv := httptest.NewServer(NewServer(log, cfg, h).Router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("response is not JSON: %v: %q", err, raw)
		}
	}
	return resp, decoded
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, "test-key", "Photosynthesis is...")
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name:           "health",
			method:         http.MethodGet,
			path:           "/api/health",
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]any{"status": "ok", "message": "Study Buddy backend is running"},
		},
		{
			name:           "chat",
			method:         http.MethodPost,
			path:           "/api/chat",
			body:           `{"message":"What is photosynthesis?"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]any{"response": "Photosynthesis is..."},
		},
		{
			name:           "chat without message",
			method:         http.MethodPost,
			path:           "/api/chat",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   map[string]any{"error": "Message is required and must be a string"},
		},
		{
			name:           "unknown path",
			method:         http.MethodGet,
			path:           "/api/unknown",
			expectedStatus: http.StatusNotFound,
			expectedBody:   map[string]any{"error": "Not found"},
		},
		{
			name:           "wrong method",
			method:         http.MethodGet,
			path:           "/api/chat",
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   map[string]any{"error": "Method not allowed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, tt.method, srv.URL+tt.path, tt.body, map[string]string{"Content-Type": "application/json"})
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
			if diff := cmp.Diff(tt.expectedBody, body); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestHealthWithoutCredential(t *testing.T) {
	srv := newTestServer(t, "", "")
	resp, body := do(t, http.MethodGet, srv.URL+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t, "test-key", "hi")

	resp, _ := do(t, http.MethodGet, srv.URL+"/api/health", "", map[string]string{"Origin": "http://example.com"})
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected any origin to be allowed, got %q", got)
	}

	resp, _ = do(t, http.MethodOptions, srv.URL+"/api/chat", "", map[string]string{
		"Origin":                         "http://widget.example.org",
		"Access-Control-Request-Method":  http.MethodPost,
		"Access-Control-Request-Headers": "Content-Type",
	})
	if resp.StatusCode >= 300 {
		t.Errorf("expected preflight to succeed, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected any origin to be allowed, got %q", got)
	}
}

func TestServeStopsWhenContextIsCancelled(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Config{Port: "0", Model: "gemini-2.5-flash", Backend: config.BackendGenAI, RequestTimeout: time.Second}
	h := handler.NewHandler(log, service.NewChatService(log, cfg, generator.NewFactory(cfg, nil)), "Study Buddy")
	s := NewServer(log, cfg, h)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, body := do(t, http.MethodGet, "http://"+ln.Addr().String()+"/api/health", "", nil)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %v", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}
