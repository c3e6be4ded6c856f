package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/vitormoschetta/study-buddy/internal/config"
	"github.com/vitormoschetta/study-buddy/internal/handler"
)

// ShutdownTimeout é o prazo para encerrar conexões abertas
const ShutdownTimeout = 5 * time.Second

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	log    *slog.Logger
	cfg    config.Config
	Router chi.Router
}

// NewServer cria o servidor e configura as rotas
func NewServer(log *slog.Logger, cfg config.Config, h *handler.Handler) *Server {
	s := &Server{
		log: log,
		cfg: cfg,
	}
	s.SetupRouter(h)
	return s
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(h *handler.Handler) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)

	r.NotFound(h.HandleNotFound)
	r.MethodNotAllowed(h.HandleMethodNotAllowed)

	// API Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Post("/chat", h.HandleChat)
	})

	s.Router = r
}

// Start inicia o servidor HTTP e faz graceful shutdown quando ctx é cancelado
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve atende conexões em ln até ctx ser cancelado
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening",
			slog.String("addr", ln.Addr().String()),
			slog.String("backend", s.cfg.Backend),
			slog.String("model", s.cfg.Model),
			slog.Bool("apiKeyConfigured", s.cfg.HasAPIKey()))
		if !s.cfg.HasAPIKey() {
			s.log.Warn(config.APIKeyEnv + " is not set, chat requests will fail")
		}
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("server stopped gracefully")
	return nil
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					slog.String("requestId", middleware.GetReqID(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.Duration("elapsed", time.Since(start)))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
