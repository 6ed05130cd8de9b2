package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/baalimago/chatbox/internal/providers"
	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Invoker routes a question to a provider and returns its reply. Implemented
// by chain.Service.
type Invoker interface {
	Invoke(ctx context.Context, question string, p providers.Provider, model string) (string, error)
}

type Config struct {
	Host string
	Port string
}

// ConfigFromEnv reads the server configuration, falling back to a local
// development setup.
func ConfigFromEnv() Config {
	return Config{
		Host: utils.Getenv("CHATBOX_HOST", "127.0.0.1"),
		Port: utils.Getenv("CHATBOX_PORT", "5000"),
	}
}

// Server is the chatbox backend. It exposes health, model listing and chat
// endpoints over plain JSON.
type Server struct {
	conf Config
	ai   Invoker
	srv  *http.Server
}

func New(conf Config, ai Invoker) *Server {
	return &Server{
		conf: conf,
		ai:   ai,
	}
}

// Handler builds the full route table, wrapped in recovery, CORS and
// request logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/models", s.handleModels)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/chat/stream", s.handleChatStream)
	mux.HandleFunc("/", s.handleNotFound)
	return recovery(cors(requestLog(mux)))
}

// ListenAndServe blocks until the context is cancelled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    net.JoinHostPort(s.conf.Host, s.conf.Port),
		Handler: s.Handler(),
	}
	s.printBanner()

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) printBanner() {
	ancli.Okf("chatbox backend listening on: 'http://%v'\n", s.srv.Addr)
	ancli.Noticef("openai api: %v\n", keyStatus(os.Getenv("OPENAI_API_KEY") != ""))
	ancli.Noticef("anthropic api: %v\n", keyStatus(os.Getenv("ANTHROPIC_API_KEY") != ""))
	ancli.Noticef("ollama: always available (local)\n")
	ancli.Noticef("endpoints: GET /health, GET /api/models, POST /api/chat\n")
}

func keyStatus(available bool) string {
	if available {
		return "available"
	}
	return "not configured"
}
