// Package webui serves the browser chat page and proxies its api calls to
// the chatbox backend, so the page itself stays free of cross origin
// concerns.
package webui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/baalimago/chatbox/internal/utils"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed static
var static embed.FS

type Config struct {
	Port string
	// BackendURL points at the chatbox backend which answers the actual
	// chat requests.
	BackendURL string
}

// ConfigFromEnv reads the frontend configuration. The backend address is
// derived from the same variables the backend binds to, so both default to
// the same local setup.
func ConfigFromEnv() Config {
	backendHost := utils.Getenv("CHATBOX_HOST", "127.0.0.1")
	backendPort := utils.Getenv("CHATBOX_PORT", "5000")
	return Config{
		Port:       utils.Getenv("WEBCHAT_PORT", "7860"),
		BackendURL: fmt.Sprintf("http://%v", net.JoinHostPort(backendHost, backendPort)),
	}
}

// Server serves the embedded chat page and forwards its chat and model
// listing calls to the backend.
type Server struct {
	conf   Config
	client *http.Client
	srv    *http.Server
}

func New(conf Config) *Server {
	return &Server{
		conf: conf,
		// Local models can chew on a prompt for a long while before the
		// first byte arrives, so the proxy waits up to three minutes.
		client: &http.Client{Timeout: 3 * time.Minute},
	}
}

func (s *Server) Handler() http.Handler {
	pages, err := fs.Sub(static, "static")
	if err != nil {
		// The static dir is embedded at compile time, failure here means
		// a broken build.
		panic(fmt.Sprintf("failed to load embedded ui: %v", err))
	}
	mux := http.NewServeMux()
	mux.Handle("GET /", http.FileServerFS(pages))
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /api/models", s.handleModels)
	return mux
}

// ListenAndServe blocks until the context is cancelled or the listener
// fails. Cancellation triggers a graceful shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    net.JoinHostPort("127.0.0.1", s.conf.Port),
		Handler: s.Handler(),
	}
	ancli.Okf("chat ui listening on: 'http://%v'\n", s.srv.Addr)
	ancli.Noticef("backend: '%v'\n", s.conf.BackendURL)

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

type chatRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

type chatReply struct {
	Response string `json:"response"`
}

// handleChat forwards the prompt to the backend and always answers with a
// renderable string: backend errors and connection failures become the
// text shown in the chat bubble, never an empty reply.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, chatReply{Response: fmt.Sprintf("Error: %v", err)})
		return
	}
	respondJSON(w, http.StatusOK, chatReply{Response: s.sendChatRequest(r.Context(), req)})
}

func (s *Server) sendChatRequest(ctx context.Context, req chatRequest) string {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	backendReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.conf.BackendURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	backendReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(backendReq)
	if err != nil {
		return fmt.Sprintf("Connection error: %v", err)
	}
	defer resp.Body.Close()

	var parsed struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Sprintf("Connection error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error == "" {
			parsed.Error = "Unknown error"
		}
		return fmt.Sprintf("Error: %v", parsed.Error)
	}
	if parsed.Response == "" {
		return "No response"
	}
	return parsed.Response
}

// handleModels relays the backend's model listing so the dropdown can show
// per provider availability.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	backendReq, err := http.NewRequestWithContext(r.Context(), http.MethodGet, s.conf.BackendURL+"/api/models", nil)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error(), "status": "error"})
		return
	}
	resp, err := s.client.Do(backendReq)
	if err != nil {
		respondJSON(w, http.StatusBadGateway, map[string]string{"error": fmt.Sprintf("Connection error: %v", err), "status": "error"})
		return
	}
	defer resp.Body.Close()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		ancli.Warnf("failed to relay models response: %v\n", err)
	}
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ancli.Warnf("failed to encode response: %v\n", err)
	}
}
