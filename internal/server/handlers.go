package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/baalimago/chatbox/internal/providers"
	"github.com/baalimago/chatbox/internal/utils"
)

type chatRequest struct {
	Prompt        string  `json:"prompt"`
	Model         string  `json:"model"`
	SpecificModel *string `json:"specific_model"`
}

type chatResponse struct {
	Response      string  `json:"response"`
	ModelUsed     string  `json:"model_used"`
	SpecificModel *string `json:"specific_model"`
	Status        string  `json:"status"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

type modelInfo struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Provider       string `json:"provider"`
	Description    string `json:"description"`
	RequiresAPIKey bool   `json:"requires_api_key"`
	Available      bool   `json:"available"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "chatbox backend",
		"version": "1.0.0",
	})
}

// handleModels lists the selectable providers. Availability of the keyed
// providers is read from the environment on every request, so exporting a
// key makes the provider selectable without a restart.
func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string][]modelInfo{
		"models": {
			{
				ID:             string(providers.Auto),
				Name:           "Auto (Ollama)",
				Provider:       "ollama",
				Description:    fmt.Sprintf("Local Ollama models (%v)", utils.Getenv("OLLAMA_DEFAULT_MODEL", "qwen3:8b")),
				RequiresAPIKey: false,
				Available:      true,
			},
			{
				ID:             string(providers.GPT),
				Name:           "GPT (OpenAI)",
				Provider:       "openai",
				Description:    "OpenAI GPT models",
				RequiresAPIKey: true,
				Available:      os.Getenv("OPENAI_API_KEY") != "",
			},
			{
				ID:             string(providers.Claude),
				Name:           "Claude (Anthropic)",
				Provider:       "anthropic",
				Description:    "Anthropic Claude models",
				RequiresAPIKey: true,
				Available:      os.Getenv("ANTHROPIC_API_KEY") != "",
			},
		},
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		respondError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Request must be JSON")
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		respondError(w, http.StatusBadRequest, "Prompt is required and cannot be empty")
		return
	}
	if req.Model == "" {
		respondError(w, http.StatusBadRequest, "Model is required")
		return
	}
	provider, err := providers.Parse(req.Model)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid model provider. Must be one of: %v", providers.ValidString()))
		return
	}

	model := ""
	if req.SpecificModel != nil {
		model = *req.SpecificModel
	}
	resp, err := s.ai.Invoke(r.Context(), prompt, provider, model)
	if err != nil {
		slog.Error("chat invocation failed", "provider", provider, "error", err)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process chat request: %v", err))
		return
	}

	respond(w, http.StatusOK, chatResponse{
		Response:      resp,
		ModelUsed:     string(provider),
		SpecificModel: req.SpecificModel,
		Status:        "success",
	})
}

func (s *Server) handleChatStream(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotImplemented, "Streaming not yet implemented")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "Endpoint not found")
}

func respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respond(w, code, errorResponse{
		Error:  msg,
		Status: "error",
	})
}
