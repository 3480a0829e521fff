package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"url2tldr-backend/internal/models"
	"url2tldr-backend/internal/services"
)

type ChatHandler struct {
	backend services.ChatBackend
}

func NewChatHandler(backend services.ChatBackend) *ChatHandler {
	return &ChatHandler{backend: backend}
}

// ListModels reports the chat models available on the configured backend.
func (h *ChatHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	names, err := h.backend.ListModels(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, models.ModelsResponse{Models: names})
}

// SendPrompt dispatches the prompt to the selected model. A backend
// failure is surfaced as the reply text itself rather than an error
// envelope, so it lands in the reply box the way the rest of the
// conversation does.
func (h *ChatHandler) SendPrompt(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_INPUT", "Please enter a prompt", r))
		return
	}
	if strings.TrimSpace(req.Model) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_INPUT", "Please select a model", r))
		return
	}

	reply, err := h.backend.Send(r.Context(), req.Model, req.Prompt)
	if err != nil {
		writeJSON(w, http.StatusOK, models.ChatResponse{Reply: "Error while running model: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: reply})
}
