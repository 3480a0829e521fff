package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"url2tldr-backend/internal/models"
	"url2tldr-backend/internal/services"
)

type PromptHandler struct {
	classifier *services.Classifier
}

func NewPromptHandler(classifier *services.Classifier) *PromptHandler {
	return &PromptHandler{classifier: classifier}
}

// Generate runs the URL → prompt pipeline for whichever source claims
// the submitted URL.
func (h *PromptHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_INPUT", "Please enter a URL first", r))
		return
	}

	source, err := h.classifier.Resolve(req.URL)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	prompt, err := source.BuildPrompt(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.GeneratePromptResponse{
		Prompt: prompt,
		Source: source.Name(),
	})
}
