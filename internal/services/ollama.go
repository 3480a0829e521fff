package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"url2tldr-backend/internal/models"
)

// OllamaService talks to a locally running Ollama daemon over its HTTP
// API: /api/tags for the model list, /api/chat for completions.
type OllamaService struct {
	baseURL    string
	httpClient *http.Client
}

func NewOllamaService(baseURL string, timeout time.Duration) *OllamaService {
	return &OllamaService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type ollamaChatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

type ollamaChatResponse struct {
	Message models.ChatMessage `json:"message"`
	Error   string             `json:"error"`
}

// ListModels returns the names of the locally installed models.
func (s *OllamaService) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ChatDispatchError{Err: err}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &ChatDispatchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ChatDispatchError{Err: fmt.Errorf("ollama returned HTTP %d", resp.StatusCode)}
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, &ChatDispatchError{Err: fmt.Errorf("could not decode model list: %w", err)}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Send issues one blocking chat request with a single user message.
func (s *OllamaService) Send(ctx context.Context, model, prompt string) (string, error) {
	payload, err := json.Marshal(ollamaChatRequest{
		Model:    model,
		Messages: []models.ChatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", &ChatDispatchError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", &ChatDispatchError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &ChatDispatchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ChatDispatchError{Err: err}
	}

	var chat ollamaChatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return "", &ChatDispatchError{Err: fmt.Errorf("could not decode chat response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		if chat.Error != "" {
			return "", &ChatDispatchError{Err: fmt.Errorf("ollama: %s", chat.Error)}
		}
		return "", &ChatDispatchError{Err: fmt.Errorf("ollama returned HTTP %d", resp.StatusCode)}
	}

	return strings.TrimSpace(chat.Message.Content), nil
}
