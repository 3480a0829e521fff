package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"url2tldr-backend/internal/models"
	"url2tldr-backend/internal/services"
)

// ─── Test doubles ───

type fakeSource struct {
	name   string
	marker string
	prompt string
	err    error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Matches(rawURL string) bool { return strings.Contains(rawURL, f.marker) }

func (f *fakeSource) BuildPrompt(ctx context.Context, rawURL string) (string, error) {
	return f.prompt, f.err
}

type fakeBackend struct {
	models  []string
	listErr error
	reply   string
	sendErr error
}

func (f *fakeBackend) ListModels(ctx context.Context) ([]string, error) {
	return f.models, f.listErr
}

func (f *fakeBackend) Send(ctx context.Context, model, prompt string) (string, error) {
	return f.reply, f.sendErr
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

// ─── Prompt Handler Tests ───

func TestGenerate_MissingURL(t *testing.T) {
	h := NewPromptHandler(services.NewClassifier())

	tests := []struct {
		name string
		body map[string]string
	}{
		{"empty url", map[string]string{"url": ""}},
		{"whitespace url", map[string]string{"url": "   "}},
		{"no url field", map[string]string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, h.Generate, "/api/v1/prompts/generate", tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
			if resp := decodeError(t, rr); resp.Error.Code != "MISSING_INPUT" {
				t.Errorf("Expected MISSING_INPUT, got %q", resp.Error.Code)
			}
		})
	}
}

func TestGenerate_UnsupportedSource(t *testing.T) {
	h := NewPromptHandler(services.NewClassifier(
		&fakeSource{name: "reddit", marker: "reddit.com"},
	))

	rr := postJSON(t, h.Generate, "/api/v1/prompts/generate", map[string]string{"url": "https://example.com/article"})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "UNSUPPORTED_SOURCE" {
		t.Errorf("Expected UNSUPPORTED_SOURCE, got %q", resp.Error.Code)
	}
}

func TestGenerate_Success(t *testing.T) {
	h := NewPromptHandler(services.NewClassifier(
		&fakeSource{name: "reddit", marker: "reddit.com", prompt: "summarize these comments"},
	))

	rr := postJSON(t, h.Generate, "/api/v1/prompts/generate", map[string]string{"url": "https://www.reddit.com/r/golang/comments/abc/"})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.GeneratePromptResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Prompt != "summarize these comments" {
		t.Errorf("Unexpected prompt: %q", resp.Prompt)
	}
	if resp.Source != "reddit" {
		t.Errorf("Expected source reddit, got %q", resp.Source)
	}
}

func TestGenerate_FetchFailure(t *testing.T) {
	h := NewPromptHandler(services.NewClassifier(
		&fakeSource{name: "reddit", marker: "reddit.com", err: &services.FetchError{Status: http.StatusForbidden}},
	))

	rr := postJSON(t, h.Generate, "/api/v1/prompts/generate", map[string]string{"url": "https://www.reddit.com/r/golang/comments/abc/"})

	if rr.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "FETCH_ERROR" {
		t.Errorf("Expected FETCH_ERROR, got %q", resp.Error.Code)
	}
}

// ─── Chat Handler Tests ───

func TestListModels(t *testing.T) {
	h := NewChatHandler(&fakeBackend{models: []string{"llama3.2:3b", "mistral:7b"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	rr := httptest.NewRecorder()
	h.ListModels(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.ModelsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Models) != 2 {
		t.Errorf("Expected 2 models, got %v", resp.Models)
	}
}

func TestListModels_BackendDown(t *testing.T) {
	h := NewChatHandler(&fakeBackend{listErr: &services.ChatDispatchError{Err: errors.New("connection refused")}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/models", nil)
	rr := httptest.NewRecorder()
	h.ListModels(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error.Code != "CHAT_ERROR" {
		t.Errorf("Expected CHAT_ERROR, got %q", resp.Error.Code)
	}
}

func TestSendPrompt_Success(t *testing.T) {
	h := NewChatHandler(&fakeBackend{reply: "a concise summary"})

	rr := postJSON(t, h.SendPrompt, "/api/v1/chat", models.ChatRequest{Model: "llama3.2:3b", Prompt: "Summarize this."})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Reply != "a concise summary" {
		t.Errorf("Unexpected reply: %q", resp.Reply)
	}
}

// A backend failure lands in the reply box as text, not in the error
// envelope. That mirrors how the original surfaced model errors.
func TestSendPrompt_BackendErrorBecomesReply(t *testing.T) {
	h := NewChatHandler(&fakeBackend{sendErr: &services.ChatDispatchError{Err: errors.New(`model "missing:latest" not found`)}})

	rr := postJSON(t, h.SendPrompt, "/api/v1/chat", models.ChatRequest{Model: "missing:latest", Prompt: "Summarize this."})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Reply, "Error while running model:") {
		t.Errorf("Expected error surfaced as reply content, got %q", resp.Reply)
	}
	if !strings.Contains(resp.Reply, "missing:latest") {
		t.Errorf("Reply should name the failing model, got %q", resp.Reply)
	}
}

func TestSendPrompt_Validation(t *testing.T) {
	h := NewChatHandler(&fakeBackend{reply: "unused"})

	tests := []struct {
		name string
		body models.ChatRequest
	}{
		{"missing prompt", models.ChatRequest{Model: "llama3.2:3b"}},
		{"missing model", models.ChatRequest{Prompt: "Summarize this."}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, h.SendPrompt, "/api/v1/chat", tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
			if resp := decodeError(t, rr); resp.Error.Code != "MISSING_INPUT" {
				t.Errorf("Expected MISSING_INPUT, got %q", resp.Error.Code)
			}
		})
	}
}
