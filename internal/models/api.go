package models

// GeneratePromptRequest is the payload for the prompt-generation endpoint.
type GeneratePromptRequest struct {
	URL string `json:"url"`
}

// GeneratePromptResponse carries the assembled prompt and which source built it.
type GeneratePromptResponse struct {
	Prompt string `json:"prompt"`
	Source string `json:"source"` // "reddit" | "youtube"
}

// ModelsResponse lists the chat models available on the configured backend.
type ModelsResponse struct {
	Models []string `json:"models"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
