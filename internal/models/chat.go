package models

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ChatResponse is the reply from the model.
type ChatResponse struct {
	Reply string `json:"reply"`
}
