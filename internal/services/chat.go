package services

import "context"

// ChatBackend is the boundary to whatever chat-completion service is
// configured. Send issues one synchronous request carrying a single
// user-role message and returns the reply text trimmed of surrounding
// whitespace.
type ChatBackend interface {
	ListModels(ctx context.Context) ([]string, error)
	Send(ctx context.Context, model, prompt string) (string, error)
}
