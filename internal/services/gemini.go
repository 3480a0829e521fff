package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiService is the hosted-model alternative to the local Ollama
// backend, selected with CHAT_BACKEND=gemini.
type GeminiService struct {
	client       *genai.Client
	defaultModel string
}

func NewGeminiService(apiKey, defaultModel string) (*GeminiService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:       client,
		defaultModel: defaultModel,
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// ListModels returns the Gemini models that support content generation.
func (s *GeminiService) ListModels(ctx context.Context) ([]string, error) {
	var names []string

	it := s.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &ChatDispatchError{Err: fmt.Errorf("failed to list Gemini models: %w", err)}
		}

		supported := false
		for _, method := range info.SupportedGenerationMethods {
			if method == "generateContent" {
				supported = true
				break
			}
		}
		if supported {
			names = append(names, strings.TrimPrefix(info.Name, "models/"))
		}
	}

	return names, nil
}

// Send issues one blocking generation request with the prompt as the
// single user message.
func (s *GeminiService) Send(ctx context.Context, model, prompt string) (string, error) {
	if model == "" {
		model = s.defaultModel
	}

	gm := s.client.GenerativeModel(model)
	gm.SetTemperature(0.3)
	gm.SetTopP(0.95)

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ChatDispatchError{Err: err}
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", &ChatDispatchError{Err: fmt.Errorf("Gemini returned an empty reply")}
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
