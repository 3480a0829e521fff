package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"url2tldr-backend/internal/handlers"
	"url2tldr-backend/internal/middleware"
	"url2tldr-backend/internal/web"
)

func New(
	promptHandler *handlers.PromptHandler,
	chatHandler *handlers.ChatHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// UI page
	r.Get("/", web.Index)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/prompts/generate", promptHandler.Generate)
		r.Get("/models", chatHandler.ListModels)
		r.Post("/chat", chatHandler.SendPrompt)
	})

	return r
}
