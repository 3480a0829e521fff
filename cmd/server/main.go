package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"url2tldr-backend/internal/config"
	"url2tldr-backend/internal/handlers"
	"url2tldr-backend/internal/router"
	"url2tldr-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting URL2TLDR Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Content Sources ────
	redditService := services.NewRedditService(cfg.RedditUserAgent)
	youtubeService := services.NewYouTubeService()

	// Reddit registers first: reddit.com wins over a youtube.com
	// substring hiding in a query parameter.
	classifier := services.NewClassifier(redditService, youtubeService)
	log.Println("✓ Content sources registered (reddit, youtube)")

	// ──── Step 3: Initialize Chat Backend ────
	var backend services.ChatBackend
	switch cfg.ChatBackend {
	case "gemini":
		geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		backend = geminiService
		log.Println("✓ Gemini chat backend initialized")
	default:
		backend = services.NewOllamaService(cfg.OllamaURL, time.Duration(cfg.ChatTimeoutSeconds)*time.Second)
		log.Printf("✓ Ollama chat backend initialized (%s)", cfg.OllamaURL)
	}

	// ──── Initialize Handlers ────
	promptHandler := handlers.NewPromptHandler(classifier)
	chatHandler := handlers.NewChatHandler(backend)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(promptHandler, chatHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Write timeout has to outlast a blocking chat call.
		WriteTimeout: time.Duration(cfg.ChatTimeoutSeconds+15) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ URL2TLDR Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  UI:  http://localhost:%s/", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
