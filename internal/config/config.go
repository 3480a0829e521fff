package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Chat backend: "ollama" (default) or "gemini"
	ChatBackend string

	// Ollama
	OllamaURL          string
	ChatTimeoutSeconds int

	// Gemini AI
	GeminiAPIKey string
	GeminiModel  string

	// Reddit
	RedditUserAgent string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		ChatBackend: getEnvOrDefault("CHAT_BACKEND", "ollama"),

		OllamaURL:          getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		ChatTimeoutSeconds: getEnvAsIntOrDefault("CHAT_TIMEOUT_SECONDS", 300),

		GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),

		RedditUserAgent: getEnvOrDefault("REDDIT_USER_AGENT", "Mozilla/5.0 (compatible; url2tldr/1.0)"),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:8080"),
	}

	if cfg.ChatBackend == "gemini" && cfg.GeminiAPIKey == "" {
		panic("CHAT_BACKEND=gemini requires GEMINI_API_KEY to be set")
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
