package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type LLMConfig struct {
	Provider        string
	MaxOutputTokens int

	GeminiAPIKey         string
	GeminiModel          string
	GeminiEmbeddingModel string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = newLLMConfig()
	})
	return llmConfig
}

func newLLMConfig() *LLMConfig {
	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini))
	if provider != ProviderGemini && provider != ProviderOpenRouter {
		log.Printf("Warning: unknown LLM_PROVIDER %q, falling back to %s", provider, ProviderGemini)
		provider = ProviderGemini
	}

	maxTokens := 16384
	if raw := os.Getenv("LLM_MAX_OUTPUT_TOKENS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxTokens = n
		} else {
			log.Printf("Warning: invalid LLM_MAX_OUTPUT_TOKENS %q, using %d", raw, maxTokens)
		}
	}

	return &LLMConfig{
		Provider:             provider,
		MaxOutputTokens:      maxTokens,
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiEmbeddingModel: getEnv("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		OpenRouterAPIKey:     os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:      getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		OpenRouterBaseURL:    getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
	}
}
