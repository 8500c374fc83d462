package config

import (
	"os"
	"strconv"
)

// Config carries all environment-driven settings. cmd/docask loads a .env
// file first, so values can come from either place.
type Config struct {
	// Provider selects the model backend: "openai", "ollama", or "hash".
	Provider string

	OpenAIEmbedModel string
	OpenAIChatModel  string

	OllamaURL        string
	OllamaEmbedModel string
	OllamaLLMModel   string

	// HashDimension only applies to the offline hash provider.
	HashDimension int

	ChunkSize    int
	ChunkOverlap int
	TopK         int

	Port        string
	Environment string
}

// Load reads configuration from the environment, falling back to defaults.
func Load() *Config {
	getEnv := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	getEnvInt := func(key string, defaultValue int) int {
		valueStr := os.Getenv(key)
		if valueStr == "" {
			return defaultValue
		}
		value, err := strconv.Atoi(valueStr)
		if err != nil {
			return defaultValue
		}
		return value
	}

	return &Config{
		Provider: getEnv("DOCASK_PROVIDER", "openai"),

		OpenAIEmbedModel: getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		OpenAIChatModel:  getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),

		OllamaURL:        getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaEmbedModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		OllamaLLMModel:   getEnv("OLLAMA_LLM_MODEL", "llama3.2:3b"),

		HashDimension: getEnvInt("HASH_DIMENSION", 512),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 200),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 40),
		TopK:         getEnvInt("TOP_K", 3),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}
