// ABOUTME: Centralized configuration for the chatbot server and CLI
// ABOUTME: Defaults, optional config.yaml overrides, env vars on top
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the RAG chatbot.
type Config struct {
	// Server settings
	Addr          string `yaml:"addr"`
	DocsDir       string `yaml:"docs_dir"`
	SessionSecret string `yaml:"-"`

	// Retrieval settings
	ChunkSize      int `yaml:"chunk_size"`
	ChunkOverlap   int `yaml:"chunk_overlap"`
	TopK           int `yaml:"top_k"`
	EmbedBatchSize int `yaml:"embed_batch_size"`
	HistorySize    int `yaml:"history_size"`

	// OpenAI settings
	OpenAIKey      string        `yaml:"-"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Temperature    float32       `yaml:"temperature"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
}

// Default returns the built-in defaults. Chunking parameters mirror the
// splitter the knowledge base was originally tuned with (1000/200, k=3).
func Default() *Config {
	return &Config{
		Addr:           ":5001",
		DocsDir:        "docs",
		ChunkSize:      1000,
		ChunkOverlap:   200,
		TopK:           3,
		EmbedBatchSize: 500,
		HistorySize:    10,
		ChatModel:      "gpt-3.5-turbo",
		EmbeddingModel: "text-embedding-3-small",
		Temperature:    0.7,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
	}
}

// Load builds the configuration: defaults, then the yaml file at path (or
// ./config.yaml when path is empty) if it exists, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Optional file; defaults + env is a fully supported setup.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.Addr = getEnv("CHATBOT_ADDR", cfg.Addr)
	cfg.DocsDir = getEnv("CHATBOT_DOCS_DIR", cfg.DocsDir)
	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.ChunkSize = getEnvInt("CHATBOT_CHUNK_SIZE", cfg.ChunkSize)
	cfg.ChunkOverlap = getEnvInt("CHATBOT_CHUNK_OVERLAP", cfg.ChunkOverlap)
	cfg.TopK = getEnvInt("CHATBOT_TOP_K", cfg.TopK)
	cfg.EmbedBatchSize = getEnvInt("CHATBOT_EMBED_BATCH_SIZE", cfg.EmbedBatchSize)
	cfg.HistorySize = getEnvInt("CHATBOT_HISTORY_SIZE", cfg.HistorySize)
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.ChatModel = getEnv("CHATBOT_OPENAI_MODEL", cfg.ChatModel)
	cfg.EmbeddingModel = getEnv("CHATBOT_EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.Timeout = getEnvDuration("OPENAI_TIMEOUT", cfg.Timeout)
	cfg.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", cfg.RetryDelay)

	return cfg, cfg.Validate()
}

// Validate rejects configurations that would corrupt chunking or retrieval.
// The overlap bound is checked here, before any indexing happens.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHATBOT_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("CHATBOT_CHUNK_OVERLAP cannot be negative, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHATBOT_CHUNK_OVERLAP (%d) must be smaller than CHATBOT_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("CHATBOT_TOP_K must be positive, got %d", c.TopK)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("CHATBOT_EMBED_BATCH_SIZE must be positive, got %d", c.EmbedBatchSize)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("CHATBOT_HISTORY_SIZE must be positive, got %d", c.HistorySize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.RetryDelay <= 0 {
		return fmt.Errorf("OPENAI_RETRY_DELAY must be positive, got %v", c.RetryDelay)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive, got %v", c.Timeout)
	}
	return nil
}

// RequireOpenAIKey is checked by the commands that talk to the provider.
// Serving traffic without credentials is a startup error, not a 500 later.
func (c *Config) RequireOpenAIKey() error {
	if c.OpenAIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
