package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth. Empty disables authentication (local use).
	APIKey string

	// Document storage
	UploadDir string

	// Upload limits
	MaxUploadBytes int64

	// Analysis pool
	WorkerCount int

	// Report defaults
	TopKSections int
	MaxSnippets  int
	CacheSize    int

	// Heading detection
	HeadingScoreThreshold float64

	// Relevance weights. Must sum to 1.
	WeightLexical float64
	WeightHeading float64
	WeightDomain  float64

	// Quality enrichment stage
	QualitySignals bool

	// HTTP
	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("DOCUSENSE_API_KEY"),

		UploadDir: envOr("UPLOAD_DIR", "./data/documents"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		WorkerCount: envInt("WORKER_COUNT", 4),

		TopKSections: envInt("TOP_K_SECTIONS", 5),
		MaxSnippets:  envInt("MAX_SNIPPETS", 3),
		CacheSize:    envInt("CACHE_SIZE", 128),

		HeadingScoreThreshold: envFloat("HEADING_SCORE_THRESHOLD", 2.5),

		WeightLexical: envFloat("WEIGHT_LEXICAL", 0.6),
		WeightHeading: envFloat("WEIGHT_HEADING", 0.25),
		WeightDomain:  envFloat("WEIGHT_DOMAIN", 0.15),

		QualitySignals: envBool("QUALITY_SIGNALS", true),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.TopKSections <= 0 {
		cfg.TopKSections = 5
	}
	if cfg.MaxSnippets <= 0 {
		cfg.MaxSnippets = 3
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 128
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.HeadingScoreThreshold <= 0 {
		return fmt.Errorf("HEADING_SCORE_THRESHOLD must be positive")
	}
	if c.WeightLexical < 0 || c.WeightHeading < 0 || c.WeightDomain < 0 {
		return fmt.Errorf("relevance weights must be non-negative")
	}
	sum := c.WeightLexical + c.WeightHeading + c.WeightDomain
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("relevance weights must sum to 1, got %g", sum)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
