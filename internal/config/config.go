package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every recognized option. Everything is overridable from the
// environment; a .env file is loaded first when present.
type Config struct {
	Port         string
	GeminiAPIKey string

	// FastModel handles classification and per-item vetting; ProModel
	// handles auditing and the unified call.
	FastModel string
	ProModel  string

	CacheTTL     time.Duration
	CacheBackend string // "memory" or "redis"
	RedisAddr    string

	Temperature     float32
	Pipeline        string // "unified" or "staged"
	GenerateTimeout time.Duration
	MaxRetries      int

	LogLevel  string
	LogFormat string
}

func Load() (*Config, error) {
	// Missing .env is fine; system environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("FAST_MODEL", "gemini-2.0-flash")
	v.SetDefault("PRO_MODEL", "gemini-2.0-flash")
	v.SetDefault("CACHE_TTL_SECONDS", 3600)
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("TEMPERATURE", 0.2)
	v.SetDefault("PIPELINE", "unified")
	v.SetDefault("GENERATE_TIMEOUT_SECONDS", 25)
	v.SetDefault("MAX_RETRIES", 2)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := &Config{
		Port:            v.GetString("PORT"),
		GeminiAPIKey:    v.GetString("GEMINI_API_KEY"),
		FastModel:       v.GetString("FAST_MODEL"),
		ProModel:        v.GetString("PRO_MODEL"),
		CacheTTL:        time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		CacheBackend:    v.GetString("CACHE_BACKEND"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		Temperature:     float32(v.GetFloat64("TEMPERATURE")),
		Pipeline:        v.GetString("PIPELINE"),
		GenerateTimeout: time.Duration(v.GetInt("GENERATE_TIMEOUT_SECONDS")) * time.Second,
		MaxRetries:      v.GetInt("MAX_RETRIES"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", cfg.CacheBackend)
	}
	switch cfg.Pipeline {
	case "unified", "staged":
	default:
		return fmt.Errorf("PIPELINE must be unified or staged, got %q", cfg.Pipeline)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative, got %d", cfg.MaxRetries)
	}
	return nil
}
