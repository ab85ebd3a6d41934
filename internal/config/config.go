// Package config provides runtime configuration for the service, read from
// the environment with optional .env support for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every tunable knob. The chaos probabilities, ratio bounds and
// warm-up values are deliberately configuration, not constants.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`

	// Session persistence. Empty RedisAddr selects the in-memory store.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Generative completion service.
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Market price oracle. Empty means static fallback prices only.
	OracleBaseURL string        `env:"ORACLE_BASE_URL"`
	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"5s"`

	// Audit sink.
	AuditLogPath string `env:"AUDIT_LOG_PATH" envDefault:"data/audit.jsonl"`

	// Dialogue.
	DefaultCurrency   string        `env:"DEFAULT_CURRENCY" envDefault:"INR"`
	ExtractionRetries int           `env:"EXTRACTION_RETRIES" envDefault:"3"`
	ExtractionBackoff time.Duration `env:"EXTRACTION_BACKOFF" envDefault:"200ms"`

	// Broadcast chaos probabilities.
	ChaosNetworkError   float64 `env:"CHAOS_NETWORK_ERROR" envDefault:"0.01"`
	ChaosGatewayTimeout float64 `env:"CHAOS_GATEWAY_TIMEOUT" envDefault:"0.03"`
	ChaosNoSellers      float64 `env:"CHAOS_NO_SELLERS" envDefault:"0.02"`
	ChaosRateLimited    float64 `env:"CHAOS_RATE_LIMITED" envDefault:"0.01"`

	// Adaptive pricing.
	WarmupThreshold int     `env:"WARMUP_THRESHOLD" envDefault:"5"`
	WarmupNoise     float64 `env:"WARMUP_NOISE" envDefault:"0.10"`
	MinBidRatio     float64 `env:"MIN_BID_RATIO" envDefault:"0.8"`
	MaxBidRatio     float64 `env:"MAX_BID_RATIO" envDefault:"1.2"`
	SmoothingAlpha  float64 `env:"SMOOTHING_ALPHA" envDefault:"0.2"`
}

// Load reads configuration from the environment. A .env file is applied when
// present but is never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
