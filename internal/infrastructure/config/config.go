package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Provider   ProviderConfig
	Sync       SyncConfig
	Onboarding OnboardingConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=influencer_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ProviderConfig points at the credit-metered social-data API.
type ProviderConfig struct {
	BaseURL string        `env:"PROVIDER_BASE_URL, default=https://api.modash.io/v1"`
	APIKey  string        `env:"PROVIDER_API_KEY"`
	Timeout time.Duration `env:"PROVIDER_TIMEOUT,  default=30s"`
}

// SyncConfig carries the tiered sync schedule. The defaults are the
// documented contract: batches of 10, 500ms between records, daily at
// 02:00 UTC.
type SyncConfig struct {
	BatchSize         int           `env:"SYNC_BATCH_SIZE,          default=10"`
	RecordDelay       time.Duration `env:"SYNC_RECORD_DELAY,        default=500ms"`
	RunHourUTC        int           `env:"SYNC_RUN_HOUR_UTC,        default=2"`
	DailyCreditBudget int           `env:"SYNC_DAILY_CREDIT_BUDGET, default=200"`
}

// OnboardingConfig carries the wizard draft TTL and step-save retry policy.
type OnboardingConfig struct {
	DraftTTL       time.Duration `env:"ONBOARDING_DRAFT_TTL,        default=168h"`
	SaveMaxRetries uint64        `env:"ONBOARDING_SAVE_MAX_RETRIES, default=3"`
	SaveBaseDelay  time.Duration `env:"ONBOARDING_SAVE_BASE_DELAY,  default=200ms"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.Sync.RunHourUTC < 0 || cfg.Sync.RunHourUTC > 23 {
		panic(fmt.Sprintf("config: SYNC_RUN_HOUR_UTC must be between 0 and 23, got %d", cfg.Sync.RunHourUTC))
	}
	return &cfg
}
