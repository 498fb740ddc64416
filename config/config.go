package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/yourusername/rocket-motor-showroom/internal/core"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/pkg/redis"
)

// Saqlash drayverlari
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	TelegramToken  string `envconfig:"TELEGRAM_BOT_TOKEN"`
	GeminiAPIKey   string `envconfig:"GEMINI_API_KEY"`
	GeminiModel    string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	MaxContextSize int    `envconfig:"MAX_CONTEXT_SIZE" default:"20"`
	ChatDBPath     string `envconfig:"CHAT_DB_PATH" default:"data/chat.db"`

	StorageDriver  string       `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SnapshotDBPath string       `envconfig:"SNAPSHOT_DB_PATH" default:"data/showroom.db"`
	Redis          redis.Config `envconfig:"REDIS"`

	// "admin1:rocket1,admin2:rocket2" ko'rinishida
	AdminCredentials map[string]string `envconfig:"ADMIN_CREDENTIALS"`

	SaveTimeout      time.Duration `envconfig:"SAVE_TIMEOUT" default:"5s"`
	SaveRetries      int           `envconfig:"SAVE_RETRIES" default:"2"`
	SaveRetryBackoff time.Duration `envconfig:"SAVE_RETRY_BACKOFF" default:"200ms"`

	CarouselInterval time.Duration `envconfig:"CAROUSEL_INTERVAL" default:"5s"`
}

// Load konfiguratsiyani yuklash
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate qiymatlar oralig'ini tekshirish
func (c *Config) Validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite, StorageRedis:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, sqlite, redis (got %q)", c.StorageDriver)
	}

	if c.StorageDriver == StorageSQLite && c.SnapshotDBPath == "" {
		return fmt.Errorf("SNAPSHOT_DB_PATH is required for sqlite storage")
	}
	if c.MaxContextSize <= 0 {
		return fmt.Errorf("MAX_CONTEXT_SIZE must be positive")
	}
	if c.SaveTimeout <= 0 {
		return fmt.Errorf("SAVE_TIMEOUT must be positive")
	}
	if c.SaveRetries < 0 {
		return fmt.Errorf("SAVE_RETRIES must not be negative")
	}
	if c.SaveRetryBackoff < 0 {
		return fmt.Errorf("SAVE_RETRY_BACKOFF must not be negative")
	}
	for user, pass := range c.AdminCredentials {
		if strings.TrimSpace(user) == "" || pass == "" {
			return fmt.Errorf("ADMIN_CREDENTIALS contains an empty username or password")
		}
	}
	return nil
}

// Environment APP_ENV qiymati
func (c *Config) Environment() core.Environment {
	return core.ParseEnvironment(c.AppEnv)
}

// Credentials admin ro'yxati username bo'yicha tartiblangan, bo'sh bo'lsa nil
func (c *Config) Credentials() []entity.AdminCredential {
	if len(c.AdminCredentials) == 0 {
		return nil
	}
	out := make([]entity.AdminCredential, 0, len(c.AdminCredentials))
	for user, pass := range c.AdminCredentials {
		out = append(out, entity.AdminCredential{Username: strings.TrimSpace(user), Password: pass})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}
