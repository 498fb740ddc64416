package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/rocket-motor-showroom/internal/core"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, core.Development, cfg.Environment())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, 20, cfg.MaxContextSize)
	assert.Equal(t, 5*time.Second, cfg.SaveTimeout)
	assert.Equal(t, 2, cfg.SaveRetries)
	assert.Equal(t, 200*time.Millisecond, cfg.SaveRetryBackoff)
	assert.Equal(t, 5*time.Second, cfg.CarouselInterval)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Nil(t, cfg.Credentials())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("SAVE_TIMEOUT", "750ms")
	t.Setenv("ADMIN_CREDENTIALS", "zoe:pw2,adam:pw1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Environment().IsProduction())
	assert.Equal(t, StorageRedis, cfg.StorageDriver)
	assert.Equal(t, "redis://cache:6379/2", cfg.Redis.URL)
	assert.Equal(t, 750*time.Millisecond, cfg.SaveTimeout)
	assert.Equal(t, []entity.AdminCredential{
		{Username: "adam", Password: "pw1"},
		{Username: "zoe", Password: "pw2"},
	}, cfg.Credentials())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":   {"STORAGE_DRIVER": "postgres"},
		"negative retries": {"SAVE_RETRIES": "-1"},
		"zero timeout":     {"SAVE_TIMEOUT": "0s"},
		"bad duration":     {"CAROUSEL_INTERVAL": "soon"},
		"zero context":     {"MAX_CONTEXT_SIZE": "0"},
	}

	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
