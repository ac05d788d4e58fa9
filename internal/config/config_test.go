package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := newAppConfig()
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "*", cfg.AllowOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestNewDBConfig_DSN(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "skillsnap")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "skillsnap")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("DB_TIMEZONE", "")

	assert.Equal(t,
		"host=db user=skillsnap password=pw dbname=skillsnap port=5433 sslmode=disable TimeZone=UTC",
		newDBConfig().DSN())
}

func TestNewLLMConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "")
		t.Setenv("LLM_MAX_OUTPUT_TOKENS", "")
		t.Setenv("GEMINI_MODEL", "")

		cfg := newLLMConfig()
		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, 16384, cfg.MaxOutputTokens)
		assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	})

	t.Run("openrouter", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "OpenRouter")
		t.Setenv("LLM_MAX_OUTPUT_TOKENS", "8000")

		cfg := newLLMConfig()
		assert.Equal(t, ProviderOpenRouter, cfg.Provider)
		assert.Equal(t, 8000, cfg.MaxOutputTokens)
	})

	t.Run("unknown provider and bad tokens", func(t *testing.T) {
		t.Setenv("LLM_PROVIDER", "claude")
		t.Setenv("LLM_MAX_OUTPUT_TOKENS", "lots")

		cfg := newLLMConfig()
		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, 16384, cfg.MaxOutputTokens)
	})
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "")
	assert.Equal(t, 168*time.Hour, newJWTConfig().ExpiresIn)

	t.Setenv("JWT_EXPIRES_IN", "2h")
	assert.Equal(t, 2*time.Hour, newJWTConfig().ExpiresIn)

	t.Setenv("JWT_EXPIRES_IN", "7d")
	assert.Equal(t, 168*time.Hour, newJWTConfig().ExpiresIn)
}

func TestNewStorageAndRedisConfig(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "GCS")
	t.Setenv("GCS_BUCKET", "resumes")
	st := newStorageConfig()
	assert.Equal(t, StorageGCS, st.Driver)
	assert.Equal(t, "./uploads", st.LocalDir)

	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "x")
	rc := newRedisConfig()
	assert.False(t, rc.Enabled())
	assert.Equal(t, 0, rc.DB)
}
