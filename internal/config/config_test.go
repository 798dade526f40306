package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("TITLE_CACHE_TTL", "")
	t.Setenv("WORKER_INTERVAL", "")
	t.Setenv("DEFAULT_LOCALE", "")
	t.Setenv("APP_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, 10*time.Minute, cfg.TitleCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.WorkerInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("APP_URL", "https://galeri.example/")
	t.Setenv("DEFAULT_LOCALE", "id")
	t.Setenv("TITLE_CACHE_TTL", "30s")
	t.Setenv("SMTP_HOST", "smtp.example")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASS", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://galeri.example", cfg.AppURL)
	assert.Equal(t, "id", cfg.DefaultLocale)
	assert.Equal(t, 30*time.Second, cfg.TitleCacheTTL)
	assert.True(t, cfg.SMTP.Configured())
}

func TestLoadRejectsBadDurations(t *testing.T) {
	t.Setenv("TITLE_CACHE_TTL", "soon")

	_, err := Load()
	assert.Error(t, err)
}
