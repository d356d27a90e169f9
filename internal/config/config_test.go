package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PETS_API_BASE_URL", "REACT_APP_API_BASE_URL", "PORT", "SESSION_TTL",
		"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_RequiresBaseURL(t *testing.T) {
	clearEnv(t)

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PETS_API_BASE_URL", "http://localhost:5000")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.PetsAPIBaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "pet-adoption-web", cfg.AppName)
}

func TestFromEnv_LegacyBaseURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_API_BASE_URL", "http://legacy:5000/api")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://legacy:5000/api", cfg.PetsAPIBaseURL)
}

func TestFromEnv_PrimaryWinsOverLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv("PETS_API_BASE_URL", "http://primary")
	t.Setenv("REACT_APP_API_BASE_URL", "http://legacy")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://primary", cfg.PetsAPIBaseURL)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PETS_API_BASE_URL", "http://x")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestFromEnv_InvalidDurationFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PETS_API_BASE_URL", "http://x")
	t.Setenv("SESSION_TTL", "soon")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoad_ReadsDotEnvWithoutOverriding(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PETS_API_BASE_URL=http://from-dotenv\nPORT=7070\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("PORT", "6060")
	// godotenv solo completa variables ausentes; vacía cuenta como definida.
	require.NoError(t, os.Unsetenv("PETS_API_BASE_URL"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv", cfg.PetsAPIBaseURL)
	assert.Equal(t, "6060", cfg.Port)
}

func TestLoad_NoDotEnvIsFine(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("PETS_API_BASE_URL", "http://x")

	_, err := Load()
	assert.NoError(t, err)
}
