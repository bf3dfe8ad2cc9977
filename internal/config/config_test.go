package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvConfig_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_AUTO_MIGRATE", "")

	require.NoError(t, LoadEnvConfig(filepath.Join(t.TempDir(), "missing.env")))

	assert.Equal(t, "3000", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, 5432, DefaultEnvConfig.DB_PORT)
	assert.Equal(t, 20*time.Minute, DefaultEnvConfig.DB_CONN_MAX_LIFETIME)
	assert.False(t, DefaultEnvConfig.DB_AUTO_MIGRATE)
}

func TestLoadEnvConfig_FromEnvAndFile(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "8081")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("ELASTIC_URL_TEST_ONLY=x\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ELASTIC_URL_TEST_ONLY") })

	require.NoError(t, LoadEnvConfig(envFile))

	assert.Equal(t, "8081", DefaultEnvConfig.APP_PORT)
	assert.Equal(t, 90*time.Second, DefaultEnvConfig.DB_CONN_MAX_LIFETIME)
	assert.True(t, DefaultEnvConfig.DB_AUTO_MIGRATE)
	assert.Equal(t, "x", os.Getenv("ELASTIC_URL_TEST_ONLY"))
}
