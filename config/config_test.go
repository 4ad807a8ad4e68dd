package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/gradepoint/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "PORT", "LOGLEVEL", "CORSORIGINS", "READTIMEOUT", "SHUTDOWNTIMEOUT"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
		os.Unsetenv(config.EnvPrefix + "_" + key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEPOINT_ENV", "production")
	t.Setenv("GRADEPOINT_PORT", "9090")
	t.Setenv("GRADEPOINT_LOGLEVEL", "DEBUG")
	t.Setenv("GRADEPOINT_CORSORIGINS", "https://a.example, https://b.example")
	t.Setenv("GRADEPOINT_READTIMEOUT", "5s")

	cfg, err := config.Load(t.TempDir())

	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.development"), []byte("GRADEPOINT_PORT=7070\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("GRADEPOINT_PORT") })

	cfg, err := config.Load(dir)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("GRADEPOINT_PORT", "70000")

	_, err := config.Load(t.TempDir())

	assert.Error(t, err)
}
