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
	for _, key := range []string{"HTTP_ADDR", "PROBE_TARGET", "REFRESH_INTERVAL", "PROBE_TIMEOUT", "PROBE_INTERVAL"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.HTTPAddr)
	assert.Equal(t, time.Second, cfg.RefreshInterval)
	assert.Equal(t, "8.8.8.8:53", cfg.ProbeTarget)
	assert.Equal(t, time.Second, cfg.ProbeTimeout)
	assert.Equal(t, time.Second, cfg.ProbeInterval)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nigraan.yaml")
	data := []byte("http_addr: :9090\nrefresh_interval: 2s\nprobe_target: 1.1.1.1:53\nallowed_origins:\n  - http://localhost:3000\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 2*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "1.1.1.1:53", cfg.ProbeTarget)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nigraan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh_interval: 2s\n"), 0o644))

	t.Setenv("REFRESH_INTERVAL", "500ms")
	t.Setenv("PROBE_TARGET", "9.9.9.9:53")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.RefreshInterval)
	assert.Equal(t, "9.9.9.9:53", cfg.ProbeTarget)
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_NonPositiveIntervalFallsBack(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nigraan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh_interval: 0s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.RefreshInterval)
}
