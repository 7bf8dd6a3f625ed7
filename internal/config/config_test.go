package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	v := New()
	v.Set(KeyDataDir, t.TempDir())

	cfg, err := LoadConfig(v, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 60*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 1.0, cfg.UIRefreshRate)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, filepath.IsAbs(cfg.DataDir))
	assert.Equal(t, filepath.Join(cfg.DataDir, "settings"), cfg.SettingsDir())
	assert.Equal(t, filepath.Join(cfg.DataDir, "logs", "app.log"), cfg.LogFile())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "monitor.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
base_url: http://backend.example/api/
request_timeout: 5s
refresh_interval: 2m
ui_refresh_rate: 2
timezone: UTC
`), 0o644))

	t.Setenv("BAGGAGE_MONITOR_METRICS_ADDR", ":9100")
	t.Setenv("BAGGAGE_MONITOR_REFRESH_INTERVAL", "30s")

	v := New()
	v.Set(KeyDataDir, dir)
	cfg, err := LoadConfig(v, file)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.example/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval, "environment overrides the file")
	assert.Equal(t, 2.0, cfg.UIRefreshRate)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".baggage-monitor.yaml"), []byte("base_url: http://found/api\n"), 0o644))

	v := New()
	v.Set(KeyDataDir, t.TempDir())
	cfg, err := LoadConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, "http://found/api", cfg.BaseURL)
}

func TestLoadConfig_ExplicitFileMustExist(t *testing.T) {
	_, err := LoadConfig(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() AppConfig {
		return AppConfig{
			BaseURL:         "http://x",
			DataDir:         t.TempDir(),
			RequestTimeout:  time.Second,
			RefreshInterval: time.Second,
			UIRefreshRate:   1,
			Timezone:        "UTC",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"empty base url", func(c *AppConfig) { c.BaseURL = " " }, "base_url"},
		{"zero timeout", func(c *AppConfig) { c.RequestTimeout = 0 }, "request_timeout"},
		{"zero refresh", func(c *AppConfig) { c.RefreshInterval = 0 }, "refresh_interval"},
		{"ui rate too high", func(c *AppConfig) { c.UIRefreshRate = 50 }, "ui_refresh_rate"},
		{"bad timezone", func(c *AppConfig) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"auto timezone", func(c *AppConfig) { c.Timezone = "auto" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandPath("~/x/y"))
	assert.True(t, filepath.IsAbs(ExpandPath("relative")))
}

// chdir changes the working directory for the duration of the test, like
// testing.T.Chdir (Go 1.24+), restoring the previous directory on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
