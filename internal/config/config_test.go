package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "ogg", cfg.DefaultFormat)
	assert.Equal(t, 5, cfg.Quality)
	assert.Equal(t, 0, cfg.MaxConcurrency)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.SkipExisting)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 90, cfg.History.KeepDays)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMergesWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
default_format: flac
quality: 8
max_concurrency: 4
timeout: 30m
log_level: debug
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
skip_existing: true
history:
  enabled: false
  keep_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "flac", cfg.DefaultFormat)
	assert.Equal(t, 8, cfg.Quality)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 30*time.Minute, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", cfg.FFmpegPath)
	assert.True(t, cfg.SkipExisting)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 7, cfg.History.KeepDays)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_format: mp3\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mp3", cfg.DefaultFormat)
	assert.Equal(t, 5, cfg.Quality)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadConfigExplicitZeroQuality(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: 0\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Quality)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_format: [unclosed\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigBadTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: soon\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "invalid timeout format")
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".convmusic"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".convmusic", "config.yaml"),
		[]byte("default_format: opus\n"), 0644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "opus", cfg.DefaultFormat)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	format := "wav"
	quality := 9
	concurrency := 2
	timeout := time.Minute
	skip := true
	cfg.MergeWithFlags(&format, &quality, &concurrency, &timeout, &skip)

	assert.Equal(t, "wav", cfg.DefaultFormat)
	assert.Equal(t, 9, cfg.Quality)
	assert.Equal(t, 2, cfg.MaxConcurrency)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.True(t, cfg.SkipExisting)
}

func TestMergeWithFlagsNilLeavesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeWithFlags(nil, nil, nil, nil, nil)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"empty format", func(c *Config) { c.DefaultFormat = "" }, "default_format"},
		{"quality too high", func(c *Config) { c.Quality = 11 }, "quality"},
		{"quality negative", func(c *Config) { c.Quality = -1 }, "quality"},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }, "max_concurrency"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"negative keep days", func(c *Config) { c.History.KeepDays = -1 }, "keep_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestGetConvmusicHomeEnvOverride(t *testing.T) {
	home := filepath.Join(t.TempDir(), "custom-home")
	t.Setenv("CONVMUSIC_HOME", home)

	got, err := GetConvmusicHome()
	require.NoError(t, err)
	assert.Equal(t, home, got)
	assert.DirExists(t, got)
}

func TestGetHistoryDBPath(t *testing.T) {
	t.Setenv("CONVMUSIC_HOME", t.TempDir())

	path, err := GetHistoryDBPath("")
	require.NoError(t, err)
	assert.Equal(t, "history.db", filepath.Base(path))

	path, err = GetHistoryDBPath("/tmp/custom.db")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", path)
}
