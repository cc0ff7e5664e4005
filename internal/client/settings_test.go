package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/trainlog/internal/config"
)

func TestSettingsFromConfigDefaults(t *testing.T) {
	t.Setenv("TRAINLOG_SERVER_URL", "")
	t.Setenv("TRAINLOG_REQUEST_TIMEOUT", "")
	settings := SettingsFromConfig(nil)
	assert.Equal(t, DefaultBaseURL, settings.BaseURL)
	assert.Zero(t, settings.Timeout)
}

func TestSettingsFromConfigReadsProject(t *testing.T) {
	t.Setenv("TRAINLOG_SERVER_URL", "")
	t.Setenv("TRAINLOG_REQUEST_TIMEOUT", "")
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, config.Dir)
	require.NoError(t, os.MkdirAll(stateDir, 0o755))
	yaml := "version: 1\nserver:\n  base_url: http://treino.local:8080/\n  request_timeout: 10s\n"
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := config.NewConfig(projectDir)
	require.NoError(t, err)
	settings := SettingsFromConfig(cfg)
	assert.Equal(t, "http://treino.local:8080", settings.BaseURL)
	assert.Equal(t, 10*time.Second, settings.Timeout)
}

func TestSettingsFromConfigHonorsEnv(t *testing.T) {
	t.Setenv("TRAINLOG_SERVER_URL", "https://api.treino.example/")
	t.Setenv("TRAINLOG_REQUEST_TIMEOUT", "2m")
	settings := SettingsFromConfig(&config.Config{})
	assert.Equal(t, "https://api.treino.example", settings.BaseURL)
	assert.Equal(t, 2*time.Minute, settings.Timeout)
	require.NoError(t, settings.Validate())
}

func TestSettingsIgnoresBadEnvTimeout(t *testing.T) {
	t.Setenv("TRAINLOG_SERVER_URL", "")
	t.Setenv("TRAINLOG_REQUEST_TIMEOUT", "-5s")
	settings := SettingsFromConfig(nil)
	assert.Zero(t, settings.Timeout)
}

func TestServerOverrideBeatsEnv(t *testing.T) {
	t.Setenv("TRAINLOG_SERVER_URL", "https://env.treino.example")
	t.Setenv("TRAINLOG_REQUEST_TIMEOUT", "")
	cfg := &config.Config{}
	require.NoError(t, cfg.SetServerURL("http://flag.treino.example:9000/"))
	settings := SettingsFromConfig(cfg)
	assert.Equal(t, "http://flag.treino.example:9000", settings.BaseURL)
}
