package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudchase/oi-hub/hub"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, hub.DefaultBaseURL, cfg.Hub.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Hub.Timeout)
	assert.Zero(t, cfg.Hub.Retries)
	assert.Equal(t, 5, cfg.Discovery.QueryLimit)
	assert.Equal(t, 20, cfg.Discovery.SearchLimit)
	assert.Equal(t, filepath.Join(cfg.Storage.BaseDir, "hf_models.json"), cfg.Storage.Catalog)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadOverridesAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OI_TEST_MIRROR", "http://mirror.local")
	t.Setenv("OI_TEST_DIR", dir)

	path := writeConfig(t, `
hub:
  baseURL: ${OI_TEST_MIRROR}
  timeout: 3s
  retries: 2
discovery:
  orgs: [Qwen, bartowski]
  exclude: ["*/*-uncensored-*"]
  queryLimit: 3
storage:
  baseDir: ${OI_TEST_DIR}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://mirror.local", cfg.Hub.BaseURL)
	assert.Equal(t, hub.DefaultUserAgent, cfg.Hub.UserAgent)
	assert.Equal(t, 3*time.Second, cfg.Hub.Timeout)
	assert.Equal(t, []string{"Qwen", "bartowski"}, cfg.Discovery.Orgs)
	assert.Equal(t, 3, cfg.Discovery.QueryLimit)
	assert.Equal(t, 20, cfg.Discovery.SearchLimit)
	assert.Equal(t, filepath.Join(dir, "hf_models.json"), cfg.Storage.Catalog)

	opts := cfg.HubOptions()
	assert.Equal(t, 2, opts.Retries)
	assert.Equal(t, "http://mirror.local", opts.BaseURL)
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		"bad url":      "hub:\n  baseURL: ftp://x\n",
		"zero timeout": "hub:\n  timeout: 0s\n",
		"neg retries":  "hub:\n  retries: -1\n",
		"zero limit":   "discovery:\n  searchLimit: 0\n",
		"bad glob":     "discovery:\n  exclude: [\"[oops\"]\n",
		"malformed":    "hub: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".oi"), expandHome("~/.oi"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
