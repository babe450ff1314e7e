// Package config loads the oi-hub YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cloudchase/oi-hub/discovery"
	"github.com/cloudchase/oi-hub/hub"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "OI_HUB_CONFIG"

// Config is the top-level configuration structure.
type Config struct {
	Hub       HubConfig       `yaml:"hub"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Storage   StorageConfig   `yaml:"storage"`
}

// HubConfig configures the registry client.
type HubConfig struct {
	BaseURL   string        `yaml:"baseURL"`
	UserAgent string        `yaml:"userAgent"`
	Timeout   time.Duration `yaml:"timeout"`
	Retries   int           `yaml:"retries"`
}

// DiscoveryConfig configures the fetch and search pipelines.
type DiscoveryConfig struct {
	Orgs        []string `yaml:"orgs"`
	Exclude     []string `yaml:"exclude"`
	QueryLimit  int      `yaml:"queryLimit"`
	SearchLimit int      `yaml:"searchLimit"`
}

// StorageConfig locates the local model store and the catalog cache.
type StorageConfig struct {
	BaseDir string `yaml:"baseDir"`
	Catalog string `yaml:"catalog"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Hub: HubConfig{
			BaseURL:   hub.DefaultBaseURL,
			UserAgent: hub.DefaultUserAgent,
			Timeout:   hub.DefaultTimeout,
		},
		Discovery: DiscoveryConfig{
			QueryLimit:  discovery.QueryLimit,
			SearchLimit: discovery.SearchLimit,
		},
		Storage: StorageConfig{
			BaseDir: filepath.Join(home, ".oi"),
		},
	}
}

// DefaultPath returns the config path used when none is given:
// $OI_HUB_CONFIG, else <user config dir>/oi-hub/config.yaml.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "oi-hub", "config.yaml")
}

// Load reads the configuration at path over the defaults. An empty path
// means DefaultPath, and a missing default file yields the defaults. A
// path given explicitly must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal([]byte(expandEnv(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg.Storage.BaseDir = expandHome(cfg.Storage.BaseDir)
	if cfg.Storage.Catalog == "" {
		cfg.Storage.Catalog = filepath.Join(cfg.Storage.BaseDir, "hf_models.json")
	}
	cfg.Storage.Catalog = expandHome(cfg.Storage.Catalog)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HubOptions converts the hub section into client options.
func (c *Config) HubOptions() hub.Options {
	return hub.Options{
		BaseURL:   c.Hub.BaseURL,
		UserAgent: c.Hub.UserAgent,
		Timeout:   c.Hub.Timeout,
		Retries:   c.Hub.Retries,
	}
}

// expandEnv expands ${VAR} references in the file content.
func expandEnv(content string) string {
	return os.Expand(content, os.Getenv)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func validate(c *Config) error {
	if !strings.HasPrefix(c.Hub.BaseURL, "http://") && !strings.HasPrefix(c.Hub.BaseURL, "https://") {
		return fmt.Errorf("hub.baseURL must be an http(s) URL, got %q", c.Hub.BaseURL)
	}
	if c.Hub.Timeout <= 0 {
		return fmt.Errorf("hub.timeout must be greater than 0")
	}
	if c.Hub.Retries < 0 {
		return fmt.Errorf("hub.retries must not be negative")
	}
	if c.Discovery.QueryLimit <= 0 || c.Discovery.SearchLimit <= 0 {
		return fmt.Errorf("discovery limits must be greater than 0")
	}
	if _, err := discovery.CompilePatterns(c.Discovery.Exclude); err != nil {
		return fmt.Errorf("discovery.exclude: %w", err)
	}
	if c.Storage.BaseDir == "" {
		return fmt.Errorf("storage.baseDir must be specified")
	}
	return nil
}
