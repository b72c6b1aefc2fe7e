package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

// Defaults applied when the config file omits a value.
const (
	DefaultProvider     = "mock"
	DefaultDatasetPath  = "data/prompt-stress-test-dataset.json"
	DefaultOutputPath   = "stress_test_results.csv"
	DefaultDelaySeconds = 1.0
	DefaultServerAddr   = ":8080"
	DefaultReportDir    = "."
)

type Config struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
	Run             RunConfig                 `yaml:"run"`
	Server          ServerConfig              `yaml:"server"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type RunConfig struct {
	Dataset      string  `yaml:"dataset,omitempty"`
	Output       string  `yaml:"output,omitempty"`
	DelaySeconds float64 `yaml:"delay_seconds,omitempty"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr,omitempty"`
	ReportDir string `yaml:"report_dir,omitempty"`
}

// Default returns a config with every built-in default applied and no
// environment overrides.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads the config file at path, falling back to built-in defaults when
// the default config file does not exist. Environment credentials always
// override the file.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	var cfg Config
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
		// Running without a config file is fine; env vars carry credentials.
	default:
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.DefaultProvider) == "" {
		cfg.DefaultProvider = DefaultProvider
	}
	if strings.TrimSpace(cfg.Run.Dataset) == "" {
		cfg.Run.Dataset = DefaultDatasetPath
	}
	if strings.TrimSpace(cfg.Run.Output) == "" {
		cfg.Run.Output = DefaultOutputPath
	}
	if cfg.Run.DelaySeconds <= 0 {
		cfg.Run.DelaySeconds = DefaultDelaySeconds
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if strings.TrimSpace(cfg.Server.ReportDir) == "" {
		cfg.Server.ReportDir = DefaultReportDir
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.Providers["claude"]
		p.APIKey = v
		cfg.Providers["claude"] = p
	} else if v := strings.TrimSpace(os.Getenv("ANTHROPIC_AUTH_TOKEN")); v != "" {
		p := cfg.Providers["claude"]
		p.APIKey = v
		cfg.Providers["claude"] = p
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.Providers["openai"]
		p.APIKey = v
		cfg.Providers["openai"] = p
	}
}

// Provider returns the configuration for the named provider, treating
// "anthropic" as an alias for "claude".
func (c *Config) Provider(name string) ProviderConfig {
	if c == nil || c.Providers == nil {
		return ProviderConfig{}
	}

	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := c.Providers[key]; ok {
		return p
	}
	if key == "anthropic" {
		return c.Providers["claude"]
	}
	if key == "claude" {
		return c.Providers["anthropic"]
	}
	return ProviderConfig{}
}
