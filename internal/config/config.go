package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

type ServerConfig struct {
	Addr            string `yaml:"addr" env:"NEWSAPP_ADDR"`
	UpstreamURL     string `yaml:"upstream_url" env:"NEWS_API_URL"`
	UpstreamTimeout string `yaml:"upstream_timeout"`
	LogLevel        string `yaml:"log_level" env:"NEWSAPP_LOG_LEVEL"`
	// APIKey is never written to disk.
	APIKey string `yaml:"-" env:"NEWS_API_KEY"`
}

type Config struct {
	BackendURL  string       `yaml:"backend_url" env:"NEWS_BACKEND_URL"`
	DefaultZone string       `yaml:"default_zone"`
	Categories  []string     `yaml:"categories"`
	Theme       string       `yaml:"theme,omitempty"`
	Retention   string       `yaml:"retention"`
	Server      ServerConfig `yaml:"server"`
}

// DarkTheme reports whether the session should start dark. ok is false
// for "auto", leaving the terminal's own background detection in charge.
func (c *Config) DarkTheme() (dark bool, ok bool) {
	switch c.Theme {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// Zone returns the term browsed at startup.
func (c *Config) Zone() string {
	if strings.TrimSpace(c.DefaultZone) == "" {
		return "India"
	}
	return c.DefaultZone
}

func (c *Config) UpstreamTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.UpstreamTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

func (c *Config) ServerAddr() string {
	if c.Server.Addr == "" {
		return ":8080"
	}
	return c.Server.Addr
}

func (c *Config) RetentionDuration() time.Duration {
	if c.Retention == "" {
		return 30 * 24 * time.Hour
	}
	// Support "Nd" day syntax
	if len(c.Retention) > 1 && c.Retention[len(c.Retention)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(c.Retention, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	d, err := time.ParseDuration(c.Retention)
	if err != nil {
		return 30 * 24 * time.Hour
	}
	return d
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsapp", "config.yaml")
}

func QueryLogPath() string {
	return filepath.Join(xdg.DataHome, "newsapp", "queries.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "newsapp", "newsapp.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the YAML config at path (or the XDG default), then overlays
// environment variables. Secrets only ever come from the environment.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: the embedded defaults still apply.
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Decode over the defaults so omitted keys keep their default values.
	cfg := *defaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaults.Categories
	}
	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

// LoadEnvFiles loads .env files from the working directory and its parent.
// Variables already set in the process are overridden.
func LoadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

func validate(cfg *Config) error {
	if err := validateURL("backend_url", cfg.BackendURL); err != nil {
		return err
	}
	if err := validateURL("server.upstream_url", cfg.Server.UpstreamURL); err != nil {
		return err
	}
	switch cfg.Theme {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("unknown theme %q (valid: auto, dark, light)", cfg.Theme)
	}
	for i, c := range cfg.Categories {
		if strings.TrimSpace(c) == "" {
			return fmt.Errorf("category %d: name is required", i)
		}
	}
	return nil
}

// validateURL accepts an empty value: a missing URL only shows up later as
// a failed fetch.
func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: url scheme must be http or https, got %q", field, u.Scheme)
	}
	return nil
}
