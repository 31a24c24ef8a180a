package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NEWS_API_KEY", "NEWS_BACKEND_URL", "NEWS_API_URL", "NEWSAPP_ADDR", "NEWSAPP_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if len(cfg.Categories) != 14 {
		t.Errorf("expected 14 default categories, got %d", len(cfg.Categories))
	}
	if cfg.Zone() != "India" {
		t.Errorf("expected default zone India, got %q", cfg.Zone())
	}
	if cfg.BackendURL == "" {
		t.Error("expected backend_url to be set")
	}
	if cfg.Server.APIKey != "" {
		t.Error("embedded config must not carry an API key")
	}
}

func TestZoneFallback(t *testing.T) {
	cfg := &Config{DefaultZone: "  "}
	if got := cfg.Zone(); got != "India" {
		t.Errorf("Zone() = %q, want India", got)
	}
	cfg.DefaultZone = "technology"
	if got := cfg.Zone(); got != "technology" {
		t.Errorf("Zone() = %q, want technology", got)
	}
}

func TestUpstreamTimeout(t *testing.T) {
	cfg := &Config{Server: ServerConfig{UpstreamTimeout: "3s"}}
	if d := cfg.UpstreamTimeout(); d != 3*time.Second {
		t.Errorf("expected 3s, got %v", d)
	}

	cfg.Server.UpstreamTimeout = "invalid"
	if d := cfg.UpstreamTimeout(); d != 15*time.Second {
		t.Errorf("expected 15s default for invalid timeout, got %v", d)
	}
}

func TestRetentionDuration(t *testing.T) {
	tests := []struct {
		input    string
		wantDays int
	}{
		{"90d", 90},
		{"7d", 7},
		{"720h", 30},
		{"", 30},        // default
		{"invalid", 30}, // fallback to default
	}
	for _, tt := range tests {
		cfg := &Config{Retention: tt.input}
		got := cfg.RetentionDuration()
		wantHours := float64(tt.wantDays * 24)
		if got.Hours() != wantHours {
			t.Errorf("RetentionDuration(%q) = %v, want %dd", tt.input, got, tt.wantDays)
		}
	}
}

func TestDarkTheme(t *testing.T) {
	tests := []struct {
		theme    string
		wantDark bool
		wantOK   bool
	}{
		{"dark", true, true},
		{"light", false, true},
		{"auto", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		cfg := &Config{Theme: tt.theme}
		dark, ok := cfg.DarkTheme()
		if dark != tt.wantDark || ok != tt.wantOK {
			t.Errorf("DarkTheme(%q) = (%v, %v), want (%v, %v)", tt.theme, dark, ok, tt.wantDark, tt.wantOK)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `default_zone: Sports
theme: dark
server:
  addr: ":9090"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Zone() != "Sports" {
		t.Errorf("expected zone Sports, got %s", cfg.Zone())
	}
	if cfg.ServerAddr() != ":9090" {
		t.Errorf("expected addr :9090, got %s", cfg.ServerAddr())
	}
	// Omitted keys keep their defaults
	if len(cfg.Categories) != 14 {
		t.Errorf("expected default categories, got %d", len(cfg.Categories))
	}
	if cfg.Server.UpstreamURL == "" {
		t.Error("expected default upstream_url")
	}
}

func TestLoadNonexistentFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Categories) == 0 {
		t.Error("expected default categories when config doesn't exist")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEWS_API_KEY", "k-123")
	t.Setenv("NEWS_BACKEND_URL", "https://proxy.example.com/api/news")
	t.Setenv("NEWSAPP_ADDR", ":7000")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.APIKey != "k-123" {
		t.Errorf("expected api key from env, got %q", cfg.Server.APIKey)
	}
	if cfg.BackendURL != "https://proxy.example.com/api/news" {
		t.Errorf("expected backend url from env, got %q", cfg.BackendURL)
	}
	if cfg.ServerAddr() != ":7000" {
		t.Errorf("expected addr from env, got %q", cfg.ServerAddr())
	}
}

func TestMissingKeyIsNotAnError(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.Server.APIKey)
	}
}

func TestValidateInvalidBackendScheme(t *testing.T) {
	cfg := &Config{BackendURL: "file:///etc/passwd"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for file:// backend url")
	}
}

func TestValidateInvalidUpstreamScheme(t *testing.T) {
	cfg := &Config{Server: ServerConfig{UpstreamURL: "ftp://news.example.com"}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for ftp:// upstream url")
	}
}

func TestValidateUnknownTheme(t *testing.T) {
	cfg := &Config{Theme: "solarized"}
	if err := validate(cfg); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestValidateBlankCategory(t *testing.T) {
	cfg := &Config{Categories: []string{"India", " "}}
	if err := validate(cfg); err == nil {
		t.Error("expected error for blank category")
	}
}

func TestValidateAcceptsEmptyURLs(t *testing.T) {
	if err := validate(&Config{}); err != nil {
		t.Errorf("unexpected error for empty config: %v", err)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NEWS_API_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	LoadEnvFiles()
	if got := os.Getenv("NEWS_API_KEY"); got != "from-dotenv" {
		t.Errorf("expected NEWS_API_KEY from .env, got %q", got)
	}
}
