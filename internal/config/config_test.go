package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func requiredArgs() []string {
	return []string{
		"-endpoint", "https://rm.example:8051/api/framework/v1/consultaSQLServer/RealizaConsulta",
		"-username", "user",
		"-password", "secret",
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(requiredArgs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.QueryName != "SMP.0025" || cfg.QueryVersion != 0 || cfg.QueryScope != "S" {
		t.Errorf("unexpected query defaults %+v", cfg)
	}
	if cfg.CacheTTL != 5*time.Minute || cfg.RefreshInterval != 10*time.Second || cfg.Timeout != 120*time.Second {
		t.Errorf("unexpected timing defaults %+v", cfg)
	}
	if cfg.NoiseSubstring != "COLEGIO E CURSO MATRIZ EDUCACAO" {
		t.Errorf("unexpected noise substring %q", cfg.NoiseSubstring)
	}
	if !cfg.InsecureSkipVerify {
		t.Errorf("expected TLS verification to be skipped by default")
	}
	if cfg.PostgresDSN != "" {
		t.Errorf("expected diagnostics off by default")
	}
	if cfg.PageTitle != "Matrículas por Unidade — SMP.0025" {
		t.Errorf("unexpected page title %q", cfg.PageTitle)
	}
}

func TestParse_EnvVars(t *testing.T) {
	t.Setenv("ENROLLMENTS_ENDPOINT", "https://rm.example/RealizaConsulta")
	t.Setenv("ENROLLMENTS_USERNAME", "env-user")
	t.Setenv("ENROLLMENTS_PASSWORD", "env-pass")
	t.Setenv("ENROLLMENTS_CACHE_TTL", "1m")
	t.Setenv("ENROLLMENTS_QUERY_VERSION", "3")

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Username != "env-user" || cfg.CacheTTL != time.Minute || cfg.QueryVersion != 3 {
		t.Fatalf("env vars not applied: %+v", cfg)
	}
}

func TestParse_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ENROLLMENTS_REFRESH_INTERVAL", "30s")

	cfg, err := Parse(append(requiredArgs(), "-refresh-interval", "15s"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RefreshInterval != 15*time.Second {
		t.Fatalf("expected flag to win, got %v", cfg.RefreshInterval)
	}
}

func TestParse_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.conf")
	content := strings.Join([]string{
		"endpoint https://rm.example/RealizaConsulta",
		"username file-user",
		"password file-pass",
		"noise-substring ESCOLA MATRIZ",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Parse([]string{"-config", path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Username != "file-user" || cfg.NoiseSubstring != "ESCOLA MATRIZ" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
}

func TestParse_MissingRequired(t *testing.T) {
	_, err := Parse(nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"ENROLLMENTS_ENDPOINT", "ENROLLMENTS_USERNAME"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got %v", want, err)
		}
	}
}

func TestValidate(t *testing.T) {
	base, err := Parse(requiredArgs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad_scheme", func(c *Config) { c.Endpoint = "ftp://rm.example" }},
		{"no_scope", func(c *Config) { c.QueryScope = "" }},
		{"negative_version", func(c *Config) { c.QueryVersion = -1 }},
		{"zero_ttl", func(c *Config) { c.CacheTTL = 0 }},
		{"short_refresh", func(c *Config) { c.RefreshInterval = 100 * time.Millisecond }},
		{"zero_timeout", func(c *Config) { c.Timeout = 0 }},
		{"zero_burst", func(c *Config) { c.RequestRateBurst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
