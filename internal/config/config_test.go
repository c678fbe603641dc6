package config

import (
	"strings"
	"testing"
	"time"
)

// validTestConfig returns a minimal configuration that passes Validate.
func validTestConfig() Config {
	return Config{
		Engine: EngineConfig{KeywordPolicy: "plain"},
		AI: AIConfig{
			RewriteStrategy: "rule",
			Timeout:         60 * time.Second,
		},
		Server: ServerConfig{
			Port:          "8080",
			MaxUploadSize: 10 * 1024 * 1024,
			TLS:           TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid baseline",
			mutate: func(c *Config) {},
		},
		{
			name:   "empty keyword policy defaults to plain",
			mutate: func(c *Config) { c.Engine.KeywordPolicy = "" },
		},
		{
			name:   "weighted keyword policy",
			mutate: func(c *Config) { c.Engine.KeywordPolicy = "weighted" },
		},
		{
			name:    "invalid keyword policy",
			mutate:  func(c *Config) { c.Engine.KeywordPolicy = "fuzzy" },
			wantErr: "invalid keyword policy",
		},
		{
			name:   "empty rewrite strategy defaults to rule",
			mutate: func(c *Config) { c.AI.RewriteStrategy = "" },
		},
		{
			name: "generative strategy with key",
			mutate: func(c *Config) {
				c.AI.RewriteStrategy = "generative"
				c.AI.APIKey = "test-key"
			},
		},
		{
			name:    "generative strategy without key",
			mutate:  func(c *Config) { c.AI.RewriteStrategy = "generative" },
			wantErr: "AI API key is required",
		},
		{
			name: "generative strategy with zero timeout",
			mutate: func(c *Config) {
				c.AI.RewriteStrategy = "generative"
				c.AI.APIKey = "test-key"
				c.AI.Timeout = 0
			},
			wantErr: "AI timeout must be positive",
		},
		{
			name:    "invalid rewrite strategy",
			mutate:  func(c *Config) { c.AI.RewriteStrategy = "hybrid" },
			wantErr: "invalid rewrite strategy",
		},
		{
			name:    "missing server port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server port is required",
		},
		{
			name:    "non-positive upload size",
			mutate:  func(c *Config) { c.Server.MaxUploadSize = 0 },
			wantErr: "max upload size must be positive",
		},
		{
			name:    "default format not in supported formats",
			mutate:  func(c *Config) { c.App.DefaultFormat = "xml" },
			wantErr: "invalid default format",
		},
		{
			name:    "invalid TLS mode surfaces",
			mutate:  func(c *Config) { c.Server.TLS.Mode = "optional" },
			wantErr: "TLS configuration error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}

	if cfg.Engine.KeywordPolicy != "plain" {
		t.Errorf("KeywordPolicy = %q, want %q", cfg.Engine.KeywordPolicy, "plain")
	}
	if cfg.AI.RewriteStrategy != "rule" {
		t.Errorf("RewriteStrategy = %q, want %q", cfg.AI.RewriteStrategy, "rule")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Server.MaxUploadSize != 10*1024*1024 {
		t.Errorf("MaxUploadSize = %d, want %d", cfg.Server.MaxUploadSize, 10*1024*1024)
	}
	if cfg.Server.TLS.Mode != "disabled" {
		t.Errorf("TLS mode = %q, want %q", cfg.Server.TLS.Mode, "disabled")
	}
	if cfg.App.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want %q", cfg.App.DefaultFormat, "json")
	}
	if cfg.Vault.Enabled {
		t.Error("Vault.Enabled = true, want false by default")
	}
	if cfg.Observability.ServiceInstance == "" {
		t.Error("ServiceInstance not generated")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("ATSPRO_ENGINE_KEYWORDPOLICY", "weighted")
	t.Setenv("ATSPRO_SERVER_PORT", "9999")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}

	if cfg.Engine.KeywordPolicy != "weighted" {
		t.Errorf("KeywordPolicy = %q, want %q", cfg.Engine.KeywordPolicy, "weighted")
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "9999")
	}
}

func TestLoadConfigAppliesVaultSecrets(t *testing.T) {
	// Enabling vault without a token must fail the load; this pins the
	// vault step into the loading sequence
	t.Setenv("ATSPRO_VAULT_ENABLED", "true")

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "vault") {
		t.Errorf("LoadConfig() = %v, want vault secret application error", err)
	}
}

func TestTaxonomyConfigOverrides(t *testing.T) {
	cfg := TaxonomyConfig{
		StopWords:  []string{"the"},
		HardSkills: []string{"go"},
	}

	overrides := cfg.Overrides()
	if len(overrides.StopWords) != 1 || overrides.StopWords[0] != "the" {
		t.Errorf("StopWords = %v", overrides.StopWords)
	}
	if len(overrides.HardSkills) != 1 || overrides.HardSkills[0] != "go" {
		t.Errorf("HardSkills = %v", overrides.HardSkills)
	}
	if overrides.ActionVerbs != nil && len(overrides.ActionVerbs) != 0 {
		t.Errorf("ActionVerbs = %v, want empty", overrides.ActionVerbs)
	}
}
