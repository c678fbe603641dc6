package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"atspro/internal/errors"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{"int64 value", int64(42), 42, false},
		{"float64 value", float64(42.0), 42, false},
		{"string value", "42", 42, false},
		{"invalid string value", "not-a-number", 0, true},
		{"unsupported type", []string{"42"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.input, "secret/data/test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVersionValue(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseVersionValue(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveVaultToken(t *testing.T) {
	logger := testLogger(t)

	t.Run("token from config", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "direct-token"}, logger)
		if err != nil {
			t.Fatalf("resolveVaultToken() = %v", err)
		}
		if token != "direct-token" {
			t.Errorf("token = %q, want %q", token, "direct-token")
		}
	})

	t.Run("token from file is trimmed", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "vault-token")
		if err := os.WriteFile(tokenFile, []byte("  file-token  \n"), 0600); err != nil {
			t.Fatalf("failed to write token file: %v", err)
		}

		token, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, logger)
		if err != nil {
			t.Fatalf("resolveVaultToken() = %v", err)
		}
		if token != "file-token" {
			t.Errorf("token = %q, want %q", token, "file-token")
		}
	})

	t.Run("missing token file", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{TokenFile: "/nonexistent/token/file"}, logger)
		if err == nil || !strings.Contains(err.Error(), "failed to read vault token file") {
			t.Errorf("resolveVaultToken() = %v, want token file read error", err)
		}
	})

	t.Run("no token provided", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{}, logger)
		if err == nil || !strings.Contains(err.Error(), "vault token is required") {
			t.Errorf("resolveVaultToken() = %v, want required-token error", err)
		}
	})

	t.Run("empty token from file", func(t *testing.T) {
		tokenFile := filepath.Join(t.TempDir(), "empty-token")
		if err := os.WriteFile(tokenFile, []byte("   \n  \n"), 0600); err != nil {
			t.Fatalf("failed to write token file: %v", err)
		}

		_, err := resolveVaultToken(VaultConfig{TokenFile: tokenFile}, logger)
		if err == nil || !strings.Contains(err.Error(), "vault token is required") {
			t.Errorf("resolveVaultToken() = %v, want required-token error", err)
		}
	})
}

func TestLoadSingleCertificate(t *testing.T) {
	logger := testLogger(t)

	tests := []struct {
		name      string
		data      map[string]any
		key       string
		wantCount int
		wantValue string
	}{
		{
			name:      "valid certificate content",
			data:      map[string]any{"cert": "-----BEGIN CERTIFICATE-----\ntest\n-----END CERTIFICATE-----"},
			key:       "cert",
			wantCount: 1,
			wantValue: "-----BEGIN CERTIFICATE-----\ntest\n-----END CERTIFICATE-----",
		},
		{
			name:      "empty certificate content",
			data:      map[string]any{"cert": ""},
			key:       "cert",
			wantCount: 0,
		},
		{
			name:      "missing certificate key",
			data:      map[string]any{"other": "value"},
			key:       "cert",
			wantCount: 0,
		},
		{
			name:      "non-string certificate value",
			data:      map[string]any{"cert": 123},
			key:       "cert",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target string
			count := loadSingleCertificate(&VaultSecret{Data: tt.data}, tt.key, &target, "TLS certificate content", logger)
			if count != tt.wantCount {
				t.Errorf("loadSingleCertificate() = %d, want %d", count, tt.wantCount)
			}
			if target != tt.wantValue {
				t.Errorf("target = %q, want %q", target, tt.wantValue)
			}
		})
	}
}

func TestLoadTLSCertificateContent(t *testing.T) {
	logger := testLogger(t)

	t.Run("all fields present", func(t *testing.T) {
		config := &Config{}
		tlsData := &VaultSecret{Data: map[string]any{
			"cert": "cert-content",
			"key":  "key-content",
			"ca":   "ca-content",
		}}

		if count := loadTLSCertificateContent(config, tlsData, logger); count != 3 {
			t.Errorf("certificate count = %d, want 3", count)
		}
		if config.Server.TLS.CertContent != "cert-content" ||
			config.Server.TLS.KeyContent != "key-content" ||
			config.Server.TLS.CAContent != "ca-content" {
			t.Errorf("TLS content = %+v", config.Server.TLS)
		}
	})

	t.Run("partial fields", func(t *testing.T) {
		config := &Config{}
		tlsData := &VaultSecret{Data: map[string]any{"cert": "cert-content"}}

		if count := loadTLSCertificateContent(config, tlsData, logger); count != 1 {
			t.Errorf("certificate count = %d, want 1", count)
		}
		if config.Server.TLS.CertContent != "cert-content" {
			t.Errorf("CertContent = %q", config.Server.TLS.CertContent)
		}
		if config.Server.TLS.KeyContent != "" || config.Server.TLS.CAContent != "" {
			t.Errorf("unexpected content loaded: %+v", config.Server.TLS)
		}
	})
}

func TestValidateTLSDeprecatedFields(t *testing.T) {
	logger := testLogger(t)

	tests := []struct {
		name      string
		data      map[string]any
		wantField string
	}{
		{
			name: "no deprecated fields",
			data: map[string]any{"cert": "c", "key": "k", "ca": "a"},
		},
		{
			name:      "deprecated cert_file field",
			data:      map[string]any{"cert_file": "/path/to/cert"},
			wantField: "cert_file",
		},
		{
			name:      "deprecated key_file field",
			data:      map[string]any{"key_file": "/path/to/key"},
			wantField: "key_file",
		},
		{
			name:      "deprecated ca_file field",
			data:      map[string]any{"ca_file": "/path/to/ca"},
			wantField: "ca_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTLSDeprecatedFields(&VaultSecret{Data: tt.data}, logger)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("validateTLSDeprecatedFields() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("validateTLSDeprecatedFields() = %v, want error naming %q", err, tt.wantField)
			}
		})
	}
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{Vault: VaultConfig{Enabled: false}}

	if err := ApplyVaultSecrets(config, testLogger(t)); err != nil {
		t.Errorf("ApplyVaultSecrets() = %v, want nil when vault is disabled", err)
	}
}

func TestApplyVaultSecretsRequiresToken(t *testing.T) {
	config := &Config{Vault: VaultConfig{Enabled: true}}

	err := ApplyVaultSecrets(config, testLogger(t))
	if err == nil || !strings.Contains(err.Error(), "vault token is required") {
		t.Errorf("ApplyVaultSecrets() = %v, want required-token error", err)
	}
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, testLogger(t))
	if err != nil {
		t.Fatalf("NewVaultClient() = %v", err)
	}
	if client != nil {
		t.Error("NewVaultClient() returned a client for disabled vault")
	}
}

func TestGetSecretV2NilClient(t *testing.T) {
	var client *VaultClient
	if _, err := client.GetSecretV2("secret/data/test"); err == nil {
		t.Error("GetSecretV2() on nil client = nil, want error")
	}
}
