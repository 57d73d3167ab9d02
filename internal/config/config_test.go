package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "disabled mode",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode valid",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
		},
		{
			name: "mutual mode valid",
			tls: TLSConfig{
				Mode:             "mutual",
				CertFile:         "/path/to/cert.pem",
				KeyFile:          "/path/to/key.pem",
				CAFile:           "/path/to/ca.pem",
				ClientAuthPolicy: "require",
			},
		},
		{
			name:    "invalid mode",
			tls:     TLSConfig{Mode: "invalid"},
			wantErr: "invalid TLS mode: invalid",
		},
		{
			name: "server mode missing key",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
			},
			wantErr: "TLS certificate and key files are required",
		},
		{
			name: "mutual mode missing CA",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			wantErr: "CA certificate is required",
		},
		{
			name: "mutual mode invalid client auth policy",
			tls: TLSConfig{
				Mode:             "mutual",
				CertFile:         "/path/to/cert.pem",
				KeyFile:          "/path/to/key.pem",
				CAFile:           "/path/to/ca.pem",
				ClientAuthPolicy: "always",
			},
			wantErr: "invalid clientAuthPolicy",
		},
		{
			name: "invalid min version",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.1",
			},
			wantErr: "invalid TLS minVersion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Server: ServerConfig{TLS: tt.tls}}
			err := cfg.ValidateTLSConfig()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func validBaseConfig() Config {
	return Config{
		AI: AIConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
			Timeout:  10 * time.Second,
			APIKey:   "test-key",
		},
		Server: ServerConfig{
			Port: "8080",
			TLS:  TLSConfig{Mode: "disabled"},
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := validBaseConfig()
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing API key", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.AI.APIKey = ""
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "API key is required") {
			t.Fatalf("expected API key error, got %v", err)
		}
	})

	t.Run("vault enabled allows empty API key", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.AI.APIKey = ""
		cfg.Vault.Enabled = true
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.AI.Timeout = 0
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "timeout must be positive") {
			t.Fatalf("expected timeout error, got %v", err)
		}
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.Server.Port = ""
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "server port is required") {
			t.Fatalf("expected port error, got %v", err)
		}
	})

	t.Run("unsupported default format", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.App.DefaultFormat = "xml"
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "invalid default format") {
			t.Fatalf("expected format error, got %v", err)
		}
	})
}

func TestGetScoreConfigDefaults(t *testing.T) {
	globalTimeout := 10 * time.Second
	cfg := validBaseConfig()
	cfg.AI.MaxRetries = 3
	cfg.AI.Temperature = 0.2
	cfg.AI.UseSystemPrompts = true
	cfg.AI.Timeout = globalTimeout
	cfg.AI.CustomPrompts.SystemPrompt = "global system"

	score := cfg.GetScoreConfig()

	if score.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q", score.Provider, "gemini")
	}
	if score.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want global model fallback", score.Model)
	}
	if score.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want global fallback", score.APIKey)
	}
	if score.Timeout == nil || *score.Timeout != globalTimeout {
		t.Errorf("Timeout = %v, want %v", score.Timeout, globalTimeout)
	}
	if score.MaxRetries == nil || *score.MaxRetries != 3 {
		t.Errorf("MaxRetries = %v, want 3", score.MaxRetries)
	}
	if score.Temperature == nil || *score.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", score.Temperature)
	}
	if score.CustomPrompts.SystemPrompt != "global system" {
		t.Errorf("SystemPrompt = %q, want global fallback", score.CustomPrompts.SystemPrompt)
	}
}

func TestGetScoreConfigOverrides(t *testing.T) {
	opTimeout := 5 * time.Second
	opRetries := 1
	cfg := validBaseConfig()
	cfg.AI.Score = OperationAIConfig{
		Model:      "gemini-2.5-pro",
		Timeout:    &opTimeout,
		MaxRetries: &opRetries,
	}
	cfg.AI.Score.CustomPrompts.UserPrompt = "score prompt"

	score := cfg.GetScoreConfig()

	if score.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %q, want operation override", score.Model)
	}
	if score.Timeout == nil || *score.Timeout != opTimeout {
		t.Errorf("Timeout = %v, want operation override %v", score.Timeout, opTimeout)
	}
	if score.MaxRetries == nil || *score.MaxRetries != 1 {
		t.Errorf("MaxRetries = %v, want 1", score.MaxRetries)
	}
	if score.CustomPrompts.UserPrompt != "score prompt" {
		t.Errorf("UserPrompt = %q, want operation value", score.CustomPrompts.UserPrompt)
	}
}

func TestApplyServerAPIKeyFallbacks(t *testing.T) {
	t.Setenv("HIRESCORE_SERVER_APIKEYS", "key-a, key-b ,key-c")

	cfg := validBaseConfig()
	cfg.applyFallbacks()

	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Server.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
	}
	for i, k := range want {
		if cfg.Server.APIKeys[i] != k {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], k)
		}
	}
}

func TestApplyTLSDefaults(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.TLS.Mode = "mutual"
	cfg.applyFallbacks()

	if cfg.Server.TLS.ClientAuthPolicy != "require" {
		t.Errorf("ClientAuthPolicy = %q, want %q", cfg.Server.TLS.ClientAuthPolicy, "require")
	}
	if cfg.Server.TLS.MinVersion != "1.2" {
		t.Errorf("MinVersion = %q, want %q", cfg.Server.TLS.MinVersion, "1.2")
	}
}

func TestLoadPromptFiles(t *testing.T) {
	dir := t.TempDir()
	promptPath := filepath.Join(dir, "system.txt")
	if err := os.WriteFile(promptPath, []byte("  file system prompt \n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("loads and trims file content", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.AI.CustomPrompts.SystemPromptFile = promptPath
		if err := cfg.loadPromptFiles(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.AI.CustomPrompts.SystemPrompt != "file system prompt" {
			t.Errorf("SystemPrompt = %q, want trimmed file content", cfg.AI.CustomPrompts.SystemPrompt)
		}
	})

	t.Run("inline value wins over file", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.AI.CustomPrompts.SystemPrompt = "inline"
		cfg.AI.CustomPrompts.SystemPromptFile = promptPath
		if err := cfg.loadPromptFiles(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.AI.CustomPrompts.SystemPrompt != "inline" {
			t.Errorf("SystemPrompt = %q, want inline value preserved", cfg.AI.CustomPrompts.SystemPrompt)
		}
	})

	t.Run("empty file rejected", func(t *testing.T) {
		emptyPath := filepath.Join(dir, "empty.txt")
		if err := os.WriteFile(emptyPath, []byte("   \n"), 0o600); err != nil {
			t.Fatal(err)
		}
		cfg := validBaseConfig()
		cfg.AI.CustomPrompts.UserPromptFile = emptyPath
		err := cfg.loadPromptFiles()
		if err == nil || !strings.Contains(err.Error(), "is empty") {
			t.Fatalf("expected empty file error, got %v", err)
		}
	})

	t.Run("missing file rejected", func(t *testing.T) {
		cfg := validBaseConfig()
		cfg.AI.Score.CustomPrompts.SystemPromptFile = filepath.Join(dir, "missing.txt")
		if err := cfg.loadPromptFiles(); err == nil {
			t.Fatal("expected error for missing prompt file")
		}
	})
}
