// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearConfigEnv blanks every variable ParseFlags reads; t.Setenv restores them.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "IP_HASH_SALT", "ADMIN_KEY_SALT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("IP_HASH_SALT", "ip-salt")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://test" || cfg.DatabaseType != "postgres" {
		t.Errorf("unexpected database config: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.IPHashSalt != "ip-salt" || cfg.AdminKeySalt != "test-salt" {
		t.Errorf("unexpected salts: %q %q", cfg.IPHashSalt, cfg.AdminKeySalt)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := ParseFlags([]string{"-ip-salt", "s1", "-admin-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseURL != DefaultDatabaseURL || cfg.DatabaseType != DefaultDatabaseType {
		t.Errorf("unexpected database defaults: %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("IP_HASH_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-ip-salt", "cli-salt", "-admin-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.IPHashSalt != "cli-salt" {
		t.Errorf("CLI should override env: expected cli-salt, got %s", cfg.IPHashSalt)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearConfigEnv(t)
	// Keys absent from the environment so godotenv sets them
	for _, key := range []string{"IP_HASH_SALT", "ADMIN_KEY_SALT"} {
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		os.Unsetenv("IP_HASH_SALT")
		os.Unsetenv("ADMIN_KEY_SALT")
	})
	t.Setenv("PORT", "7000")

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=6000\nIP_HASH_SALT=file-ip\nADMIN_KEY_SALT=file-admin\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.IPHashSalt != "file-ip" || cfg.AdminKeySalt != "file-admin" {
		t.Errorf("expected salts from env file, got %q %q", cfg.IPHashSalt, cfg.AdminKeySalt)
	}
	// Existing environment beats the file
	if cfg.Port != 7000 {
		t.Errorf("expected port 7000 from environment, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{
			name:    "missing ip salt",
			args:    []string{"-admin-salt", "s"},
			wantErr: "IP_HASH_SALT",
		},
		{
			name:    "missing admin salt",
			args:    []string{"-ip-salt", "s"},
			wantErr: "ADMIN_KEY_SALT",
		},
		{
			name:    "invalid port env",
			env:     map[string]string{"PORT": "abc"},
			args:    []string{"-ip-salt", "s", "-admin-salt", "s"},
			wantErr: "PORT",
		},
		{
			name:    "port out of range",
			args:    []string{"-p", "70000", "-ip-salt", "s", "-admin-salt", "s"},
			wantErr: "out of range",
		},
		{
			name:    "unsupported database",
			args:    []string{"-t", "mysql", "-ip-salt", "s", "-admin-salt", "s"},
			wantErr: "unsupported database",
		},
		{
			name:    "bad log level",
			args:    []string{"-log-level", "loud", "-ip-salt", "s", "-admin-salt", "s"},
			wantErr: "log level",
		},
		{
			name:    "missing env file",
			args:    []string{"-env-file", "/nonexistent/.env"},
			wantErr: "env file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
