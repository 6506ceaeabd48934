// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"

database:
  driver: "sqlite"
  dsn: "./test.db"

auth:
  secret: "a-32-byte-secret-for-testing!!!!"
  token_ttl: "45m"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if cfg.Auth.TokenTTL != 45*time.Minute {
		t.Errorf("TokenTTL = %v, want 45m", cfg.Auth.TokenTTL)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_NoServerSection(t *testing.T) {
	// The admin CLI loads the same file without serving HTTP, so a
	// config with only a database section must still validate.
	path := writeConfig(t, `
database:
  dsn: "./test.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "" {
		t.Errorf("HTTPAddr = %q, want empty", cfg.Server.HTTPAddr)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("LOREKEEP_TEST_SECRET", "expanded-secret-value")

	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  dsn: "./test.db"
auth:
  secret: "${LOREKEEP_TEST_SECRET}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.Secret != "expanded-secret-value" {
		t.Errorf("Secret = %q, want expanded value", cfg.Auth.Secret)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  dsn: "./test.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("default Format = %q, want text", cfg.Logging.Format)
	}
}

func TestLoad_MissingDSN(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail without database.dsn")
	}
	if !strings.Contains(err.Error(), "database.dsn") {
		t.Errorf("error = %v, want mention of database.dsn", err)
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  driver: "oracle"
  dsn: "whatever"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should reject unsupported drivers")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:8080"
database:
  dsn: "./test.db"
auth:
  token_ttl: "not-a-duration"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail on malformed token_ttl")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("Load() should fail on a missing file")
	}
}
