package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
api:
  bearer_token: test-token
  origin: https://example.com
  page_size: 50
sources:
  watermark:
    - key: REWARDS
      url: https://example.com/reward
  history:
    key: HISTORY
    url: https://example.com/game/action
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BearerToken != "test-token" {
		t.Errorf("API.BearerToken = %q, want %q", cfg.API.BearerToken, "test-token")
	}
	if cfg.API.Origin != "https://example.com" {
		t.Errorf("API.Origin = %q, want %q", cfg.API.Origin, "https://example.com")
	}
	if len(cfg.Sources.Watermark) != 1 || cfg.Sources.Watermark[0].Key != "REWARDS" {
		t.Errorf("Sources.Watermark = %+v, want one REWARDS source", cfg.Sources.Watermark)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_TOKEN_BEARER", "secret123")

	yaml := `
api:
  bearer_token: ${TEST_TOKEN_BEARER}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BearerToken != "secret123" {
		t.Errorf("API.BearerToken = %q, want %q", cfg.API.BearerToken, "secret123")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	yaml := `
api:
  bearer_token: test-token
`
	path := writeTempFile(t, yaml)

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.API.PageSize != DefaultPageSize {
		t.Errorf("API.PageSize = %d, want %d", cfg.API.PageSize, DefaultPageSize)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.API.MaxRetries != DefaultMaxRetries {
		t.Errorf("API.MaxRetries = %d, want %d", cfg.API.MaxRetries, DefaultMaxRetries)
	}
	if len(cfg.Sources.Watermark) != 3 {
		t.Errorf("Sources.Watermark has %d entries, want 3 defaults", len(cfg.Sources.Watermark))
	}
	if cfg.Sources.History.URL != DefaultHistoryURL {
		t.Errorf("Sources.History.URL = %q, want default", cfg.Sources.History.URL)
	}
	if cfg.Store.Dir != DefaultStoreDir {
		t.Errorf("Store.Dir = %q, want %q", cfg.Store.Dir, DefaultStoreDir)
	}
	if cfg.Report.OutputDir != DefaultOutputDir {
		t.Errorf("Report.OutputDir = %q, want %q", cfg.Report.OutputDir, DefaultOutputDir)
	}
}

func TestLoadAndValidate(t *testing.T) {
	yaml := `
api:
  bearer_token: test-token
`
	path := writeTempFile(t, yaml)

	if _, err := LoadAndValidate(path); err != nil {
		t.Fatalf("LoadAndValidate failed: %v", err)
	}
}

func TestValidateMissingToken(t *testing.T) {
	path := writeTempFile(t, "api:\n  origin: https://example.com\n")

	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate succeeded, want missing-token error")
	}
	if !strings.Contains(err.Error(), "bearer_token") {
		t.Errorf("error = %v, want mention of bearer_token", err)
	}
}

func TestValidateDuplicateSourceKey(t *testing.T) {
	yaml := `
api:
  bearer_token: test-token
sources:
  watermark:
    - key: REWARDS
      url: https://example.com/a
    - key: REWARDS
      url: https://example.com/b
`
	path := writeTempFile(t, yaml)

	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate succeeded, want duplicate-key error")
	}
}

func TestValidateBadIDFrom(t *testing.T) {
	yaml := `
api:
  bearer_token: test-token
sources:
  watermark:
    - key: HILO
      url: https://example.com/hilo
      id_from: timestamp
`
	path := writeTempFile(t, yaml)

	_, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate succeeded, want id_from error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load succeeded on missing file")
	}
}
