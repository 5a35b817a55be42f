package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbukum/storefront/storage"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://shop.example.com/api")
	t.Setenv("STORAGE_PROVIDER", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.BaseURL != "https://shop.example.com/api" {
		t.Errorf("expected env base url, got %q", cfg.API.BaseURL)
	}
	if cfg.Storage.Provider != storage.ProviderMemory {
		t.Errorf("expected memory provider, got %q", cfg.Storage.Provider)
	}
	if cfg.API.Timeout != 5*time.Second || !cfg.API.RequestID {
		t.Errorf("unexpected api defaults %+v", cfg.API)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
environment: staging
api:
  base_url: http://api.internal:9000/api
  timeout: 2s
storage:
  provider: redis
  profile: ci
redis:
  addr: cache:6379
  ttl: 24h
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.Environment != "staging" || cfg.API.Timeout != 2*time.Second {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.TTL != 24*time.Hour || cfg.Storage.Profile != "ci" {
		t.Errorf("unexpected redis config %+v", cfg.Redis)
	}
}

func TestLoad_UnrelatedEnvNextToLeaf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api:\n  timeout: 2s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("API_TIMEOUT_MS", "900000")
	t.Setenv("STORAGE_PROVIDER_HINT", "x")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.Timeout != 2*time.Second {
		t.Errorf("expected 2s timeout, got %v", cfg.API.Timeout)
	}
	if cfg.Storage.Provider != storage.DefaultProvider {
		t.Errorf("expected default provider, got %q", cfg.Storage.Provider)
	}
}

func TestConfig_ValidateTelemetry(t *testing.T) {
	cfg := &Config{}
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.SampleRate = 2
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected sample rate error")
	}
}
