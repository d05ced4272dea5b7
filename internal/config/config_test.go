package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	// clear env vars
	_ = os.Unsetenv("HOGAR_DB_DRIVER")
	_ = os.Unsetenv("HOGAR_LLM_URL")
	_ = os.Unsetenv("HOGAR_LLM_MODEL")
	_ = os.Unsetenv("HOGAR_HTTP_PORT")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.SQLitePath != "data/hogar.db" {
		t.Fatalf("unexpected default store config: %+v", cfg)
	}
	if cfg.LLMURL != "http://localhost:11434" || cfg.LLMModel != "llama3.2" {
		t.Fatalf("unexpected default llm config: %+v", cfg)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected default http port: %d", cfg.HTTPPort)
	}
	if cfg.GetHTTPAddr() != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.GetHTTPAddr())
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("HOGAR_LLM_MODEL", "test-model")
	defer func() { _ = os.Unsetenv("HOGAR_LLM_MODEL") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.LLMModel != "test-model" {
		t.Fatalf("llm model env override failed, got %s", cfg.LLMModel)
	}
}

func TestConfigLoad_PostgresRequiresDSN(t *testing.T) {
	_ = os.Setenv("HOGAR_DB_DRIVER", "postgres")
	_ = os.Unsetenv("HOGAR_POSTGRES_DSN")
	defer func() { _ = os.Unsetenv("HOGAR_DB_DRIVER") }()

	if _, err := New(); err == nil {
		t.Fatal("expected error for postgres driver without DSN")
	}
}

func TestConfigLoad_UnknownDriver(t *testing.T) {
	_ = os.Setenv("HOGAR_DB_DRIVER", "oracle")
	defer func() { _ = os.Unsetenv("HOGAR_DB_DRIVER") }()

	if _, err := New(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
