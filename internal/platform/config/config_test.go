package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"skillsetu/internal/platform/config"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.Load(config.Options{
		DataDir: dir,
		EnvFile: filepath.Join(dir, "missing.env"),
		Getenv:  envMap(nil),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != config.DefaultAPIBase {
		t.Fatalf("expected default api base, got %s", cfg.APIBase)
	}
	if cfg.RequestTimeout != config.DefaultRequestTimeout {
		t.Fatalf("expected default timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.DBPath != filepath.Join(dir, "skillsetu.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected warn log level, got %s", cfg.LogLevel)
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	yamlBody := "api_base: http://from-file:9000\nlog_level: info\nrequest_timeout: 20s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envFile := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envFile, []byte("SKILLSETU_API_BASE=http://from-dotenv:7000\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := config.Load(config.Options{DataDir: dir, EnvFile: envFile, Getenv: envMap(nil)})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != "http://from-dotenv:7000" {
		t.Fatalf("dotenv should beat file, got %s", cfg.APIBase)
	}
	if cfg.LogLevel != "info" || cfg.RequestTimeout != 20*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	cfg, err = config.Load(config.Options{
		DataDir: dir,
		EnvFile: envFile,
		Getenv:  envMap(map[string]string{config.EnvAPIBase: "http://from-env:6000/"}),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != "http://from-env:6000" {
		t.Fatalf("process env should beat dotenv and trailing slash trimmed, got %s", cfg.APIBase)
	}

	cfg, err = config.Load(config.Options{
		APIBase: "http://flag:1",
		DataDir: dir,
		EnvFile: envFile,
		Getenv:  envMap(map[string]string{config.EnvAPIBase: "http://from-env:6000"}),
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBase != "http://flag:1" {
		t.Fatalf("flag should win, got %s", cfg.APIBase)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	_, err := config.Load(config.Options{
		DataDir: dir,
		EnvFile: filepath.Join(dir, "none.env"),
		Getenv:  envMap(map[string]string{config.EnvRequestTimeout: "soon"}),
	})
	if err == nil {
		t.Fatalf("expected timeout parse error")
	}
}
