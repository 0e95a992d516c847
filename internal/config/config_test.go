package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("addr: %q", cfg.Addr)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Fatalf("fetch timeout: %v", cfg.FetchTimeout)
	}
	if cfg.StoreTTL != time.Hour {
		t.Fatalf("store ttl: %v", cfg.StoreTTL)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level: %q", cfg.LogLevel)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("FORMCLONE_ADDR", ":9090")
	t.Setenv("FORMCLONE_FETCH_TIMEOUT", "3s")
	t.Setenv("FORMCLONE_DEV", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("addr: %q", cfg.Addr)
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Fatalf("fetch timeout: %v", cfg.FetchTimeout)
	}
	if !cfg.Development {
		t.Fatalf("development flag not read")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("FORMCLONE_FETCH_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
