package config

import (
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Env != "dev" || cfg.Port != 8080 {
		t.Fatalf("unexpected env/port: %q %d", cfg.Env, cfg.Port)
	}
	if cfg.Persist.Backend != "file" || cfg.Persist.Key != "neural-pulse-storage" {
		t.Fatalf("unexpected persist defaults: %+v", cfg.Persist)
	}
	if cfg.Auth.PasswordHasher != "plaintext" {
		t.Fatalf("unexpected hasher default: %q", cfg.Auth.PasswordHasher)
	}
	if cfg.AccessTTL() != time.Hour {
		t.Fatalf("unexpected access ttl: %v", cfg.AccessTTL())
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected cors origins: %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.HTTP.MaxBodyBytes != 10<<20 {
		t.Fatalf("unexpected max body: %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.Articles.DeletePolicy != "owner" {
		t.Fatalf("unexpected delete policy: %q", cfg.Articles.DeletePolicy)
	}
	if len(cfg.HTTP.TrustedProxies) != 0 {
		t.Fatalf("no proxy should be trusted by default, got %v", cfg.HTTP.TrustedProxies)
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PERSIST_BACKEND", "sqlite")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOGIN_RATE_WINDOW_SECONDS", "5")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != 9090 || cfg.Persist.Backend != "sqlite" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.LoginRateWindow() != 5*time.Second {
		t.Fatalf("unexpected window: %v", cfg.LoginRateWindow())
	}
	if len(cfg.HTTP.TrustedProxies) != 2 || cfg.HTTP.TrustedProxies[0] != "10.0.0.0/8" {
		t.Fatalf("unexpected trusted proxies: %v", cfg.HTTP.TrustedProxies)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "unknown_backend", env: map[string]string{"PERSIST_BACKEND": "mongo"}, want: "PERSIST_BACKEND"},
		{name: "s3_without_bucket", env: map[string]string{"PERSIST_BACKEND": "s3"}, want: "S3_BUCKET"},
		{name: "default_secret_in_prod", env: map[string]string{"APP_ENV": "prod"}, want: "JWT_SECRET"},
		{name: "bad_port", env: map[string]string{"PORT": "eighty"}, want: "parse env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Parse()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("got err %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestDBURL(t *testing.T) {
	cfg := Config{DB: DBConfig{
		Host: "db", Port: "5433", User: "np", Password: "p@ss", Name: "cms", SSLMode: "require",
	}}

	want := "postgres://np:p%40ss@db:5433/cms?sslmode=require"
	if got := cfg.DBURL(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
