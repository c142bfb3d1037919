package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" || cfg.IsProduction() {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.CRMAPI.BaseURL != "http://localhost:8000/api" {
		t.Errorf("CRMAPI.BaseURL = %q", cfg.CRMAPI.BaseURL)
	}
	if cfg.CRMAPI.Timeout != 0 {
		t.Errorf("CRMAPI.Timeout = %s, want 0", cfg.CRMAPI.Timeout)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Errorf("Session.TTL = %s, want 12h", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "crm_session" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Mongo.Database != "crm_portal" {
		t.Errorf("Mongo.Database = %q", cfg.Mongo.Database)
	}
	if cfg.Activity.Workers != 4 {
		t.Errorf("Activity.Workers = %d, want 4", cfg.Activity.Workers)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET":   "s3cret",
		"ENV":              "production",
		"CRM_API_BASE_URL": "https://crm.example.com/api",
		"CRM_API_TIMEOUT":  "5s",
		"SESSION_TTL":      "30m",
		"REDIS_DB":         "3",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() {
		t.Error("expected production env")
	}
	if cfg.CRMAPI.Timeout != 5*time.Second {
		t.Errorf("CRMAPI.Timeout = %s", cfg.CRMAPI.Timeout)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %s", cfg.Session.TTL)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d", cfg.Redis.DB)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatal("expected error when SESSION_SECRET is missing")
	}
}

func TestLoad_NonPositiveTTL(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_SECRET": "s3cret",
		"SESSION_TTL":    "0s",
	}))
	if err == nil {
		t.Fatal("expected error for zero SESSION_TTL")
	}
}
