package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("expected default env development, got %s", cfg.Env)
	}
	if cfg.GeoIPTimeout != 3*time.Second {
		t.Errorf("expected default geoip timeout 3s, got %s", cfg.GeoIPTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("GEOIP_TIMEOUT", "5s")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tukang.design, https://studio.tukang.design")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.Port)
	}
	if cfg.GeoIPTimeout != 5*time.Second {
		t.Errorf("expected geoip timeout 5s, got %s", cfg.GeoIPTimeout)
	}
	if !cfg.RedisTLS {
		t.Error("expected redis TLS enabled")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://studio.tukang.design" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestGetEnvAsSliceSkipsEmpty(t *testing.T) {
	t.Setenv("NOTIFY_RECIPIENTS", " , studio@tukang.design ,")

	cfg := Load()
	if len(cfg.NotifyRecipients) != 1 || cfg.NotifyRecipients[0] != "studio@tukang.design" {
		t.Errorf("unexpected recipients: %v", cfg.NotifyRecipients)
	}
}
