package config

import (
	"testing"
	"time"
)

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is empty")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses insecure placeholder")
	}

	t.Setenv("SECRET_KEY", "replace_with_at_least_32_random_characters")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses example placeholder")
	}

	t.Setenv("SECRET_KEY", "too-short-secret")
	if _, err := ResolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is too short")
	}

	valid := "0123456789abcdef0123456789abcdef"
	t.Setenv("SECRET_KEY", valid)

	secret, err := ResolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
}

func TestResolvePort(t *testing.T) {
	t.Setenv("PORT", "")
	port, err := ResolvePort()
	if err != nil {
		t.Fatalf("expected default port, got error: %v", err)
	}
	if port != "8080" {
		t.Fatalf("expected default port 8080, got %q", port)
	}

	t.Setenv("PORT", "9090")
	port, err = ResolvePort()
	if err != nil {
		t.Fatalf("expected valid port, got error: %v", err)
	}
	if port != "9090" {
		t.Fatalf("expected port 9090, got %q", port)
	}

	for _, raw := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", raw)
		if _, err := ResolvePort(); err == nil {
			t.Fatalf("expected invalid port %q to fail", raw)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("TZ", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected access ttl 15m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 720*time.Hour {
		t.Fatalf("expected refresh ttl 720h, got %s", cfg.RefreshTokenTTL)
	}
	if cfg.Location.String() != "Asia/Kolkata" {
		t.Fatalf("expected Asia/Kolkata location, got %s", cfg.Location)
	}
	if cfg.DBPath != "data/saheli.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.CORSAllowedOrigin != "" {
		t.Fatalf("expected empty cors origin, got %q", cfg.CORSAllowedOrigin)
	}
}

func TestLoadRejectsInvalidTokenTTL(t *testing.T) {
	t.Setenv("SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected invalid ACCESS_TOKEN_TTL to fail")
	}

	t.Setenv("ACCESS_TOKEN_TTL", "-5m")
	if _, err := Load(); err == nil {
		t.Fatal("expected negative ACCESS_TOKEN_TTL to fail")
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if location := LoadLocation("Mars/Olympus_Mons"); location != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", location)
	}
}
