package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GEMINI_API_KEY", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.GeminiAPIKey != "" {
		t.Fatalf("expected gemini key empty by default, got %s", cfg.GeminiAPIKey)
	}
	if cfg.ProviderResponseTimeout != 10*time.Minute {
		t.Fatalf("expected default provider response timeout, got %s", cfg.ProviderResponseTimeout)
	}
	if cfg.NotificationMaxRounds != 2 {
		t.Fatalf("expected default max rounds, got %d", cfg.NotificationMaxRounds)
	}
	if cfg.ProactiveTickUrgent >= cfg.ProactiveTick {
		t.Fatalf("urgent tick should be shorter than normal tick")
	}
	if !cfg.UseMemoryQueue {
		t.Fatalf("expected memory queue enabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("MESSAGING_PROVIDER", "WhatsApp ")
	t.Setenv("PROVIDER_RESPONSE_TIMEOUT", "5m")
	t.Setenv("NOTIFICATION_BATCH_SIZE", "5")
	t.Setenv("SESSION_TIMEOUT", "45m")
	t.Setenv("SUPPORT_EMAIL", "ops@djobea.cm")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DatabaseURL)
	}
	if cfg.MessagingProvider != "whatsapp" {
		t.Fatalf("expected normalized messaging provider, got %s", cfg.MessagingProvider)
	}
	if cfg.ProviderResponseTimeout != 5*time.Minute {
		t.Fatalf("expected timeout override, got %s", cfg.ProviderResponseTimeout)
	}
	if cfg.NotificationBatchSize != 5 {
		t.Fatalf("expected batch size override, got %d", cfg.NotificationBatchSize)
	}
	if cfg.SessionTimeout != 45*time.Minute {
		t.Fatalf("expected session timeout override, got %s", cfg.SessionTimeout)
	}
	if cfg.SupportEmail != "ops@djobea.cm" {
		t.Fatalf("expected support email override, got %s", cfg.SupportEmail)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("PROACTIVE_TICK", "not-a-duration")
	cfg := Load()
	if cfg.ProactiveTick != 30*time.Second {
		t.Fatalf("expected fallback tick, got %s", cfg.ProactiveTick)
	}
}
