package update

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/dhikr/internal/prayer"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.SchedulerBuffer != 64 || cfg.PrayerLead != 10*time.Minute {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.DBPath, "dhikr.db") || !strings.HasSuffix(cfg.LogFile, "dhikr.log") {
		t.Fatalf("unexpected file defaults: %+v", cfg)
	}
	if cfg.HasLocation {
		t.Fatal("expected no configured location by default")
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("DHIKR_DB_PATH", "data/custom.db")
	t.Setenv("DHIKR_LOG_LEVEL", "DEBUG")
	t.Setenv("DHIKR_LATITUDE", "30.0444")
	t.Setenv("DHIKR_LONGITUDE", "31.2357")
	t.Setenv("DHIKR_LOCATE_TIMEOUT_MS", "250")
	t.Setenv("DHIKR_DESKTOP_NOTIFICATIONS", "off")
	t.Setenv("DHIKR_SCHEDULER_BUFFER", "128")
	t.Setenv("DHIKR_PRAYER_LEAD_MINUTES", "15")
	t.Setenv("DHIKR_LOCALE", "en")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "data/custom.db" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if !cfg.HasLocation || cfg.Latitude != 30.0444 || cfg.Longitude != 31.2357 {
		t.Fatalf("unexpected location: %+v", cfg)
	}
	if cfg.LocateTimeout != 250*time.Millisecond || cfg.PrayerLead != 15*time.Minute {
		t.Fatalf("unexpected durations: %+v", cfg)
	}
	if cfg.DesktopNotifications || cfg.SchedulerBuffer != 128 || cfg.Locale != "en" {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}

	coords, err := cfg.Locator().Locate(context.Background())
	if err != nil || coords.Latitude != 30.0444 {
		t.Fatalf("unexpected locator result: %+v %v", coords, err)
	}
}

func TestRuntimeConfigIgnoresInvalidLocation(t *testing.T) {
	t.Setenv("DHIKR_LATITUDE", "123")
	t.Setenv("DHIKR_LONGITUDE", "31")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.HasLocation {
		t.Fatalf("expected out-of-range latitude to be ignored: %+v", cfg)
	}
	got := prayer.ResolveCoordinates(testContext(t), cfg.Locator(), 50*time.Millisecond)
	if got != prayer.Mecca {
		t.Fatalf("expected Mecca fallback, got %+v", got)
	}
}
