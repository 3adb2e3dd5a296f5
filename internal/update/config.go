package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/dhikr/internal/prayer"
)

type RuntimeConfig struct {
	DBPath               string
	LogFile              string
	LogLevel             string
	Latitude             float64
	Longitude            float64
	HasLocation          bool
	LocateTimeout        time.Duration
	DesktopNotifications bool
	SchedulerBuffer      int
	PrayerLead           time.Duration
	Locale               string
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := ".dhikr"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".dhikr")
	}
	return RuntimeConfig{
		DBPath:               filepath.Join(dir, "dhikr.db"),
		LogFile:              filepath.Join(dir, "dhikr.log"),
		LogLevel:             "info",
		LocateTimeout:        5 * time.Second,
		DesktopNotifications: true,
		SchedulerBuffer:      64,
		PrayerLead:           10 * time.Minute,
		Locale:               "ar",
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("DHIKR_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("DHIKR_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("DHIKR_LOG_LEVEL")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	lat, latOK := getEnvFloat("DHIKR_LATITUDE")
	lng, lngOK := getEnvFloat("DHIKR_LONGITUDE")
	if latOK && lngOK && (prayer.Coordinates{Latitude: lat, Longitude: lng}).Valid() {
		cfg.Latitude, cfg.Longitude, cfg.HasLocation = lat, lng, true
	}
	if v, ok := getEnvInt("DHIKR_LOCATE_TIMEOUT_MS"); ok && v > 0 {
		cfg.LocateTimeout = time.Duration(v) * time.Millisecond
	}
	if v, ok := getEnvBool("DHIKR_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("DHIKR_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt("DHIKR_PRAYER_LEAD_MINUTES"); ok && v >= 0 {
		cfg.PrayerLead = time.Duration(v) * time.Minute
	}
	if v := strings.TrimSpace(os.Getenv("DHIKR_LOCALE")); v != "" {
		cfg.Locale = v
	}
	return cfg
}

// Locator returns the configured position, or a locator that always
// fails so callers fall back to Mecca.
func (c RuntimeConfig) Locator() prayer.Locator {
	if !c.HasLocation {
		return prayer.StaticLocator{}
	}
	coords := prayer.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
	return prayer.StaticLocator{Coords: &coords}
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
