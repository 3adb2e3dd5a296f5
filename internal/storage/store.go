package storage

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/dhikr/internal/model"
)

const (
	KeyState    = "dhikr_state"
	KeySettings = "dhikr_settings"
	KeyStats    = "dhikr_stats"
)

// Store persists the counter state, settings and statistics as JSON
// records. Loads report absence instead of failing and saves only log
// their errors: the in-memory session stays authoritative either way.
type Store struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

type StoreOption func(*Store)

func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(repo Repository, log zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{repo: repo, log: log.With().Str("component", "storage").Logger(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) SaveState(ctx context.Context, state model.State) {
	s.put(ctx, KeyState, state)
}

func (s *Store) LoadState(ctx context.Context) (model.State, bool) {
	var state model.State
	if !s.get(ctx, KeyState, &state) {
		return model.State{}, false
	}
	if state.DisplayMode == "" {
		state.DisplayMode = model.DisplayDynamic
	}
	if err := state.Validate(); err != nil {
		s.log.Warn().Err(err).Str("key", KeyState).Msg("discarding invalid state record")
		return model.State{}, false
	}
	return state, true
}

func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) {
	out := settings
	out.ReminderTimes = make([]float64, len(settings.ReminderTimes))
	for i, h := range settings.ReminderTimes {
		out.ReminderTimes[i] = model.RoundReminderTime(h)
	}
	s.put(ctx, KeySettings, out)
}

func (s *Store) LoadSettings(ctx context.Context) (model.Settings, bool) {
	var settings model.Settings
	if !s.get(ctx, KeySettings, &settings) {
		return model.Settings{}, false
	}
	if settings.ReminderTimes == nil {
		settings.ReminderTimes = []float64{}
	}
	if err := settings.Validate(); err != nil {
		s.log.Warn().Err(err).Str("key", KeySettings).Msg("discarding invalid settings record")
		return model.Settings{}, false
	}
	return settings, true
}

// statsRecord accepts fractional counts written by older clients.
type statsRecord struct {
	TotalDhikr  float64            `json:"totalDhikr"`
	DailyStats  map[string]float64 `json:"dailyStats"`
	LastUpdated string             `json:"lastUpdated"`
}

func (s *Store) SaveStats(ctx context.Context, stats model.Stats) {
	now := s.now()
	clean := model.Stats{
		TotalDhikr:  stats.TotalDhikr,
		DailyStats:  make(map[string]int, len(stats.DailyStats)),
		LastUpdated: stats.LastUpdated,
	}
	for day, count := range stats.DailyStats {
		clean.DailyStats[day] = count
	}
	clean.Prune(now)
	s.put(ctx, KeyStats, clean)
}

func (s *Store) LoadStats(ctx context.Context) (model.Stats, bool) {
	var rec statsRecord
	if !s.get(ctx, KeyStats, &rec) {
		return model.Stats{}, false
	}
	stats := model.Stats{
		TotalDhikr:  int(math.Round(rec.TotalDhikr)),
		DailyStats:  make(map[string]int, len(rec.DailyStats)),
		LastUpdated: rec.LastUpdated,
	}
	for day, count := range rec.DailyStats {
		stats.DailyStats[day] = int(math.Round(count))
	}
	if stats.LastUpdated == "" {
		stats.LastUpdated = model.DateKey(s.now())
	}
	return stats, true
}

// UpdateDailyStats adds delta to the lifetime total and to today's bucket.
func (s *Store) UpdateDailyStats(ctx context.Context, delta int) {
	now := s.now()
	stats, ok := s.LoadStats(ctx)
	if !ok {
		stats = model.NewStats(now)
	}
	stats.Add(now, delta)
	stats.Prune(now)
	s.SaveStats(ctx, stats)
}

// CompactStats prunes the stored statistics without changing counts.
func (s *Store) CompactStats(ctx context.Context) {
	if stats, ok := s.LoadStats(ctx); ok {
		s.SaveStats(ctx, stats)
	}
}

// ClearOldData erases every record except the settings, which are
// written back afterwards.
func (s *Store) ClearOldData(ctx context.Context) {
	settings, hasSettings := s.LoadSettings(ctx)
	keys, err := s.repo.Keys(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list keys for clear failed")
		return
	}
	for _, key := range keys {
		if key == KeySettings {
			continue
		}
		if err := s.repo.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			s.log.Error().Err(err).Str("key", key).Msg("delete record failed")
		}
	}
	if hasSettings {
		s.SaveSettings(ctx, settings)
	}
}

func (s *Store) put(ctx context.Context, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("encode record failed")
		return
	}
	if err := s.repo.Put(ctx, key, payload); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("save record failed")
	}
}

func (s *Store) get(ctx context.Context, key string, dst any) bool {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error().Err(err).Str("key", key).Msg("load record failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("malformed record")
		return false
	}
	return true
}
