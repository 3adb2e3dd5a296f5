package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/dhikr/internal/model"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func setupStore(t *testing.T) (*Store, *SQLiteRepository) {
	t.Helper()
	repo := setupRepo(t)
	store := NewStore(repo, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
	return store, repo
}

type failingRepo struct {
	Repository
}

func (failingRepo) Put(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestStateRoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, ok := store.LoadState(ctx); ok {
		t.Fatal("expected absent state on empty store")
	}
	want := model.State{Count: 5, CurrentType: model.PhraseTahmid, TotalCount: 38, DisplayMode: model.DisplayList}
	store.SaveState(ctx, want)
	got, ok := store.LoadState(ctx)
	if !ok || got != want {
		t.Fatalf("expected %+v, got %+v (ok=%v)", want, got, ok)
	}
}

func TestLoadStateRejectsMalformedRecords(t *testing.T) {
	store, repo := setupStore(t)
	ctx := context.Background()

	cases := []string{
		`{not json`,
		`{"count":1,"currentType":"tahlil","totalCount":1}`,
		`{"count":40,"currentType":"tasbih","totalCount":40}`,
	}
	for _, raw := range cases {
		if err := repo.Put(ctx, KeyState, []byte(raw)); err != nil {
			t.Fatalf("put: %v", err)
		}
		if _, ok := store.LoadState(ctx); ok {
			t.Fatalf("expected absent for %s", raw)
		}
	}

	if err := repo.Put(ctx, KeyState, []byte(`{"count":2,"currentType":"takbir","totalCount":68}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok := store.LoadState(ctx)
	if !ok || got.DisplayMode != model.DisplayDynamic {
		t.Fatalf("expected legacy record to default display mode, got %+v ok=%v", got, ok)
	}
}

func TestSettingsRoundTripRoundsReminderTimes(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	in := model.Settings{
		IsDark:               true,
		NotificationsEnabled: true,
		PrayerNotifications:  false,
		ReminderTimes:        []float64{9, 14.5, 17.333333},
	}
	store.SaveSettings(ctx, in)
	got, ok := store.LoadSettings(ctx)
	if !ok {
		t.Fatal("expected settings to load")
	}
	if got.IsDark != in.IsDark || got.NotificationsEnabled != in.NotificationsEnabled || got.PrayerNotifications != in.PrayerNotifications {
		t.Fatalf("flags differ: %+v", got)
	}
	want := []float64{9, 14.5, 17.33}
	if len(got.ReminderTimes) != len(want) {
		t.Fatalf("unexpected reminder times: %v", got.ReminderTimes)
	}
	for i := range want {
		if got.ReminderTimes[i] != want[i] {
			t.Fatalf("reminder %d: got %v want %v", i, got.ReminderTimes[i], want[i])
		}
	}
	if in.ReminderTimes[2] != 17.333333 {
		t.Fatal("save must not mutate the caller's settings")
	}
}

func TestUpdateDailyStatsTwiceSameDay(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	store.SaveStats(ctx, model.Stats{
		TotalDhikr:  10,
		DailyStats:  map[string]int{"2026-01-02": 10},
		LastUpdated: "2026-01-02",
	})
	store.UpdateDailyStats(ctx, 1)
	store.UpdateDailyStats(ctx, 1)

	stats, ok := store.LoadStats(ctx)
	if !ok {
		t.Fatal("expected stats to load")
	}
	if stats.TotalDhikr != 12 {
		t.Fatalf("expected lifetime total 12, got %d", stats.TotalDhikr)
	}
	if stats.DailyStats["2026-03-15"] != 2 {
		t.Fatalf("expected today's bucket 2, got %+v", stats.DailyStats)
	}
	if _, ok := stats.DailyStats["2026-01-02"]; ok {
		t.Fatalf("expected stale day to be pruned: %+v", stats.DailyStats)
	}
	if stats.LastUpdated != "2026-03-15" {
		t.Fatalf("unexpected last updated: %q", stats.LastUpdated)
	}
}

func TestLoadStatsRoundsFractionalCounts(t *testing.T) {
	store, repo := setupStore(t)
	ctx := context.Background()

	raw := `{"totalDhikr":10.6,"dailyStats":{"2026-03-14":2.4,"2026-03-15":"x"}}`
	if err := repo.Put(ctx, KeyStats, []byte(raw)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := store.LoadStats(ctx); ok {
		t.Fatal("expected non-numeric count to make the record absent")
	}

	raw = `{"totalDhikr":10.6,"dailyStats":{"2026-03-14":2.4}}`
	if err := repo.Put(ctx, KeyStats, []byte(raw)); err != nil {
		t.Fatalf("put: %v", err)
	}
	stats, ok := store.LoadStats(ctx)
	if !ok {
		t.Fatal("expected stats to load")
	}
	if stats.TotalDhikr != 11 || stats.DailyStats["2026-03-14"] != 2 {
		t.Fatalf("unexpected rounding: %+v", stats)
	}
	if stats.LastUpdated != "2026-03-15" {
		t.Fatalf("expected missing lastUpdated to default to today, got %q", stats.LastUpdated)
	}
}

func TestClearOldDataKeepsSettings(t *testing.T) {
	store, repo := setupStore(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.IsDark = true
	store.SaveSettings(ctx, settings)
	store.SaveState(ctx, model.NewState())
	store.UpdateDailyStats(ctx, 3)
	if err := repo.Put(ctx, "legacy_key", []byte("{}")); err != nil {
		t.Fatalf("put: %v", err)
	}

	store.ClearOldData(ctx)

	keys, err := repo.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != KeySettings {
		t.Fatalf("expected only settings to remain, got %v", keys)
	}
	got, ok := store.LoadSettings(ctx)
	if !ok || !got.IsDark {
		t.Fatalf("expected settings preserved, got %+v ok=%v", got, ok)
	}
}

func TestSaveFailuresAreSwallowed(t *testing.T) {
	_, repo := setupStore(t)
	store := NewStore(failingRepo{Repository: repo}, zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()

	store.SaveState(ctx, model.NewState())
	store.UpdateDailyStats(ctx, 1)
	store.SaveSettings(ctx, model.DefaultSettings())

	if _, ok := store.LoadState(ctx); ok {
		t.Fatal("expected nothing persisted through failing repo")
	}
	if _, ok := store.LoadStats(ctx); ok {
		t.Fatal("expected no stats persisted through failing repo")
	}
}
