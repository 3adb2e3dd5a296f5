package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/dhikr/internal/notify"
	"github.com/sandeepkv93/dhikr/internal/prayer"
	"github.com/sandeepkv93/dhikr/internal/scheduler"
	"github.com/sandeepkv93/dhikr/internal/storage"
	"github.com/sandeepkv93/dhikr/internal/update"
)

type rootOptions struct {
	dbPath  string
	logFile string
}

// app holds the wired components shared by every subcommand.
type app struct {
	cfg      update.RuntimeConfig
	log      zerolog.Logger
	logOut   io.Closer
	repo     *storage.SQLiteRepository
	store    *storage.Store
	prayers  *prayer.Provider
	engine   *scheduler.Engine
	feed     *notify.Feed
	notifier *notify.Scheduler
}

func loadConfig(opts rootOptions) update.RuntimeConfig {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	return cfg
}

func openApp(ctx context.Context, opts rootOptions) (*app, error) {
	cfg := loadConfig(opts)
	log, closer, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	store := storage.NewStore(repo, log.With().Str("component", "store").Logger())
	store.CompactStats(ctx)

	a := &app{
		cfg:     cfg,
		log:     log,
		logOut:  closer,
		repo:    repo,
		store:   store,
		prayers: prayer.NewProvider(prayer.MWLCalculator{}, prayer.WithLocale(prayer.LocaleFor(cfg.Locale))),
		engine:  scheduler.NewEngine(cfg.SchedulerBuffer),
		feed:    notify.NewFeed(20),
	}

	display := notify.Dispatcher{Background: a.feed}
	if cfg.DesktopNotifications {
		display.Direct = notify.NewExecSender()
	}
	a.notifier = notify.NewScheduler(a.engine, a.prayers, cfg.Locator(), display,
		log.With().Str("component", "notify").Logger(),
		notify.WithPrayerLead(cfg.PrayerLead),
		notify.WithLocateTimeout(cfg.LocateTimeout),
	)
	log.Info().Str("db", cfg.DBPath).Bool("desktop", cfg.DesktopNotifications).Msg("dhikr started")
	return a, nil
}

func (a *app) coords(ctx context.Context) prayer.Coordinates {
	return prayer.ResolveCoordinates(ctx, a.cfg.Locator(), a.cfg.LocateTimeout)
}

func (a *app) Close() {
	a.engine.Stop()
	if err := a.repo.Close(); err != nil {
		a.log.Error().Err(err).Msg("close database")
	}
	_ = a.logOut.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newLogger(path, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if path == "-" {
		return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return zerolog.New(f).Level(lvl).With().Timestamp().Logger(), f, nil
}
