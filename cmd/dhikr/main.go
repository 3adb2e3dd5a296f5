package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/dhikr/internal/counter"
	"github.com/sandeepkv93/dhikr/internal/model"
	"github.com/sandeepkv93/dhikr/internal/update"
)

func main() {
	// a missing .env is the normal case
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:           "dhikr",
		Short:         "Dhikr counter with prayer and reminder notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmdContext(cmd), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (default ~/.dhikr/dhikr.db)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "log file path, - for stderr (default ~/.dhikr/dhikr.log)")

	root.AddCommand(newCountCmd(&opts))
	root.AddCommand(newStatsCmd(&opts))
	root.AddCommand(newNextPrayerCmd(&opts))
	root.AddCommand(newClearDataCmd(&opts))
	root.AddCommand(newScheduleCmd(&opts))
	return root
}

func runTUI(ctx context.Context, opts rootOptions) error {
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.engine.Start()
	go func() {
		if err := a.notifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error().Err(err).Msg("notification loop stopped")
		}
	}()

	m := update.NewModel(update.Deps{
		Context:  ctx,
		Store:    a.store,
		Prayers:  a.prayers,
		Coords:   a.coords(ctx),
		Notifier: a.notifier,
		Feed:     a.feed,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("dhikr failed: %w", err)
	}
	return nil
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count [n]",
		Short: "Record n recitations (default 1) and print the counter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("count must be a positive integer, got %q", args[0])
				}
				n = v
			}
			ctx := cmdContext(cmd)
			a, err := openApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer a.Close()

			state, _ := a.store.LoadState(ctx)
			c := counter.New(state, a.store)
			for i := 0; i < n; i++ {
				c.Increment(ctx)
			}
			printState(cmd.OutOrStdout(), c.State())
			return nil
		},
	}
}

func printState(w io.Writer, s model.State) {
	_, _ = fmt.Fprintf(w, "%s\n%s [%s]\n", s.CurrentPhrase().Text, s.CategoryLabel(), s.CurrentType)
	if s.IsEndlessMode {
		_, _ = fmt.Fprintf(w, "count: %d total: %d (endless)\n", s.Count, s.TotalCount)
		return
	}
	_, _ = fmt.Fprintf(w, "count: %d/%d total: %d/%d\n", s.Count, model.CycleLength, s.TotalCount, model.FullCycle)
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print recitation statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			a, err := openApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer a.Close()

			now := time.Now()
			stats, ok := a.store.LoadStats(ctx)
			if !ok {
				stats = model.NewStats(now)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "today: %d\nlast 7 days: %d\nall time: %d\n", stats.Today(now), stats.WeekTotal(now), stats.TotalDhikr)
			for _, d := range stats.LastNDays(now, days) {
				_, _ = fmt.Fprintf(out, "%s %d\n", d.Date, d.Count)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "number of days to list")
	return cmd
}

func newNextPrayerCmd(opts *rootOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "next-prayer",
		Short: "Print the next prayer and the time left until it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			a, err := openApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer a.Close()

			coords := a.coords(ctx)
			out := cmd.OutOrStdout()
			if all {
				times, err := a.prayers.GetPrayerTimes(coords, time.Now())
				if err != nil {
					return err
				}
				for _, e := range times.Ordered() {
					_, _ = fmt.Fprintf(out, "%-8s %s\n", e.Name, e.Time.Format("15:04"))
				}
			}
			next, err := a.prayers.GetNextPrayer(coords)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "%s %s (%s)\n", next.Name.ArabicName(), next.Time.Format("15:04"), next.RemainingTime)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also list every prayer of today")
	return cmd
}

func newClearDataCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-data",
		Short: "Delete saved counter and statistics, keeping settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			a, err := openApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.ClearOldData(ctx)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "data cleared")
			return nil
		},
	}
}

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the notification scheduler without the UI until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a, err := openApp(ctx, *opts)
			if err != nil {
				return err
			}
			defer a.Close()

			settings, ok := a.store.LoadSettings(ctx)
			if !ok {
				settings = model.DefaultSettings()
			}
			if !a.notifier.Setup(true) {
				return errors.New("no notification channel available; set DHIKR_DESKTOP_NOTIFICATIONS=true and install notify-send")
			}
			if err := a.notifier.ScheduleNotifications(ctx, settings.PrayerNotifications, settings.ReminderTimes); err != nil {
				a.log.Warn().Err(err).Msg("prayer notifications skipped")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d notifications armed, press Ctrl+C to stop\n", a.notifier.Pending())

			a.engine.Start()
			if err := a.notifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
