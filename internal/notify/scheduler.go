package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/dhikr/internal/model"
	"github.com/sandeepkv93/dhikr/internal/prayer"
	"github.com/sandeepkv93/dhikr/internal/scheduler"
)

const (
	DefaultPrayerLead    = 10 * time.Minute
	DefaultLocateTimeout = 5 * time.Second

	reminderBody     = "حان وقت الذكر والدعاء 🤲"
	prayerBodyFormat = "حان وقت أذكار صلاة %s 🤲"
	confirmFormat    = "تم جدولة تذكير الأذكار في الأوقات التالية:\n%s ⏰"
)

type PrayerTimesSource interface {
	GetPrayerTimes(coords prayer.Coordinates, date time.Time) (prayer.Times, error)
}

// Scheduler turns settings into armed timers on the engine and displays
// each notification as its timer fires, re-arming it for the next day.
type Scheduler struct {
	engine        *scheduler.Engine
	prayers       PrayerTimesSource
	locator       prayer.Locator
	display       Dispatcher
	log           zerolog.Logger
	now           func() time.Time
	lead          time.Duration
	locateTimeout time.Duration

	mu         sync.Mutex
	permission Permission

	// armMu guards live, the event ID each tag was last armed with.
	// A fired or dropped event whose ID is no longer live was cleared.
	armMu sync.Mutex
	live  map[string]string
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func WithPrayerLead(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.lead = d
		}
	}
}

func WithLocateTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.locateTimeout = d
		}
	}
}

func NewScheduler(engine *scheduler.Engine, prayers PrayerTimesSource, locator prayer.Locator, display Dispatcher, log zerolog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		engine:        engine,
		prayers:       prayers,
		locator:       locator,
		display:       display,
		log:           log,
		now:           time.Now,
		lead:          DefaultPrayerLead,
		locateTimeout: DefaultLocateTimeout,
		permission:    PermissionDefault,
		live:          make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	engine.SetDropHandler(s.dropped)
	return s
}

// ScheduleNotifications replaces every pending timer with the prayer and
// reminder timers the arguments describe. Without a granted permission
// it does nothing. Reminders are armed even when prayer times fail.
func (s *Scheduler) ScheduleNotifications(ctx context.Context, enablePrayer bool, reminderTimes []float64) error {
	if s.Permission() != PermissionGranted {
		s.log.Debug().Msg("skip scheduling: permission not granted")
		return nil
	}
	s.ClearAllNotifications()
	now := s.now()

	var prayerErr error
	if enablePrayer {
		prayerErr = s.schedulePrayers(ctx, now)
	}

	labels := make([]string, 0, len(reminderTimes))
	for i, h := range reminderTimes {
		target := model.ClockOn(now, h)
		if err := s.arm(fmt.Sprintf("%s%d", reminderTagPrefix, i), target, now, newPayload(reminderBody, "")); err != nil {
			return err
		}
		labels = append(labels, model.FormatReminderTime(h))
	}

	body := fmt.Sprintf(confirmFormat, strings.Join(labels, "، "))
	if err := s.display.Display(newPayload(body, TagScheduleUpdate)); err != nil {
		s.log.Error().Err(err).Msg("schedule confirmation failed")
	}
	s.log.Info().Int("pending", s.engine.Pending()).Bool("prayer", enablePrayer).Msg("notifications scheduled")
	return prayerErr
}

func (s *Scheduler) schedulePrayers(ctx context.Context, now time.Time) error {
	coords := prayer.ResolveCoordinates(ctx, s.locator, s.locateTimeout)
	times, err := s.prayers.GetPrayerTimes(coords, now)
	if err != nil {
		s.log.Error().Err(err).Str("coords", coords.String()).Msg("prayer times unavailable")
		return fmt.Errorf("schedule prayer notifications: %w", err)
	}
	for _, e := range times.Ordered() {
		body := fmt.Sprintf(prayerBodyFormat, e.Name.ArabicName())
		if err := s.arm(prayerTagPrefix+string(e.Name), e.Time.Add(-s.lead), now, newPayload(body, "")); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) arm(tag string, target, now time.Time, p Payload) error {
	p.Tag = tag
	target = model.NextDaily(target, now)
	s.armMu.Lock()
	defer s.armMu.Unlock()
	if err := s.armLocked(scheduler.Event{Tag: tag, TriggerAt: target, Payload: p}); err != nil {
		return fmt.Errorf("arm %s: %w", tag, err)
	}
	s.log.Debug().Str("tag", tag).Time("at", target).Msg("timer armed")
	return nil
}

func (s *Scheduler) armLocked(ev scheduler.Event) error {
	armed, err := s.engine.Arm(ev)
	if err != nil {
		return err
	}
	s.live[armed.Tag] = armed.ID
	return nil
}

func (s *Scheduler) isLiveLocked(ev scheduler.Event) bool {
	return s.live[ev.Tag] == ev.ID && s.Permission() == PermissionGranted
}

// ClearAllNotifications cancels every pending timer and withdraws every
// displayed notification carrying one of the application's tags.
func (s *Scheduler) ClearAllNotifications() {
	s.armMu.Lock()
	n := s.engine.CancelAll()
	clear(s.live)
	s.armMu.Unlock()
	if err := s.display.CloseTagged(AppTagPrefixes); err != nil {
		s.log.Warn().Err(err).Msg("close displayed notifications")
	}
	s.log.Debug().Int("cancelled", n).Msg("notifications cleared")
}

func (s *Scheduler) Pending() int {
	return s.engine.Pending()
}

func (s *Scheduler) PendingEvents() []scheduler.Event {
	return s.engine.PendingEvents()
}

// Run displays fired timers until ctx ends or the engine stops.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.engine.C():
			if !ok {
				return nil
			}
			s.fire(ev)
		}
	}
}

func (s *Scheduler) fire(ev scheduler.Event) {
	p, ok := ev.Payload.(Payload)
	if !ok {
		s.log.Warn().Str("tag", ev.Tag).Msg("timer without notification payload")
		return
	}
	s.armMu.Lock()
	live := s.isLiveLocked(ev)
	s.armMu.Unlock()
	if !live {
		s.log.Debug().Str("tag", ev.Tag).Msg("stale timer ignored")
		return
	}
	if err := s.display.Display(p); err != nil {
		s.log.Error().Err(err).Str("tag", ev.Tag).Msg("display notification")
	}
	s.rearm(ev, p)
}

// dropped runs on the engine loop when a due event found the channel
// full. The notification is lost but the daily chain continues.
func (s *Scheduler) dropped(ev scheduler.Event) {
	p, ok := ev.Payload.(Payload)
	if !ok {
		return
	}
	s.log.Warn().Str("tag", ev.Tag).Time("at", ev.TriggerAt).Msg("timer dropped: delivery channel full")
	s.rearm(ev, p)
}

// rearm schedules ev's tag at the same wall-clock time on the next day
// still ahead, unless the tag was cleared or re-armed meanwhile.
func (s *Scheduler) rearm(ev scheduler.Event, p Payload) {
	next := model.FollowingDay(ev.TriggerAt)
	for now := s.now(); next.Before(now); {
		next = model.FollowingDay(next)
	}
	s.armMu.Lock()
	defer s.armMu.Unlock()
	if !s.isLiveLocked(ev) {
		return
	}
	if err := s.armLocked(scheduler.Event{Tag: ev.Tag, TriggerAt: next, Payload: p}); err != nil {
		s.log.Warn().Err(err).Str("tag", ev.Tag).Msg("re-arm timer")
	}
}
