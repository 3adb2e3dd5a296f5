package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/dhikr/internal/counter"
	"github.com/sandeepkv93/dhikr/internal/model"
	"github.com/sandeepkv93/dhikr/internal/notify"
	"github.com/sandeepkv93/dhikr/internal/prayer"
	"github.com/sandeepkv93/dhikr/internal/scheduler"
)

type View string

const (
	ViewCounter  View = "Counter"
	ViewStats    View = "Stats"
	ViewSettings View = "Settings"
)

const maxNotifications = 5

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Counter  string
	Stats    string
	Settings string
	Help     string
	Quit     string
}

// Store is the persistence the TUI reads at start-up and writes through.
type Store interface {
	counter.Store
	LoadState(ctx context.Context) (model.State, bool)
	SaveSettings(ctx context.Context, settings model.Settings)
	LoadSettings(ctx context.Context) (model.Settings, bool)
	LoadStats(ctx context.Context) (model.Stats, bool)
	ClearOldData(ctx context.Context)
}

type PrayerSource interface {
	GetNextPrayer(coords prayer.Coordinates) (prayer.NextPrayer, error)
}

type NotificationScheduler interface {
	Setup(userEnabled bool) bool
	Permission() notify.Permission
	ScheduleNotifications(ctx context.Context, enablePrayer bool, reminderTimes []float64) error
	ClearAllNotifications()
	PendingEvents() []scheduler.Event
}

type Deps struct {
	Context  context.Context
	Store    Store
	Prayers  PrayerSource
	Coords   prayer.Coordinates
	Notifier NotificationScheduler
	Feed     *notify.Feed
	Now      func() time.Time
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type TypeMenuState struct {
	Active bool
	Cursor int
}

type Model struct {
	CurrentView   View
	Counter       *counter.Counter
	Settings      model.Settings
	Stats         model.Stats
	NextPrayer    prayer.NextPrayer
	PrayerErr     error
	TypeMenu      TypeMenuState
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []notify.Payload
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	ctx      context.Context
	store    Store
	prayers  PrayerSource
	coords   prayer.Coordinates
	notifier NotificationScheduler
	feed     *notify.Feed
	now      func() time.Time

	commandInput  textinput.Model
	countProgress progress.Model
	statsTable    table.Model
	helpModel     help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// PrayerTickMsg fires once a minute to refresh the next prayer.
type PrayerTickMsg struct {
	At time.Time
}

type NextPrayerMsg struct {
	Next prayer.NextPrayer
	Err  error
}

type NotificationMsg struct {
	Payload notify.Payload
}

type ScheduleResultMsg struct {
	Enabled bool
	Granted bool
	Err     error
}

func NewModel(deps Deps) Model {
	m := Model{
		CurrentView: ViewCounter,
		Settings:    model.DefaultSettings(),
		ctx:         deps.Context,
		store:       deps.Store,
		prayers:     deps.Prayers,
		coords:      deps.Coords,
		notifier:    deps.Notifier,
		feed:        deps.Feed,
		now:         deps.Now,
		Keys: GlobalKeyMap{
			Counter:  "c",
			Stats:    "s",
			Settings: "o",
			Help:     "?",
			Quit:     "q",
		},
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.coords == (prayer.Coordinates{}) || !m.coords.Valid() {
		m.coords = prayer.Mecca
	}

	state := model.NewState()
	m.Stats = model.NewStats(m.now())
	if m.store != nil {
		if s, ok := m.store.LoadState(m.ctx); ok {
			state = s
		}
		if s, ok := m.store.LoadSettings(m.ctx); ok {
			m.Settings = s
		}
		if s, ok := m.store.LoadStats(m.ctx); ok {
			m.Stats = s
		}
	}
	m.Counter = counter.New(state, m.store)

	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 128
	m.commandInput.Width = 40

	m.countProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.countProgress.Width = 40

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Count", Width: 8},
	}
	m.statsTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(8))

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	days := m.Stats.LastNDays(m.now(), 7)
	rows := make([]table.Row, 0, len(days))
	for i := len(days) - 1; i >= 0; i-- {
		rows = append(rows, table.Row{days[i].Date, itoa(days[i].Count)})
	}
	m.statsTable.SetRows(rows)
	m.commandInput.SetValue(m.Palette.Input)
}
