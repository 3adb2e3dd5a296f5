package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dhikr/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.refreshPrayerCmd(), prayerTickCmd()}
	if m.feed != nil {
		m.feed.Attach()
		cmds = append(cmds, waitForNotificationCmd(m.feed.C()))
	}
	if m.Settings.NotificationsEnabled {
		cmds = append(cmds, m.scheduleCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.TypeMenu.Active {
			return m.handleTypeMenuKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Counter:
			m.CurrentView = ViewCounter
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			m.reloadStats()
			return m, nil
		case m.Keys.Settings:
			m.CurrentView = ViewSettings
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "d":
			m.Settings.IsDark = !m.Settings.IsDark
			m.saveSettings()
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			if m.feed != nil {
				m.feed.Detach()
			}
			return m, tea.Quit
		}
		if m.CurrentView == ViewCounter {
			return m.handleCounterKey(typed), nil
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewStats {
				m.reloadStats()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case PrayerTickMsg:
		return m, tea.Batch(m.refreshPrayerCmd(), prayerTickCmd())
	case NextPrayerMsg:
		m.PrayerErr = typed.Err
		if typed.Err == nil {
			m.NextPrayer = typed.Next
		}
		return m, nil
	case NotificationMsg:
		m.Notifications = append(m.Notifications, typed.Payload)
		if len(m.Notifications) > maxNotifications {
			m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
		}
		if m.feed != nil {
			return m, waitForNotificationCmd(m.feed.C())
		}
		return m, nil
	case ScheduleResultMsg:
		return m.applyScheduleResult(typed), nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	switch m.CurrentView {
	case ViewCounter:
		leftPane = m.renderCounterView()
	case ViewStats:
		leftPane = m.renderStatsView()
	case ViewSettings:
		leftPane = m.renderSettingsView()
	}
	rightPane := strings.TrimSpace(strings.Join([]string{
		m.renderTypeMenuIfVisible(),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	state := m.Counter.State()
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("dhikr | view: %s | type: %s | %s", m.CurrentView, state.CurrentType, m.renderNextPrayer()),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: space count | t type | m mode | r reset | v display | %s counter | %s stats | %s settings | / cmd | %s help | %s quit", m.Keys.Counter, m.Keys.Stats, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
		Dark:         m.Settings.IsDark,
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewCounter, ViewStats, ViewSettings:
		return true
	default:
		return false
	}
}

func prayerTickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return PrayerTickMsg{At: t} })
}
