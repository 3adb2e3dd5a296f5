package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dhikr/internal/model"
	"github.com/sandeepkv93/dhikr/internal/notify"
	"github.com/sandeepkv93/dhikr/internal/views"
)

func waitForNotificationCmd(ch <-chan notify.Payload) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Payload: p}
	}
}

// scheduleCmd brings armed timers in line with the current settings.
func (m Model) scheduleCmd() tea.Cmd {
	if m.notifier == nil {
		return nil
	}
	n, ctx, settings := m.notifier, m.ctx, m.Settings
	return func() tea.Msg {
		if !settings.NotificationsEnabled {
			n.ClearAllNotifications()
			n.Setup(false)
			return ScheduleResultMsg{}
		}
		if !n.Setup(true) {
			return ScheduleResultMsg{Enabled: true}
		}
		err := n.ScheduleNotifications(ctx, settings.PrayerNotifications, settings.ReminderTimes)
		return ScheduleResultMsg{Enabled: true, Granted: true, Err: err}
	}
}

func (m Model) applyScheduleResult(res ScheduleResultMsg) Model {
	switch {
	case res.Enabled && !res.Granted:
		m.Settings.NotificationsEnabled = false
		m.saveSettings()
		m.Status = StatusBar{Text: "notifications unavailable on this system", IsError: true}
	case res.Err != nil:
		m.LastError = res.Err
		m.Status = StatusBar{Text: fmt.Sprintf("prayer notifications: %v", res.Err), IsError: true}
	case res.Granted:
		m.Status = StatusBar{Text: "notifications scheduled"}
	default:
		m.Status = StatusBar{Text: "notifications off"}
	}
	return m
}

func (m *Model) saveSettings() {
	if m.store != nil {
		m.store.SaveSettings(m.ctx, m.Settings)
	}
}

func (m *Model) reloadStats() {
	if m.store == nil {
		return
	}
	if s, ok := m.store.LoadStats(m.ctx); ok {
		m.Stats = s
	}
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Title, n.Body)
}

func (m Model) renderStatsView() string {
	m.syncBubbleData()
	now := m.now()
	return views.RenderStatsPanel(views.StatsPanelData{
		Today:     m.Stats.Today(now),
		Week:      m.Stats.WeekTotal(now),
		Total:     m.Stats.TotalDhikr,
		TableView: m.statsTable.View(),
	})
}

func (m Model) renderSettingsView() string {
	reminders := make([]string, 0, len(m.Settings.ReminderTimes))
	for _, h := range m.Settings.ReminderTimes {
		reminders = append(reminders, model.FormatReminderTime(h))
	}
	data := views.SettingsPanelData{
		Dark:          m.Settings.IsDark,
		Notifications: m.Settings.NotificationsEnabled,
		Permission:    string(notify.PermissionDefault),
		Prayer:        m.Settings.PrayerNotifications,
		Reminders:     reminders,
	}
	if m.notifier != nil {
		data.Permission = string(m.notifier.Permission())
		for _, ev := range m.notifier.PendingEvents() {
			data.Pending = append(data.Pending, fmt.Sprintf("%s %s", ev.TriggerAt.Format("Mon 15:04"), ev.Tag))
		}
	}
	return views.RenderSettingsPanel(data)
}
