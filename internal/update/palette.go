package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dhikr/internal/commands"
	"github.com/sandeepkv93/dhikr/internal/counter"
	"github.com/sandeepkv93/dhikr/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	reschedule := func() {
		m.saveSettings()
		follow = m.scheduleCmd()
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		SetType: func(t model.PhraseType) (commands.Result, error) {
			m.Counter.SetType(m.ctx, t)
			return commands.Result{Message: fmt.Sprintf("type: %s", t)}, nil
		},
		SetMode: func(endless bool) (commands.Result, error) {
			if m.Counter.State().IsEndlessMode != endless {
				m.Counter.ToggleMode(m.ctx)
			}
			return commands.Result{Message: fmt.Sprintf("endless mode: %t", endless)}, nil
		},
		Reset: func() (commands.Result, error) {
			m.Counter.Reset(m.ctx)
			return commands.Result{Message: "counter reset"}, nil
		},
		Display: func(d model.DisplayMode) (commands.Result, error) {
			for i := 0; i < 3 && m.Counter.State().DisplayMode != d; i++ {
				m.Counter.CycleDisplayMode(m.ctx)
			}
			return commands.Result{Message: fmt.Sprintf("display: %s", d)}, nil
		},
		Remind: func(hours []float64) (commands.Result, error) {
			m.Settings.ReminderTimes = hours
			reschedule()
			labels := make([]string, 0, len(hours))
			for _, h := range hours {
				labels = append(labels, model.FormatReminderTime(h))
			}
			if len(labels) == 0 {
				return commands.Result{Message: "dhikr reminders cleared"}, nil
			}
			return commands.Result{Message: "dhikr reminders: " + strings.Join(labels, ", ")}, nil
		},
		Notify: func(enabled bool) (commands.Result, error) {
			m.Settings.NotificationsEnabled = enabled
			reschedule()
			return commands.Result{Message: fmt.Sprintf("notifications: %t", enabled)}, nil
		},
		Prayer: func(enabled bool) (commands.Result, error) {
			m.Settings.PrayerNotifications = enabled
			reschedule()
			return commands.Result{Message: fmt.Sprintf("prayer reminders: %t", enabled)}, nil
		},
		Theme: func(dark bool) (commands.Result, error) {
			m.Settings.IsDark = dark
			m.saveSettings()
			return commands.Result{Message: fmt.Sprintf("dark theme: %t", dark)}, nil
		},
		ClearData: func() (commands.Result, error) {
			if m.store != nil {
				m.store.ClearOldData(m.ctx)
			}
			m.Counter = counter.New(model.NewState(), m.store)
			m.Stats = model.NewStats(m.now())
			return commands.Result{Message: "data cleared, settings kept"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, follow
}
