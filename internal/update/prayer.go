package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dhikr/internal/views"
)

func (m Model) refreshPrayerCmd() tea.Cmd {
	if m.prayers == nil {
		return nil
	}
	src, coords := m.prayers, m.coords
	return func() tea.Msg {
		next, err := src.GetNextPrayer(coords)
		return NextPrayerMsg{Next: next, Err: err}
	}
}

func (m Model) renderNextPrayer() string {
	data := views.NextPrayerData{}
	switch {
	case m.PrayerErr != nil:
		data.Err = m.PrayerErr.Error()
	case m.NextPrayer.Name != "":
		data.Name = m.NextPrayer.Name.ArabicName()
		data.Time = m.NextPrayer.Time.Format("15:04")
		data.Remaining = m.NextPrayer.RemainingTime
	}
	return views.RenderNextPrayer(data)
}
