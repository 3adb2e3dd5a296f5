package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dhikr/internal/model"
	"github.com/sandeepkv93/dhikr/internal/views"
)

func (m Model) handleCounterKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case " ", "space", "enter":
		m.Counter.Increment(m.ctx)
		now := m.now()
		m.Stats.Add(now, 1)
		m.Stats.Prune(now)
	case "t":
		m.TypeMenu = TypeMenuState{Active: true, Cursor: m.Counter.State().CurrentType.Index()}
	case "m":
		state := m.Counter.ToggleMode(m.ctx)
		mode := "bounded"
		if state.IsEndlessMode {
			mode = "endless"
		}
		m.Status = StatusBar{Text: "mode: " + mode}
	case "r":
		m.Counter.Reset(m.ctx)
		m.Status = StatusBar{Text: "counter reset"}
	case "v":
		state := m.Counter.CycleDisplayMode(m.ctx)
		m.Status = StatusBar{Text: fmt.Sprintf("display: %s", state.DisplayMode)}
	}
	return m
}

func (m Model) handleTypeMenuKey(msg tea.KeyMsg) Model {
	n := len(model.PhraseTypes)
	switch msg.String() {
	case "esc", "t":
		m.TypeMenu.Active = false
	case "j", "down":
		m.TypeMenu.Cursor = (m.TypeMenu.Cursor + 1) % n
	case "k", "up":
		m.TypeMenu.Cursor = (m.TypeMenu.Cursor + n - 1) % n
	case "1", "2", "3":
		m.TypeMenu.Cursor = int(msg.Runes[0] - '1')
		m = m.chooseType()
	case "enter":
		m = m.chooseType()
	}
	return m
}

func (m Model) chooseType() Model {
	t := model.PhraseTypes[m.TypeMenu.Cursor]
	m.Counter.SetType(m.ctx, t)
	m.TypeMenu.Active = false
	m.Status = StatusBar{Text: fmt.Sprintf("type: %s", t)}
	return m
}

func (m Model) renderCounterView() string {
	state := m.Counter.State()
	phrase := state.CurrentPhrase()

	set := model.PhrasesFor(state.CurrentType)
	lines := make([]views.PhraseLine, 0, len(set))
	for _, p := range set {
		lines = append(lines, views.PhraseLine{Text: p.Text, Current: p.ID == phrase.ID})
	}

	return views.RenderCounterPanel(views.CounterPanelData{
		DisplayMode:  string(state.DisplayMode),
		Phrase:       phrase.Text,
		Category:     state.CategoryLabel(),
		Button:       state.ButtonLabel(),
		Count:        state.Count,
		Total:        state.TotalCount,
		CycleLength:  model.CycleLength,
		FullCycle:    model.FullCycle,
		Endless:      state.IsEndlessMode,
		ProgressView: m.countProgress.ViewAs(state.Progress()),
		Phrases:      lines,
		Dark:         m.Settings.IsDark,
	})
}

func (m Model) renderTypeMenuIfVisible() string {
	if !m.TypeMenu.Active {
		return ""
	}
	current := m.Counter.State().CurrentType
	items := make([]views.TypeMenuItem, 0, len(model.PhraseTypes))
	for i, t := range model.PhraseTypes {
		items = append(items, views.TypeMenuItem{
			Key:      fmt.Sprint(i + 1),
			Label:    model.CategoryLabelFor(t),
			Selected: t == current,
			Cursor:   i == m.TypeMenu.Cursor,
		})
	}
	return views.RenderTypeMenu(items)
}
