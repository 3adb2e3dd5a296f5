package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/dhikr/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const aboutMarkdown = `## Tadabbur al-Dhikr

Count **33** tasbih, **33** tahmid and **33** takbir, then seal the
hundred with the tahlil. Endless mode counts without rotating.

Palette commands: ` + "`type`, `mode`, `reset`, `display`, `remind`, `notify`, `prayer`, `theme`, `clear-data`."

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		About: views.RenderMarkdown(aboutMarkdown, m.Settings.IsDark),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Counter, Action: "counter"},
		{Key: m.Keys.Stats, Action: "stats"},
		{Key: m.Keys.Settings, Action: "settings"},
		{Key: "/", Action: "command palette"},
		{Key: "d", Action: "toggle dark theme"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewCounter:
		return []KeyBinding{
			{Key: "space/enter", Action: "count"},
			{Key: "t", Action: "choose type"},
			{Key: "m", Action: "bounded/endless"},
			{Key: "r", Action: "reset"},
			{Key: "v", Action: "cycle display"},
		}
	case ViewSettings:
		return []KeyBinding{
			{Key: "/notify on|off", Action: "notifications"},
			{Key: "/remind 9,14,17", Action: "reminder hours"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
