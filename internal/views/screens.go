package views

import (
	"fmt"
	"strings"
)

type PhraseLine struct {
	Text    string
	Current bool
}

type CounterPanelData struct {
	DisplayMode  string
	Phrase       string
	Category     string
	Button       string
	Count        int
	Total        int
	CycleLength  int
	FullCycle    int
	Endless      bool
	ProgressView string
	Phrases      []PhraseLine
	Dark         bool
}

type TypeMenuItem struct {
	Key      string
	Label    string
	Selected bool
	Cursor   bool
}

type NextPrayerData struct {
	Name      string
	Time      string
	Remaining string
	Err       string
}

type StatsPanelData struct {
	Today     int
	Week      int
	Total     int
	TableView string
}

type SettingsPanelData struct {
	Dark          bool
	Notifications bool
	Permission    string
	Prayer        bool
	Reminders     []string
	Pending       []string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
	About       string
}

// RenderCounterPanel draws the counter in its display mode: dynamic
// shows everything, list shows the whole phrase set, focus shows only
// the phrase and the count.
func RenderCounterPanel(data CounterPanelData) string {
	th := themeFor(data.Dark)
	var b strings.Builder
	switch data.DisplayMode {
	case "focus":
		b.WriteString("\n" + th.accent.Render(data.Phrase) + "\n\n")
		b.WriteString(countLine(data) + "\n")
	case "list":
		b.WriteString(data.Category + "\n\n")
		for _, p := range data.Phrases {
			cursor := " "
			if p.Current {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s\n", cursor, p.Text))
		}
		b.WriteString("\n" + countLine(data) + "\n")
	default:
		b.WriteString(th.accent.Render(data.Phrase) + "\n")
		b.WriteString(data.Category + "\n\n")
		b.WriteString(countLine(data) + "\n")
		if !data.Endless {
			b.WriteString(data.ProgressView + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\n[ %s ]  space/enter", data.Button))
	return strings.TrimSpace(b.String())
}

func countLine(data CounterPanelData) string {
	if data.Endless {
		return fmt.Sprintf("count: %d | total: %d | mode: endless", data.Count, data.Total)
	}
	return fmt.Sprintf("count: %d/%d | total: %d/%d", data.Count, data.CycleLength, data.Total, data.FullCycle)
}

func RenderTypeMenu(items []TypeMenuItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("type:\n")
	for _, it := range items {
		cursor := " "
		if it.Cursor {
			cursor = ">"
		}
		mark := ""
		if it.Selected {
			mark = " *"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s%s\n", cursor, it.Key, it.Label, mark))
	}
	b.WriteString("keys: [j/k] move [enter] choose [esc] close")
	return b.String()
}

func RenderNextPrayer(data NextPrayerData) string {
	if data.Err != "" {
		return "next prayer: unavailable (" + data.Err + ")"
	}
	if data.Name == "" {
		return "next prayer: ..."
	}
	return fmt.Sprintf("next prayer: %s %s (%s)", data.Name, data.Time, data.Remaining)
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("today: %d\n", data.Today))
	b.WriteString(fmt.Sprintf("last 7 days: %d\n", data.Week))
	b.WriteString(fmt.Sprintf("all time: %d\n\n", data.Total))
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	b.WriteString(fmt.Sprintf("theme: %s\n", onOff(data.Dark, "dark", "light")))
	b.WriteString(fmt.Sprintf("notifications: %s (%s)\n", onOff(data.Notifications, "on", "off"), data.Permission))
	b.WriteString(fmt.Sprintf("prayer reminders: %s\n", onOff(data.Prayer, "on", "off")))
	if len(data.Reminders) == 0 {
		b.WriteString("dhikr reminders: (none)\n")
	} else {
		b.WriteString("dhikr reminders: " + strings.Join(data.Reminders, ", ") + "\n")
	}
	if len(data.Pending) > 0 {
		b.WriteString("\nupcoming:\n")
		for _, p := range data.Pending {
			b.WriteString("- " + p + "\n")
		}
	}
	b.WriteString("\ncommands: /notify on|off /prayer on|off /remind 9,14,17 /theme dark|light /clear-data")
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(title, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: %s\n%s", title, body)
}

func RenderHelpPanel(data HelpPanelData) string {
	out := fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
	if data.About != "" {
		out += "\n\n" + data.About
	}
	return out
}

func onOff(v bool, on, off string) string {
	if v {
		return on
	}
	return off
}
