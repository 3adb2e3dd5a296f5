package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Dark         bool
}

type theme struct {
	header lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
	accent lipgloss.Style
}

func newTheme(fg, accent, muted lipgloss.Color) theme {
	return theme{
		header: lipgloss.NewStyle().Bold(true).Foreground(accent),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Foreground(fg).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(muted),
		accent: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
}

var (
	darkTheme  = newTheme(lipgloss.Color("255"), lipgloss.Color("42"), lipgloss.Color("245"))
	lightTheme = newTheme(lipgloss.Color("235"), lipgloss.Color("28"), lipgloss.Color("242"))
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

func RenderApp(data AppData) string {
	th := themeFor(data.Dark)
	left := th.panel.Width(52).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := th.panel.Width(44).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	status := th.status.Render(data.StatusLine)
	if data.StatusError {
		status = th.err.Render(data.StatusLine)
	}

	lines := []string{
		th.header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, th.panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, th.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
