package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header      string
	Tabs        string
	List        string
	InputLine   string
	StatusLine  string
	StatusError bool
	Footer      string
	SidePanel   string
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	activeTab     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	priorityStyle = map[string]lipgloss.Style{
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

func RenderApp(data AppData) string {
	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	main := panelStyle.Width(62).Render(data.List)
	if data.SidePanel != "" {
		side := panelStyle.Width(44).Render(data.SidePanel)
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		data.Tabs,
		main,
	}
	if data.InputLine != "" {
		lines = append(lines, data.InputLine)
	}
	if data.StatusLine != "" {
		lines = append(lines, status)
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderTabs(labels []string, active int) string {
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		if i == active {
			parts = append(parts, activeTab.Render("["+label+"]"))
			continue
		}
		parts = append(parts, tabStyle.Render(label))
	}
	return strings.Join(parts, "")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
