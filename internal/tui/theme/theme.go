package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	ModeActive lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	Shortcut  lipgloss.Style
	Score     lipgloss.Style
	Tag       lipgloss.Style
	Author    lipgloss.Style
	Scrollbar lipgloss.Style
	Popup     lipgloss.Style

	TitleUnread lipgloss.Style
	TitleRead   lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay0 := lipgloss.Color("#6c7086")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpBase := lipgloss.Color("#1e1e2e")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		ModePill:    lipgloss.NewStyle().Foreground(cpSubtext0).Background(cpSurface0).Padding(0, 1),
		ModeActive:  lipgloss.NewStyle().Bold(true).Foreground(cpBase).Background(cpLavender).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),
		Shortcut:    lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		Score:       lipgloss.NewStyle().Foreground(cpYellow),
		Tag:         lipgloss.NewStyle().Foreground(cpTeal),
		Author:      lipgloss.NewStyle().Foreground(cpRosewater),
		Scrollbar:   lipgloss.NewStyle().Foreground(cpOverlay0),
		Popup:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(cpLavender).Padding(0, 1),
		TitleUnread: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		TitleRead:   lipgloss.NewStyle().Foreground(cpSubtext0).Faint(true),
	}
}

// StylePostTitle dims posts already read.
func (t Theme) StylePostTitle(post lobsters.Post, title string) string {
	if title == "" {
		return title
	}
	if post.IsRead {
		return t.TitleRead.Render(title)
	}
	return t.TitleUnread.Render(title)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
