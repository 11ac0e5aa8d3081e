package article

import "github.com/charmbracelet/lipgloss"

var (
	cpPeach    = lipgloss.Color("#fab387")
	cpSapphire = lipgloss.Color("#74c7ec")
	cpBlue     = lipgloss.Color("#89b4fa")
	cpLavender = lipgloss.Color("#b4befe")
	cpSubtext0 = lipgloss.Color("#a6adc8")
	cpOverlay1 = lipgloss.Color("#7f849c")

	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(cpLavender)
	linkURLStyle   = lipgloss.NewStyle().Foreground(cpBlue).Underline(true)
	mentionStyle   = lipgloss.NewStyle().Foreground(cpSapphire)
	quoteBarStyle  = lipgloss.NewStyle().Foreground(cpOverlay1)
	quoteTextStyle = lipgloss.NewStyle().Foreground(cpSubtext0)
	ruleStyle      = lipgloss.NewStyle().Foreground(cpOverlay1)
	codeStyle      = lipgloss.NewStyle().Foreground(cpPeach)
	emphasisStyle  = lipgloss.NewStyle().Italic(true)
	strongStyle    = lipgloss.NewStyle().Bold(true)
	strikeStyle    = lipgloss.NewStyle().Strikethrough(true)
)

func (r fragmentRenderer) style(s lipgloss.Style, text string) string {
	if !r.opts.Styled || text == "" {
		return text
	}
	return s.Render(text)
}

func (r fragmentRenderer) styleLines(s lipgloss.Style, lines []string) []string {
	for i, line := range lines {
		lines[i] = r.style(s, line)
	}
	return lines
}
