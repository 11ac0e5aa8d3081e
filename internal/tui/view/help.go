package view

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
)

// HelpLines lists every binding with its keys in an aligned column.
func HelpLines(bindings []key.Binding, th tuitheme.Theme) []string {
	keyWidth := 0
	for _, b := range bindings {
		keyWidth = max(keyWidth, visibleLen(b.Help().Key))
	}
	lines := make([]string, 0, len(bindings)+2)
	lines = append(lines, th.Section.Render("Keybinds"), "")
	for _, b := range bindings {
		h := b.Help()
		lines = append(lines, th.Shortcut.Render(padRight(h.Key, keyWidth))+"  "+th.MetaValue.Render(h.Desc))
	}
	lines = append(lines, "", th.MetaLabel.Render("the key beside a post opens it"))
	return lines
}

func helpWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, visibleLen(l))
	}
	return w
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
