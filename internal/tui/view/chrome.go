package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/dustin/go-humanize"

	"github.com/glabrego/lobsters-cli/internal/mode"
	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
)

// Header shows the app title, one pill per listing variant and the page.
func Header(m mode.Mode, width int, ui UIOptions, th tuitheme.Theme) string {
	parts := []string{th.Title.Render("lobste.rs")}
	if ui.ModeInfo {
		pills := make([]string, 0, len(mode.Kinds))
		for _, k := range mode.Kinds {
			if k == m.Kind {
				pills = append(pills, th.ModeActive.Render(k.String()))
				continue
			}
			pills = append(pills, th.ModePill.Render(k.String()))
		}
		parts = append(parts, strings.Join(pills, " "))
		parts = append(parts, th.MetaLabel.Render("page")+" "+th.MetaValue.Render(fmt.Sprintf("%d", m.Page)))
	}
	return truncate(" "+strings.Join(parts, "  "), width)
}

// Hints renders bindings as "key action" pairs.
func Hints(bindings []key.Binding, th tuitheme.Theme) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, th.MetaValue.Render(h.Key)+" "+th.MetaLabel.Render(h.Desc))
	}
	return strings.Join(parts, " | ")
}

type FooterParams struct {
	Loading    bool
	Spinner    string
	Status     string
	Downloaded uint64
	Hints      []key.Binding
	Width      int
	UI         UIOptions
}

// Footer is the bottom line: loading state or status message on the left,
// downloaded bytes and key hints on the right.
func Footer(p FooterParams, th tuitheme.Theme) string {
	left := StateMessage(p.Loading, p.Spinner, p.Status, th)

	right := make([]string, 0, 2)
	if p.UI.Downloaded {
		right = append(right, th.MetaLabel.Render("downloaded")+" "+th.MetaValue.Render(humanize.Bytes(p.Downloaded)))
	}
	if p.UI.KeybindHints && len(p.Hints) > 0 {
		right = append(right, Hints(p.Hints, th))
	}
	rightText := strings.Join(right, " • ")

	if rightText == "" {
		return truncate(" "+left, p.Width)
	}
	gap := p.Width - visibleLen(left) - visibleLen(rightText) - 2
	if gap < 1 {
		return truncate(" "+left+" • "+rightText, p.Width)
	}
	return " " + left + strings.Repeat(" ", gap) + rightText + " "
}

func StateMessage(loading bool, spinner, status string, th tuitheme.Theme) string {
	switch {
	case status != "":
		return th.MetaValue.Render(status)
	case loading:
		return th.StateLoad.Render(strings.TrimSpace(spinner + " loading"))
	default:
		return th.StateIdle.Render("ready")
	}
}
