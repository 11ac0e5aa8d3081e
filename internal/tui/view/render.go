// Package view turns an application snapshot into a terminal frame. It keeps
// no state between frames.
package view

import (
	"strings"
	"time"

	"github.com/glabrego/lobsters-cli/internal/app"
	"github.com/glabrego/lobsters-cli/internal/state"
	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	footerLines    = 1
)

// UIOptions toggles optional parts of the frame.
type UIOptions struct {
	Shortcuts        bool
	Downloaded       bool
	KeybindHints     bool
	ModeInfo         bool
	ScoreCount       bool
	CommentCount     bool
	SubmittedUser    bool
	SubmittedElapsed bool
	Scrollbar        bool
	Header           bool
}

func DefaultUIOptions() UIOptions {
	return UIOptions{
		Shortcuts:        true,
		Downloaded:       true,
		KeybindHints:     true,
		ModeInfo:         true,
		ScoreCount:       true,
		CommentCount:     true,
		SubmittedUser:    true,
		SubmittedElapsed: true,
		Scrollbar:        true,
		Header:           true,
	}
}

type Input struct {
	Snapshot app.Snapshot
	Width    int
	Height   int
	UI       UIOptions
	Keys     app.KeyMap
	Spinner  string
	Now      time.Time
}

// Render draws a full frame of exactly Height lines.
func Render(in Input, th tuitheme.Theme) string {
	width, height := frameSize(in.Width, in.Height)
	s := in.Snapshot
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	lines := make([]string, 0, height)
	if in.UI.Header {
		lines = append(lines, padRight(Header(s.Mode, width, in.UI, th), width))
	}

	bodyHeight := max(0, height-headerLines(in.UI)-footerLines)
	switch {
	case s.ShowHelp:
		lines = append(lines, helpPopup(in, width, bodyHeight, th)...)
	case s.ShowDetail:
		lines = append(lines, detailPopup(in, width, bodyHeight, th)...)
	default:
		lines = append(lines, listBody(in, width, bodyHeight, th)...)
	}

	lines = append(lines, Footer(FooterParams{
		Loading:    s.LoadingListing || s.LoadingDetail,
		Spinner:    in.Spinner,
		Status:     s.Status,
		Downloaded: s.Downloaded,
		Hints:      in.Keys.Hints(),
		Width:      width,
		UI:         in.UI,
	}, th))
	return joinLines(lines)
}

// ListWindow is the range of posts drawn for a frame of the given height.
func ListWindow(s app.Snapshot, height int, ui UIOptions) (int, int) {
	_, height = frameSize(1, height)
	rows := state.VisibleRows(height, headerLines(ui)+footerLines, app.RowHeight)
	return state.CenteredWindow(len(s.Posts), s.Selected, rows)
}

// PostIndexAt maps a terminal row to the post drawn there, or -1. While a
// popup is open every body row maps to the selected post.
func PostIndexAt(s app.Snapshot, height int, ui UIOptions, y int) int {
	_, height = frameSize(1, height)
	top := headerLines(ui)
	if y < top || y >= height-footerLines || len(s.Posts) == 0 {
		return -1
	}
	if s.ShowDetail || s.ShowHelp {
		return s.Selected
	}
	start, end := ListWindow(s, height, ui)
	i := start + (y-top)/app.RowHeight
	if i >= end {
		return -1
	}
	return i
}

func listBody(in Input, width, height int, th tuitheme.Theme) []string {
	s := in.Snapshot
	if len(s.Posts) == 0 {
		msg := "No posts"
		if s.LoadingListing {
			msg = strings.TrimSpace(in.Spinner + " loading " + strings.ToLower(s.Mode.String()) + " posts")
		}
		return centered(th.MetaLabel.Render(msg), width, height)
	}

	start, end := ListWindow(s, in.Height, in.UI)
	scrollbar := in.UI.Scrollbar && end-start < len(s.Posts)
	rowWidth := width
	if scrollbar {
		rowWidth--
	}

	lines := make([]string, 0, height)
	for i := start; i < end; i++ {
		key := ""
		if in.UI.Shortcuts {
			key, _ = app.Shortcut(i)
		}
		lines = append(lines, RenderPostLines(PostLineParams{
			Post:     s.Posts[i],
			Shortcut: key,
			Now:      in.Now,
			Active:   i == s.Selected,
			Width:    rowWidth,
			UI:       in.UI,
		}, th)...)
	}
	lines = BoxLines(lines, 0, rowWidth, height)
	if scrollbar {
		bar := Scrollbar(s.Scroll, len(s.Posts)*app.RowHeight, height, th)
		for i := range lines {
			lines[i] += bar[i]
		}
	}
	return lines
}

// Scrollbar draws a one-column bar of height rows with the thumb placed at
// offset lines out of total.
func Scrollbar(offset, total, height int, th tuitheme.Theme) []string {
	out := make([]string, height)
	if height <= 0 {
		return out
	}
	thumb := 0
	if total > 0 {
		thumb = state.ClampCursor(offset*height/total, height)
	}
	for i := range out {
		if i == thumb {
			out[i] = th.Shortcut.Render("┃")
			continue
		}
		out[i] = th.Scrollbar.Render("│")
	}
	return out
}

func detailPopup(in Input, width, height int, th tuitheme.Theme) []string {
	post, ok := in.Snapshot.SelectedPost()
	if !ok {
		return centered(th.MetaLabel.Render("No post selected"), width, height)
	}
	inner, innerHeight := popupSize(width, height)
	lines, focus := DetailLines(DetailParams{
		Post:            post,
		CommentSelected: in.Snapshot.CommentSelected,
		Loading:         in.Snapshot.LoadingDetail,
		Spinner:         in.Spinner,
		Now:             in.Now,
		Width:           inner,
		UI:              in.UI,
	}, th)
	top, _ := state.CenteredWindow(len(lines), focus, innerHeight)
	return popup(BoxLines(lines, top, inner, innerHeight), width, height, th)
}

func helpPopup(in Input, width, height int, th tuitheme.Theme) []string {
	lines := HelpLines(in.Keys.Bindings(), th)
	inner, innerHeight := popupSize(width, height)
	inner = min(inner, helpWidth(lines))
	return popup(BoxLines(lines, 0, inner, min(innerHeight, len(lines))), width, height, th)
}

// popupSize is the content area left inside the popup border and padding.
func popupSize(width, height int) (int, int) {
	return max(1, width-4), max(1, height-2)
}

func popup(content []string, width, height int, th tuitheme.Theme) []string {
	if height < 3 || width < 5 {
		return BoxLines(content, 0, width, height)
	}
	box := strings.Split(th.Popup.Render(joinLines(content)), "\n")
	return centered(joinLines(box), width, height)
}

// centered places block in the middle of a width by height area.
func centered(block string, width, height int) []string {
	lines := strings.Split(block, "\n")
	blockWidth := helpWidth(lines)
	left := strings.Repeat(" ", max(0, (width-blockWidth)/2))
	topPad := max(0, (height-len(lines))/2)

	out := make([]string, 0, height)
	for len(out) < topPad {
		out = append(out, "")
	}
	for _, l := range lines {
		out = append(out, left+l)
	}
	return BoxLines(out, 0, width, height)
}

func headerLines(ui UIOptions) int {
	if ui.Header {
		return 1
	}
	return 0
}

func frameSize(width, height int) (int, int) {
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	return width, height
}
