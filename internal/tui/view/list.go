package view

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
)

const metaSep = " · "

type PostLineParams struct {
	Post     lobsters.Post
	Shortcut string
	Now      time.Time
	Active   bool
	Width    int
	UI       UIOptions
}

// RenderPostLines draws one post as a title line followed by a meta line.
func RenderPostLines(p PostLineParams, th tuitheme.Theme) []string {
	prefix := " "
	if p.UI.Shortcuts {
		key := p.Shortcut
		if key == "" {
			key = " "
		}
		prefix = " " + th.Shortcut.Render(key) + " "
	}
	indent := strings.Repeat(" ", visibleLen(prefix))

	tags := ""
	if len(p.Post.Tags) > 0 {
		tags = th.Tag.Render(strings.Join(p.Post.Tags, " "))
	}
	available := p.Width - visibleLen(prefix) - visibleLen(tags) - 1
	title := truncate(strings.TrimSpace(p.Post.Title), max(1, available))
	first := prefix + th.StylePostTitle(p.Post, title)
	if tags != "" && available > 0 {
		gap := max(1, p.Width-visibleLen(first)-visibleLen(tags))
		first += strings.Repeat(" ", gap) + tags
	}

	second := indent + th.MetaLabel.Render(truncate(PostMeta(p.Post, p.Now, p.UI), max(1, p.Width-len(indent))))

	return []string{
		th.RenderActiveLine(p.Active, padRight(first, p.Width)),
		th.RenderActiveLine(p.Active, padRight(second, p.Width)),
	}
}

// PostMeta is the secondary line of a post: host, score, comments, submitter
// and age, each behind its UI toggle.
func PostMeta(post lobsters.Post, now time.Time, ui UIOptions) string {
	parts := make([]string, 0, 5)
	parts = append(parts, PostHost(post))
	if ui.ScoreCount {
		parts = append(parts, fmt.Sprintf("▲ %d", post.Score))
	}
	if ui.CommentCount {
		parts = append(parts, pluralize(post.CommentCount, "comment"))
	}
	if ui.SubmittedUser && post.Submitter != "" {
		parts = append(parts, "by "+string(post.Submitter))
	}
	if ui.SubmittedElapsed {
		parts = append(parts, RelativeTimeLabel(now, post.CreatedAt))
	}
	return strings.Join(parts, metaSep)
}

// PostHost is the link's host name, or "self" for text posts.
func PostHost(post lobsters.Post) string {
	if post.IsTextPost() {
		return "self"
	}
	parsed, err := url.Parse(post.URL)
	if err != nil || parsed.Hostname() == "" {
		return post.URL
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if !then.Before(now) || now.Sub(then) < time.Minute {
		return "just now"
	}
	return humanize.RelTime(then, now, "ago", "from now")
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	return ansi.Truncate(s, width, "...")
}

func padRight(s string, width int) string {
	if gap := width - visibleLen(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func visibleLen(s string) int {
	return lipgloss.Width(s)
}
