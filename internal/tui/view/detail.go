package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/lobsters-cli/internal/lobsters"
	article "github.com/glabrego/lobsters-cli/internal/render/article"
	tuitheme "github.com/glabrego/lobsters-cli/internal/tui/theme"
)

// maxCommentIndent caps thread indentation so deep replies keep some width.
const maxCommentIndent = 8

type DetailParams struct {
	Post            lobsters.Post
	CommentSelected int
	Loading         bool
	Spinner         string
	Now             time.Time
	Width           int
	UI              UIOptions
}

// DetailLines lays out the post popup. The second result is the line the
// selected comment starts on, or the first line when there is none.
func DetailLines(p DetailParams, th tuitheme.Theme) ([]string, int) {
	width := max(1, p.Width)
	post := p.Post
	lines := make([]string, 0, 32)

	title := strings.TrimSpace(post.Title)
	if title == "" {
		title = "(untitled)"
	}
	lines = append(lines, strings.Split(th.TitleUnread.Width(width).Render(title), "\n")...)
	lines = append(lines, th.Tag.Render(truncate(post.Destination(), width)))
	meta := PostMeta(post, p.Now, p.UI)
	if len(post.Tags) > 0 {
		meta += metaSep + strings.Join(post.Tags, " ")
	}
	lines = append(lines, th.MetaLabel.Render(truncate(meta, width)))

	if desc := article.Lines(post.Description, post.DescriptionPlain, width); len(desc) > 0 {
		lines = append(lines, "")
		lines = append(lines, desc...)
	}

	lines = append(lines, "", th.Section.Render(commentsHeading(post, p.Loading, p.Spinner)))
	if p.Loading {
		return lines, 0
	}

	selectedLine := 0
	for i, c := range post.Comments {
		if i == p.CommentSelected {
			selectedLine = len(lines) + 1
		}
		lines = append(lines, "")
		lines = append(lines, commentLines(c, i == p.CommentSelected, p.Now, width, th)...)
	}
	return lines, selectedLine
}

func commentsHeading(post lobsters.Post, loading bool, spinner string) string {
	switch {
	case loading:
		return strings.TrimSpace(spinner + " loading comments")
	case len(post.Comments) == 0:
		return "No comments"
	default:
		return pluralize(len(post.Comments), "comment")
	}
}

func commentLines(c lobsters.Comment, selected bool, now time.Time, width int, th tuitheme.Theme) []string {
	indent := strings.Repeat("  ", min(max(c.Depth, 0), maxCommentIndent))
	marker := "  "
	if selected {
		marker = th.Shortcut.Render("▶ ")
	}

	author := string(c.Author)
	if author == "" {
		author = "[deleted]"
	}
	header := indent + marker + th.Author.Render(author) +
		th.MetaLabel.Render(fmt.Sprintf("%s▲ %d%s%s", metaSep, c.Score, metaSep, RelativeTimeLabel(now, c.CreatedAt)))
	header = th.RenderActiveLine(selected, truncate(header, width))

	bodyIndent := indent + "  "
	body := article.Lines(c.Comment, c.CommentPlain, max(1, width-visibleLen(bodyIndent)))
	out := make([]string, 0, len(body)+1)
	out = append(out, header)
	for _, line := range body {
		out = append(out, bodyIndent+line)
	}
	return out
}

// BoxLines fits lines into exactly width columns and height rows, starting at
// top.
func BoxLines(lines []string, top, width, height int) []string {
	out := make([]string, 0, height)
	for i := top; i < len(lines) && len(out) < height; i++ {
		out = append(out, padRight(truncate(lines[i], width), width))
	}
	for len(out) < height {
		out = append(out, strings.Repeat(" ", width))
	}
	return out
}
