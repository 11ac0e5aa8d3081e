// Package article renders the HTML fragments lobste.rs returns for story
// descriptions and comments into wrapped terminal lines.
package article

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Options struct {
	StyleLinks bool
	// Styled turns off every lipgloss style when false.
	Styled bool
}

var DefaultOptions = Options{
	StyleLinks: true,
	Styled:     true,
}

type fragmentRenderer struct {
	width int
	opts  Options
}

// narrower returns a renderer for content indented by n columns.
func (r fragmentRenderer) narrower(n int) fragmentRenderer {
	r.width = max(1, r.width-n)
	return r
}

// Lines renders a fragment, such as a story description or a comment body,
// into lines no wider than width. plain is used when the fragment is empty or
// renders to nothing.
func Lines(fragment, plain string, width int) []string {
	return LinesWithOptions(fragment, plain, width, DefaultOptions)
}

func LinesWithOptions(fragment, plain string, width int, opts Options) []string {
	if lines := renderFragment(fragment, width, opts); len(lines) > 0 {
		return lines
	}
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return nil
	}
	return trimBlankLines(wrapText(plain, width))
}

// Text flattens a fragment to unstyled text at a fixed width.
func Text(fragment, plain string) string {
	return strings.Join(LinesWithOptions(fragment, plain, 80, Options{}), "\n")
}

func renderFragment(raw string, width int, opts Options) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	context := &nethtml.Node{Type: nethtml.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := nethtml.ParseFragment(strings.NewReader(raw), context)
	if err != nil {
		return trimBlankLines(wrapText(html.UnescapeString(raw), width))
	}
	r := fragmentRenderer{width: max(1, width), opts: opts}
	return r.blocks(nodes, 0)
}

// wrapText collapses runs of whitespace and wraps each line of text on word
// boundaries, breaking words wider than width. ANSI styling is kept.
func wrapText(text string, width int) []string {
	width = max(1, width)
	out := make([]string, 0, 4)
	for _, p := range strings.Split(text, "\n") {
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			out = append(out, "")
			continue
		}
		for _, line := range strings.Split(ansi.Wrap(p, width, ""), "\n") {
			out = append(out, strings.TrimRight(line, " "))
		}
	}
	return out
}

// trimBlankLines drops leading and trailing blank lines and squeezes inner
// runs of them to one.
func trimBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		blank := strings.TrimSpace(ansi.Strip(line)) == ""
		if blank && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		if blank {
			line = ""
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func children(n *nethtml.Node) []*nethtml.Node {
	out := make([]*nethtml.Node, 0, 4)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// textContent is the raw text under n with whitespace preserved.
func textContent(n *nethtml.Node) string {
	if n.Type == nethtml.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
