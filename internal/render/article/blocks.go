package article

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const codeIndent = "    "

var bullets = []string{"• ", "◦ ", "▪ "}

// blockAtoms end the current inline run when they appear among its siblings.
var blockAtoms = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Details: true, atom.Summary: true, atom.Figure: true, atom.Section: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true, atom.Tr: true,
}

// blockList collects rendered blocks, one blank line apart unless tight.
type blockList []string

func (b *blockList) add(block []string, tight bool) {
	block = trimBlankLines(block)
	if len(block) == 0 {
		return
	}
	if len(*b) > 0 && !tight {
		*b = append(*b, "")
	}
	*b = append(*b, block...)
}

// blocks renders sibling nodes. Inline content between block elements is
// gathered into paragraphs. depth is the current list nesting.
func (r fragmentRenderer) blocks(nodes []*nethtml.Node, depth int) []string {
	var out blockList
	var run strings.Builder
	flush := func() {
		out.add(wrapText(collapseInline(run.String()), r.width), false)
		run.Reset()
	}

	for _, n := range nodes {
		if n.Type != nethtml.ElementNode || !blockAtoms[n.DataAtom] {
			run.WriteString(r.inline(n))
			continue
		}
		flush()
		out.add(r.block(n, depth), tightBlock(n, depth))
	}
	flush()
	return trimBlankLines(out)
}

// tightBlock reports whether n follows the previous block without a blank
// line.
func tightBlock(n *nethtml.Node, depth int) bool {
	switch n.DataAtom {
	case atom.Ul, atom.Ol:
		return depth > 0
	case atom.Tr, atom.Thead, atom.Tbody, atom.Tfoot, atom.Dd, atom.Li:
		return true
	}
	return false
}

func (r fragmentRenderer) block(n *nethtml.Node, depth int) []string {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		prefix := strings.Repeat("#", int(n.Data[1]-'0')) + " "
		return r.styleLines(headingStyle, r.hanging(r.inlineText(n), prefix, strings.Repeat(" ", len(prefix))))
	case atom.Blockquote:
		return r.quote(n, depth)
	case atom.Ul, atom.Ol:
		return r.list(n, depth)
	case atom.Li:
		return r.listItem(n, depth, bullets[min(depth, len(bullets)-1)])
	case atom.Pre:
		return r.code(n)
	case atom.Hr:
		return []string{r.style(ruleStyle, strings.Repeat("─", min(r.width, 24)))}
	case atom.Summary:
		return r.hanging(r.inlineText(n), "▸ ", "  ")
	case atom.Dt:
		return r.styleLines(strongStyle, wrapText(r.inlineText(n), r.width))
	case atom.Dd:
		return r.hanging(r.inlineText(n), "  ", "  ")
	case atom.Tr:
		return r.tableRow(n)
	default:
		return r.blocks(children(n), depth)
	}
}

func (r fragmentRenderer) quote(n *nethtml.Node, depth int) []string {
	inner := r.narrower(2).blocks(children(n), depth)
	bar := r.style(quoteBarStyle, "│")
	for i, line := range inner {
		if line == "" {
			inner[i] = bar
			continue
		}
		inner[i] = bar + " " + r.style(quoteTextStyle, line)
	}
	return inner
}

func (r fragmentRenderer) list(n *nethtml.Node, depth int) []string {
	ordered := n.DataAtom == atom.Ol
	num := 1
	if start, err := strconv.Atoi(attr(n, "start")); err == nil {
		num = start
	}

	var out []string
	for _, item := range children(n) {
		if item.DataAtom != atom.Li {
			continue
		}
		marker := bullets[min(depth, len(bullets)-1)]
		if ordered {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		out = append(out, r.listItem(item, depth, marker)...)
	}
	return out
}

// listItem renders the item body indented under marker.
func (r fragmentRenderer) listItem(n *nethtml.Node, depth int, marker string) []string {
	width := ansi.StringWidth(marker)
	body := r.narrower(width).blocks(children(n), depth+1)
	return indent(body, marker, strings.Repeat(" ", width))
}

func (r fragmentRenderer) code(n *nethtml.Node) []string {
	text := strings.ReplaceAll(textContent(n), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\t", codeIndent)
	width := max(1, r.width-len(codeIndent))

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " ")
		if line == "" {
			out = append(out, "")
			continue
		}
		for _, part := range strings.Split(ansi.Hardwrap(line, width, true), "\n") {
			out = append(out, codeIndent+r.style(codeStyle, part))
		}
	}
	return out
}

func (r fragmentRenderer) tableRow(n *nethtml.Node) []string {
	var cells []string
	for _, c := range children(n) {
		if c.DataAtom != atom.Td && c.DataAtom != atom.Th {
			continue
		}
		text := strings.ReplaceAll(r.inlineText(c), "\n", " ")
		if c.DataAtom == atom.Th {
			text = r.style(strongStyle, text)
		}
		cells = append(cells, text)
	}
	return wrapText(strings.Join(cells, " │ "), r.width)
}

// hanging wraps text with first before the opening line and rest before the
// others.
func (r fragmentRenderer) hanging(text, first, rest string) []string {
	width := max(ansi.StringWidth(first), ansi.StringWidth(rest))
	return indent(trimBlankLines(wrapText(text, r.width-width)), first, rest)
}

func indent(lines []string, first, rest string) []string {
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = first + line
		case line == "":
		default:
			lines[i] = rest + line
		}
	}
	return lines
}
