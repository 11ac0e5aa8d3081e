package article

import (
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineText renders the children of n as a single run of collapsed text.
func (r fragmentRenderer) inlineText(n *nethtml.Node) string {
	return collapseInline(r.inlineChildren(n))
}

func (r fragmentRenderer) inlineChildren(n *nethtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(r.inline(c))
	}
	return b.String()
}

func (r fragmentRenderer) inline(n *nethtml.Node) string {
	switch n.Type {
	case nethtml.TextNode:
		return n.Data
	case nethtml.ElementNode:
	default:
		return ""
	}

	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Noscript:
		return ""
	case atom.Img:
		return attr(n, "alt")
	case atom.Br:
		return "\n"
	case atom.A:
		return r.link(n)
	case atom.Code, atom.Kbd, atom.Samp, atom.Tt:
		if text := r.inlineText(n); text != "" {
			return r.style(codeStyle, "`"+text+"`")
		}
		return ""
	case atom.Em, atom.I:
		return r.style(emphasisStyle, r.inlineText(n))
	case atom.Strong, atom.B:
		return r.style(strongStyle, r.inlineText(n))
	case atom.Del, atom.S, atom.Strike:
		text := r.inlineText(n)
		if !r.opts.Styled && text != "" {
			return "~~" + text + "~~"
		}
		return r.style(strikeStyle, text)
	case atom.Q:
		if text := r.inlineText(n); text != "" {
			return `"` + text + `"`
		}
		return ""
	case atom.Sup:
		if text := r.inlineText(n); text != "" {
			return "^" + text
		}
		return ""
	default:
		return r.inlineChildren(n)
	}
}

func (r fragmentRenderer) link(n *nethtml.Node) string {
	text := r.inlineText(n)
	href := attr(n, "href")
	switch {
	case href == "":
		return text
	case isMention(text, href):
		return r.style(mentionStyle, text)
	case text == "", strings.EqualFold(text, href), isTruncatedLink(text, href):
		return r.url(href)
	default:
		return text + " (" + r.url(href) + ")"
	}
}

func (r fragmentRenderer) url(href string) string {
	if !r.opts.StyleLinks {
		return href
	}
	return r.style(linkURLStyle, href)
}

// isMention matches the profile links lobste.rs generates for "@user".
func isMention(text, href string) bool {
	return strings.HasPrefix(text, "@") && (strings.Contains(href, "/~") || strings.Contains(href, "/u/"))
}

// isTruncatedLink matches the shortened link text lobste.rs generates for
// long bare URLs, e.g. "example.com/some/long/pa…".
func isTruncatedLink(text, href string) bool {
	prefix, ok := strings.CutSuffix(text, "…")
	if !ok || prefix == "" {
		return false
	}
	bare := strings.TrimPrefix(strings.TrimPrefix(href, "https://"), "http://")
	return strings.HasPrefix(bare, prefix) || strings.HasPrefix(href, prefix)
}

// collapseInline squeezes whitespace within each line and drops empty lines.
func collapseInline(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
