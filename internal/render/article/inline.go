package article

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

func (r postRenderer) renderInlineChildren(node *nethtml.Node) string {
	parts := make([]string, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		parts = append(parts, r.renderInlineNode(child))
	}
	return strings.Join(parts, " ")
}

func (r postRenderer) renderInlineNode(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
	default:
		return ""
	}

	switch strings.ToLower(node.Data) {
	case "script", "style", "noscript", "img":
		return ""
	case "br":
		return "\n"
	case "a":
		text := normalizeInlineText(r.renderInlineChildren(node))
		href := nodeAttr(node, "href")
		if href == "" || strings.HasPrefix(href, "#") {
			return text
		}
		href = r.site.AbsoluteURL(href)
		if r.opts.StyleLinks {
			href = postLinkStyle.Render(href)
		}
		if text == "" || strings.EqualFold(text, nodeAttr(node, "href")) {
			return href
		}
		return text + " (" + href + ")"
	case "code", "kbd":
		text := normalizeInlineText(r.renderInlineChildren(node))
		if text == "" {
			return ""
		}
		return postCodeStyle.Render("`" + text + "`")
	default:
		return r.renderInlineChildren(node)
	}
}

// normalizeInlineText unescapes entities, collapses runs of whitespace within
// each line and drops the spaces joining introduces before punctuation.
func normalizeInlineText(s string) string {
	s = html.UnescapeString(s)
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part != "" {
			out = append(out, part)
		}
	}
	return inlinePunctuation.Replace(strings.Join(out, "\n"))
}

var inlinePunctuation = strings.NewReplacer(
	" .", ".",
	" ,", ",",
	" ;", ";",
	" :", ":",
	" !", "!",
	" ?", "?",
	" )", ")",
	"( ", "(",
)
