package article

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

func (r postRenderer) renderNodes(nodes []*nethtml.Node, listDepth int) []string {
	lines := make([]string, 0, len(nodes)*2)
	inline := make([]string, 0, 4)
	appendBlock := func(block []string) {
		if len(block) == 0 {
			return
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	flushInline := func() {
		text := normalizeInlineText(strings.Join(inline, " "))
		inline = inline[:0]
		if text != "" {
			appendBlock(wrapText(text, r.width))
		}
	}

	for _, node := range nodes {
		switch node.Type {
		case nethtml.TextNode:
			inline = append(inline, node.Data)
		case nethtml.ElementNode:
			if !isBlockElement(node.Data) {
				inline = append(inline, r.renderInlineNode(node))
				continue
			}
			flushInline()
			appendBlock(r.renderBlock(node, listDepth))
		}
	}
	flushInline()
	return trimBlankLines(lines)
}

func (r postRenderer) renderBlock(node *nethtml.Node, listDepth int) []string {
	tag := strings.ToLower(node.Data)
	switch tag {
	case "script", "style", "noscript":
		return nil
	case "h1", "h2", "h3", "h4", "h5", "h6":
		prefix := headingPrefix(int(tag[1] - '0'))
		text := normalizeInlineText(r.renderInlineChildren(node))
		return styleNonBlankLines(
			wrapPrefixedText(text, r.width, prefix, strings.Repeat(" ", visibleLen(prefix))),
			postHeadingStyle,
		)
	case "blockquote":
		inner := r.renderNodes(elementChildren(node), listDepth)
		if len(inner) == 0 {
			return nil
		}
		out := make([]string, 0, len(inner))
		for _, line := range inner {
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				continue
			}
			out = append(out, postQuotePrefix+postQuoteText.Render(line))
		}
		return out
	case "ul":
		return r.renderList(node, false, listDepth+1)
	case "ol":
		return r.renderList(node, true, listDepth+1)
	case "li":
		return r.renderListItem(node, listDepth, unorderedListMarker(max(1, listDepth)))
	case "figcaption":
		text := normalizeInlineText(r.renderInlineChildren(node))
		return styleNonBlankLines(wrapPrefixedText(text, r.width, "~ ", "  "), postCaptionStyle)
	case "img":
		if r.opts.ImageMode == ImageModeNone {
			return nil
		}
		return r.renderImageLabel(node)
	case "pre":
		text := strings.ReplaceAll(collectRawText(node), "\r\n", "\n")
		raw := strings.Split(text, "\n")
		out := make([]string, 0, len(raw))
		for _, line := range raw {
			line = strings.TrimRight(line, " \t")
			if line == "" {
				out = append(out, "")
				continue
			}
			out = append(out, "    "+postCodeStyle.Render(line))
		}
		return trimBlankLines(out)
	case "hr":
		return []string{strings.Repeat("-", min(max(r.width, 3), 24))}
	default:
		if hasBlockChild(node) {
			return r.renderNodes(elementChildren(node), listDepth)
		}
		text := normalizeInlineText(r.renderInlineChildren(node))
		if text == "" {
			return nil
		}
		return wrapText(text, r.width)
	}
}

func (r postRenderer) renderImageLabel(node *nethtml.Node) []string {
	label := nodeAttr(node, "alt")
	if label == "" {
		label = nodeAttr(node, "title")
	}
	if label == "" {
		src := nodeAttr(node, "src")
		label = src[strings.LastIndex(src, "/")+1:]
	}
	if label == "" {
		return nil
	}
	prefix := postImageLabel.Render("Image") + " "
	lines := wrapPrefixedText(label, r.width, prefix, strings.Repeat(" ", visibleLen(prefix)))
	for i, line := range lines {
		if i == 0 {
			lines[i] = prefix + postImageText.Render(strings.TrimPrefix(line, prefix))
			continue
		}
		lines[i] = postImageText.Render(line)
	}
	return lines
}

func (r postRenderer) renderList(node *nethtml.Node, ordered bool, listDepth int) []string {
	lines := make([]string, 0, 16)
	index := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != nethtml.ElementNode || strings.ToLower(child.Data) != "li" {
			continue
		}
		index++
		marker := unorderedListMarker(listDepth)
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
		}
		lines = append(lines, r.renderListItem(child, listDepth, marker)...)
	}
	return lines
}

func (r postRenderer) renderListItem(node *nethtml.Node, listDepth int, marker string) []string {
	indent := strings.Repeat("  ", max(0, listDepth-1))
	firstPrefix := indent + marker
	restPrefix := indent + strings.Repeat(" ", visibleLen(marker))

	parts := make([]string, 0, 4)
	var nested []*nethtml.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode {
			switch strings.ToLower(child.Data) {
			case "ul", "ol":
				nested = append(nested, child)
				continue
			}
		}
		parts = append(parts, r.renderInlineNode(child))
	}

	lines := wrapPrefixedText(strings.Join(parts, " "), r.width, firstPrefix, restPrefix)
	for _, list := range nested {
		lines = append(lines, r.renderList(list, strings.EqualFold(list.Data, "ol"), listDepth+1)...)
	}
	return lines
}

func wrapPrefixedText(text string, width int, firstPrefix, restPrefix string) []string {
	text = normalizeInlineText(text)
	if text == "" {
		return nil
	}
	firstWidth := max(1, width-visibleLen(firstPrefix))
	restWidth := max(1, width-visibleLen(restPrefix))

	out := make([]string, 0, 4)
	for _, p := range strings.Split(text, "\n") {
		lineWidth := restWidth
		if len(out) == 0 {
			lineWidth = firstWidth
		}
		for _, line := range wrapText(p, lineWidth) {
			if len(out) == 0 {
				out = append(out, firstPrefix+line)
				continue
			}
			out = append(out, restPrefix+line)
		}
	}
	return out
}

func headingPrefix(level int) string {
	level = min(max(level, 1), len(postHeadingBars))
	return postHeadingBars[level-1].Render("▌") + strings.Repeat(" ", max(1, level-1))
}

func unorderedListMarker(listDepth int) string {
	switch listDepth {
	case 1:
		return "• "
	case 2:
		return "◦ "
	default:
		return "▪ "
	}
}

func styleNonBlankLines(lines []string, style lipgloss.Style) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		out[i] = style.Render(line)
	}
	return out
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "main", "header", "footer", "aside",
		"blockquote", "ul", "ol", "li", "img", "pre", "figure", "figcaption", "hr":
		return true
	default:
		return false
	}
}

func hasBlockChild(node *nethtml.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && isBlockElement(child.Data) {
			return true
		}
	}
	return false
}
