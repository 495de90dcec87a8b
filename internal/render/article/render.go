// Package article renders blog posts as styled terminal text.
package article

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/inkbook/internal/blog"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ImageMode int

const (
	ImageModeLabel ImageMode = iota
	ImageModeNone
)

type Options struct {
	StyleLinks bool
	ImageMode  ImageMode
}

var DefaultOptions = Options{
	StyleLinks: true,
	ImageMode:  ImageModeLabel,
}

type postRenderer struct {
	width int
	site  blog.Site
	opts  Options
}

// Lines renders the post header followed by its body.
func Lines(post blog.Post, site blog.Site, width int) []string {
	lines := HeaderLines(post, width)
	body := BodyLines(post, site, width, DefaultOptions)
	if len(body) > 0 {
		lines = append(lines, "")
		lines = append(lines, body...)
	}
	return lines
}

func HeaderLines(post blog.Post, width int) []string {
	lines := styleNonBlankLines(wrapText(post.Title, width), postTitleStyle)
	meta := make([]string, 0, 2)
	if !post.Date.IsZero() {
		meta = append(meta, post.Date.Format("January 2, 2006"))
	}
	if post.Author != "" {
		meta = append(meta, post.Author)
	}
	if len(meta) > 0 {
		lines = append(lines, postMetaStyle.Render(strings.Join(meta, " · ")))
	}
	if len(post.Tags) > 0 {
		tags := make([]string, len(post.Tags))
		for i, tag := range post.Tags {
			tags[i] = "#" + tag
		}
		lines = append(lines, postTagStyle.Render(strings.Join(tags, " ")))
	}
	return lines
}

// BodyLines renders the post's HTML body, falling back to its summary when
// the body is empty or renders to nothing.
func BodyLines(post blog.Post, site blog.Site, width int, opts Options) []string {
	if lines := renderFragment(post.BodyHTML, width, site, opts); len(lines) > 0 {
		return lines
	}
	summary := strings.TrimSpace(post.Summary)
	if summary == "" {
		return nil
	}
	return wrapText(summary, width)
}

func renderFragment(raw string, width int, site blog.Site, opts Options) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}
	body := findBodyNode(doc)
	if body == nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}
	r := postRenderer{width: max(1, width), site: site, opts: opts}
	return trimBlankLines(r.renderNodes(elementChildren(body), 0))
}

// ImageURLs lists the post's cover image and the images in its body, in
// order, resolved against the site and without duplicates.
func ImageURLs(post blog.Post, site blog.Site) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		src = site.AbsoluteURL(src)
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		out = append(out, src)
	}

	add(post.Image)
	if strings.TrimSpace(post.BodyHTML) == "" {
		return out
	}
	tokenizer := nethtml.NewTokenizer(strings.NewReader(post.BodyHTML))
	for {
		switch tokenizer.Next() {
		case nethtml.ErrorToken:
			return out
		case nethtml.StartTagToken, nethtml.SelfClosingTagToken:
			tok := tokenizer.Token()
			if tok.Data != "img" {
				continue
			}
			for _, attr := range tok.Attr {
				if attr.Key == "src" {
					add(attr.Val)
				}
			}
		}
	}
}

func trimBlankLines(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	end := len(lines) - 1
	for end >= start && strings.TrimSpace(lines[end]) == "" {
		end--
	}
	if end < start {
		return nil
	}
	out := make([]string, 0, end-start+1)
	prevBlank := false
	for i := start; i <= end; i++ {
		blank := strings.TrimSpace(lines[i]) == ""
		if blank && prevBlank {
			continue
		}
		out = append(out, lines[i])
		prevBlank = blank
	}
	return out
}

// wrapText wraps each paragraph of text on word boundaries. Words longer
// than width are split.
func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		lineLen := 0
		for _, word := range words {
			runes := []rune(word)
			for len(runes) > width {
				if line != "" {
					out = append(out, line)
					line, lineLen = "", 0
				}
				out = append(out, string(runes[:width]))
				runes = runes[width:]
			}
			word = string(runes)
			wordLen := len(runes)
			switch {
			case line == "":
				line, lineLen = word, wordLen
			case lineLen+1+wordLen <= width:
				line += " " + word
				lineLen += 1 + wordLen
			default:
				out = append(out, line)
				line, lineLen = word, wordLen
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(reANSICodes.ReplaceAllString(s, ""))
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func elementChildren(node *nethtml.Node) []*nethtml.Node {
	children := make([]*nethtml.Node, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.TextNode && strings.TrimSpace(child.Data) == "" {
			continue
		}
		children = append(children, child)
	}
	return children
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func collectRawText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRawText(child))
	}
	return b.String()
}
