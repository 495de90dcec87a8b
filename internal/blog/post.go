package blog

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	nethtml "golang.org/x/net/html"
)

type Post struct {
	Slug     string
	Title    string
	Date     time.Time
	Author   string
	Summary  string
	BodyHTML string
	Tags     []string
	Image    string
}

// Site describes the studio for feed and schema output.
type Site struct {
	Name        string
	URL         string
	Description string
	Address     string
	Phone       string
}

func (s Site) PostURL(slug string) string {
	return strings.TrimRight(s.URL, "/") + "/blog/" + slug
}

// AbsoluteURL resolves a site-relative path. Absolute http(s) URLs and paths
// on a site without a URL are returned unchanged.
func (s Site) AbsoluteURL(path string) string {
	if s.URL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(s.URL, "/") + "/" + strings.TrimLeft(path, "/")
}

// SortNewestFirst orders posts by date descending, then by slug.
func SortNewestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
}

// Excerpt returns the post summary, or the first maxRunes runes of the body's
// text when there is no summary.
func Excerpt(post Post, maxRunes int) string {
	text := strings.TrimSpace(post.Summary)
	if text == "" {
		text = PlainText(post.BodyHTML)
	}
	return truncateRunes(text, maxRunes)
}

// PlainText flattens an HTML fragment to whitespace-normalised text.
func PlainText(fragment string) string {
	z := nethtml.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case nethtml.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case nethtml.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "p", "br", "li", "h1", "h2", "h3", "h4", "div":
				b.WriteByte(' ')
			}
		case nethtml.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "li", "h1", "h2", "h3", "h4", "div":
				b.WriteByte(' ')
			}
		case nethtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:maxLen-3])) + "..."
}
