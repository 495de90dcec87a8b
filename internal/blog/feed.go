package blog

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/feeds"
)

const feedExcerptRunes = 280

// RSS renders posts as an RSS 2.0 document, newest first. The channel date is
// the newest post's date so output is stable for unchanged content.
func RSS(site Site, posts []Post) (string, error) {
	if strings.TrimSpace(site.URL) == "" {
		return "", fmt.Errorf("site URL is required")
	}
	ordered := append([]Post(nil), posts...)
	SortNewestFirst(ordered)

	feed := &feeds.Feed{
		Title:       site.Name + " Blog",
		Link:        &feeds.Link{Href: strings.TrimRight(site.URL, "/") + "/blog"},
		Description: site.Description,
	}
	if len(ordered) > 0 {
		feed.Created = ordered[0].Date.UTC()
	} else {
		feed.Created = time.Unix(0, 0).UTC()
	}

	for _, post := range ordered {
		link := site.PostURL(post.Slug)
		item := &feeds.Item{
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: Excerpt(post, feedExcerptRunes),
			Created:     post.Date.UTC(),
		}
		if post.Author != "" {
			item.Author = &feeds.Author{Name: post.Author}
		}
		feed.Items = append(feed.Items, item)
	}

	out, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("render rss: %w", err)
	}
	return out, nil
}
