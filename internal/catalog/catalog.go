// Package catalog loads the studio's static content file: the gallery image
// collection and the blog posts.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/glabrego/inkbook/internal/blog"
	"github.com/glabrego/inkbook/internal/gallery"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid catalog")

type Catalog struct {
	Images []gallery.Image
	Posts  []blog.Post
}

type fileImage struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Styles      []string `yaml:"styles"`
	Src         string   `yaml:"src"`
	Description string   `yaml:"description"`
}

type filePost struct {
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Author  string   `yaml:"author"`
	Summary string   `yaml:"summary"`
	Body    string   `yaml:"body"`
	Tags    []string `yaml:"tags"`
	Image   string   `yaml:"image"`
}

type file struct {
	Images []fileImage `yaml:"images"`
	Posts  []filePost  `yaml:"posts"`
}

func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(raw)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

func Parse(raw []byte) (Catalog, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog yaml: %w", err)
	}

	images, err := convertImages(f.Images)
	if err != nil {
		return Catalog{}, err
	}
	posts, err := convertPosts(f.Posts)
	if err != nil {
		return Catalog{}, err
	}
	return Catalog{Images: images, Posts: posts}, nil
}

func convertImages(in []fileImage) ([]gallery.Image, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]gallery.Image, 0, len(in))
	for i, fi := range in {
		id := strings.TrimSpace(fi.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: image #%d has no id", ErrInvalid, i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate image id %q", ErrInvalid, id)
		}
		seen[id] = struct{}{}

		title := strings.TrimSpace(fi.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: image %q has no title", ErrInvalid, id)
		}
		if strings.TrimSpace(fi.Src) == "" {
			return nil, fmt.Errorf("%w: image %q has no src", ErrInvalid, id)
		}
		styles, err := normalizeStyles(fi.Styles)
		if err != nil {
			return nil, fmt.Errorf("%w: image %q: %v", ErrInvalid, id, err)
		}

		out = append(out, gallery.Image{
			ID:          id,
			Title:       title,
			Styles:      styles,
			Src:         strings.TrimSpace(fi.Src),
			Description: strings.TrimSpace(fi.Description),
		})
	}
	return out, nil
}

// normalizeStyles trims tags and drops repeats, keeping first occurrence.
func normalizeStyles(in []string) ([]string, error) {
	if len(in) == 0 {
		return nil, errors.New("at least one style is required")
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		style := strings.TrimSpace(raw)
		if style == "" {
			return nil, errors.New("empty style tag")
		}
		if style == gallery.AllStyles {
			return nil, fmt.Errorf("style %q is reserved", gallery.AllStyles)
		}
		if _, ok := seen[style]; ok {
			continue
		}
		seen[style] = struct{}{}
		out = append(out, style)
	}
	return out, nil
}

func convertPosts(in []filePost) ([]blog.Post, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]blog.Post, 0, len(in))
	for i, fp := range in {
		slug := strings.TrimSpace(fp.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: post #%d has no slug", ErrInvalid, i+1)
		}
		if _, ok := seen[slug]; ok {
			return nil, fmt.Errorf("%w: duplicate post slug %q", ErrInvalid, slug)
		}
		seen[slug] = struct{}{}
		if strings.TrimSpace(fp.Title) == "" {
			return nil, fmt.Errorf("%w: post %q has no title", ErrInvalid, slug)
		}
		date, err := parseDate(fp.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: post %q: %v", ErrInvalid, slug, err)
		}
		out = append(out, blog.Post{
			Slug:     slug,
			Title:    strings.TrimSpace(fp.Title),
			Date:     date,
			Author:   strings.TrimSpace(fp.Author),
			Summary:  strings.TrimSpace(fp.Summary),
			BodyHTML: fp.Body,
			Tags:     fp.Tags,
			Image:    strings.TrimSpace(fp.Image),
		})
	}
	return out, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}
