package blog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const schemaContext = "https://schema.org"

type schemaPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type schemaOrganization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type blogPostingSchema struct {
	Context          string             `json:"@context"`
	Type             string             `json:"@type"`
	Headline         string             `json:"headline"`
	Description      string             `json:"description,omitempty"`
	DatePublished    string             `json:"datePublished"`
	URL              string             `json:"url"`
	MainEntityOfPage string             `json:"mainEntityOfPage"`
	Image            string             `json:"image,omitempty"`
	Keywords         string             `json:"keywords,omitempty"`
	Author           *schemaPerson      `json:"author,omitempty"`
	Publisher        schemaOrganization `json:"publisher"`
}

type localBusinessSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	Telephone   string `json:"telephone,omitempty"`
}

// BlogPostingSchema returns the schema.org BlogPosting JSON-LD for post.
func BlogPostingSchema(site Site, post Post) ([]byte, error) {
	link := site.PostURL(post.Slug)
	doc := blogPostingSchema{
		Context:          schemaContext,
		Type:             "BlogPosting",
		Headline:         post.Title,
		Description:      Excerpt(post, 160),
		DatePublished:    post.Date.UTC().Format(time.RFC3339),
		URL:              link,
		MainEntityOfPage: link,
		Keywords:         strings.Join(post.Tags, ", "),
		Publisher:        schemaOrganization{Type: "Organization", Name: site.Name, URL: site.URL},
	}
	if post.Image != "" {
		doc.Image = site.AbsoluteURL(post.Image)
	}
	if post.Author != "" {
		doc.Author = &schemaPerson{Type: "Person", Name: post.Author}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode blog posting schema: %w", err)
	}
	return out, nil
}

// LocalBusinessSchema returns the schema.org TattooParlor JSON-LD for site.
func LocalBusinessSchema(site Site) ([]byte, error) {
	doc := localBusinessSchema{
		Context:     schemaContext,
		Type:        "TattooParlor",
		Name:        site.Name,
		URL:         site.URL,
		Description: site.Description,
		Address:     site.Address,
		Telephone:   site.Phone,
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode local business schema: %w", err)
	}
	return out, nil
}
