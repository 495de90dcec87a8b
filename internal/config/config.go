package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/glabrego/inkbook/internal/blog"
	"github.com/glabrego/inkbook/internal/gallery"
)

const (
	defaultCatalogPath = "content/catalog.yaml"
	defaultDBPath      = "inkbook.db"
	defaultLogPath     = "inkbook.log"
	defaultSiteName    = "Studio"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	CatalogPath string
	DBPath      string
	LogPath     string
	PageSize    int
	Site        blog.Site
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		CatalogPath: os.Getenv("INKBOOK_CATALOG_PATH"),
		DBPath:      os.Getenv("INKBOOK_DB_PATH"),
		LogPath:     os.Getenv("INKBOOK_LOG_PATH"),
		Site: blog.Site{
			Name:        os.Getenv("INKBOOK_SITE_NAME"),
			URL:         os.Getenv("INKBOOK_SITE_URL"),
			Description: os.Getenv("INKBOOK_SITE_DESCRIPTION"),
			Address:     os.Getenv("INKBOOK_SITE_ADDRESS"),
			Phone:       os.Getenv("INKBOOK_SITE_PHONE"),
		},
	}

	if cfg.CatalogPath == "" {
		cfg.CatalogPath = defaultCatalogPath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}
	if cfg.Site.Name == "" {
		cfg.Site.Name = defaultSiteName
	}
	cfg.PageSize = gallery.DefaultPageSize
	if raw := strings.TrimSpace(os.Getenv("INKBOOK_PAGE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("INKBOOK_PAGE_SIZE must be an integer: %s", raw)
		}
		cfg.PageSize = n
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.CatalogPath == "" {
		return errors.New("CatalogPath is required")
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.PageSize < 1 || c.PageSize > 500 {
		return fmt.Errorf("PageSize must be between 1 and 500: %d", c.PageSize)
	}
	if c.Site.URL != "" {
		if !strings.HasPrefix(c.Site.URL, "http://") && !strings.HasPrefix(c.Site.URL, "https://") {
			return fmt.Errorf("site URL must be http or https: %s", c.Site.URL)
		}
		if strings.HasSuffix(c.Site.URL, "/") {
			return fmt.Errorf("site URL must not end with '/': %s", c.Site.URL)
		}
	}
	return nil
}

// RequireSiteURL reports an error when commands that publish links run
// without a site URL.
func (c Config) RequireSiteURL() error {
	if c.Site.URL == "" {
		return errors.New("INKBOOK_SITE_URL is required")
	}
	return nil
}
