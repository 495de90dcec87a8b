package app

import (
	"context"
	"fmt"

	"github.com/glabrego/inkbook/internal/blog"
	"github.com/glabrego/inkbook/internal/catalog"
	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/storage"
)

const DefaultPostLimit = 50

type CatalogLoader interface {
	Load(ctx context.Context) (catalog.Catalog, error)
}

type Repository interface {
	SaveImages(ctx context.Context, images []gallery.Image) error
	ListImages(ctx context.Context) ([]gallery.Image, error)
	SavePosts(ctx context.Context, posts []blog.Post) error
	ListPosts(ctx context.Context, limit int) ([]blog.Post, error)
	GetPost(ctx context.Context, slug string) (blog.Post, bool, error)
	LoadPreferences(ctx context.Context) (storage.Preferences, error)
	SavePreferences(ctx context.Context, prefs storage.Preferences) error
}

// FileLoader reads the catalog from a YAML file on every call.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Catalog{}, err
	}
	return catalog.Load(l.Path)
}

type Service struct {
	loader CatalogLoader
	repo   Repository
}

func NewService(loader CatalogLoader, repo Repository) *Service {
	return &Service{loader: loader, repo: repo}
}

// Reload reads the catalog, replaces the cached copy and returns the images.
func (s *Service) Reload(ctx context.Context) ([]gallery.Image, error) {
	cat, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if err := s.repo.SaveImages(ctx, cat.Images); err != nil {
		return nil, fmt.Errorf("save images to cache: %w", err)
	}
	if err := s.repo.SavePosts(ctx, cat.Posts); err != nil {
		return nil, fmt.Errorf("save posts to cache: %w", err)
	}

	images, err := s.repo.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load images from cache: %w", err)
	}
	return images, nil
}

func (s *Service) ListCached(ctx context.Context) ([]gallery.Image, error) {
	images, err := s.repo.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("load images from cache: %w", err)
	}
	return images, nil
}

func (s *Service) Posts(ctx context.Context) ([]blog.Post, error) {
	posts, err := s.repo.ListPosts(ctx, DefaultPostLimit)
	if err != nil {
		return nil, fmt.Errorf("load posts from cache: %w", err)
	}
	return posts, nil
}

// Post returns the cached post with slug, or false when there is none.
func (s *Service) Post(ctx context.Context, slug string) (blog.Post, bool, error) {
	post, ok, err := s.repo.GetPost(ctx, slug)
	if err != nil {
		return blog.Post{}, false, fmt.Errorf("load post from cache: %w", err)
	}
	return post, ok, nil
}

func (s *Service) LoadPreferences(ctx context.Context) (storage.Preferences, error) {
	prefs, err := s.repo.LoadPreferences(ctx)
	if err != nil {
		return prefs, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

func (s *Service) SavePreferences(ctx context.Context, prefs storage.Preferences) error {
	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
