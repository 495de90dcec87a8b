package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glabrego/inkbook/internal/blog"
	"github.com/glabrego/inkbook/internal/catalog"
	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/storage"
)

type fakeLoader struct {
	cat catalog.Catalog
	err error
}

func (f fakeLoader) Load(context.Context) (catalog.Catalog, error) {
	if f.err != nil {
		return catalog.Catalog{}, f.err
	}
	return f.cat, nil
}

type fakeRepo struct {
	images    []gallery.Image
	posts     []blog.Post
	prefs     storage.Preferences
	saveErr   error
	listErr   error
	savedPref bool
}

func (f *fakeRepo) SaveImages(_ context.Context, images []gallery.Image) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.images = append([]gallery.Image(nil), images...)
	return nil
}

func (f *fakeRepo) ListImages(context.Context) ([]gallery.Image, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.images, nil
}

func (f *fakeRepo) SavePosts(_ context.Context, posts []blog.Post) error {
	f.posts = append([]blog.Post(nil), posts...)
	return nil
}

func (f *fakeRepo) ListPosts(context.Context, int) ([]blog.Post, error) {
	return f.posts, nil
}

func (f *fakeRepo) GetPost(_ context.Context, slug string) (blog.Post, bool, error) {
	for _, post := range f.posts {
		if post.Slug == slug {
			return post, true, nil
		}
	}
	return blog.Post{}, false, nil
}

func (f *fakeRepo) LoadPreferences(context.Context) (storage.Preferences, error) {
	return f.prefs, nil
}

func (f *fakeRepo) SavePreferences(_ context.Context, prefs storage.Preferences) error {
	f.prefs = prefs
	f.savedPref = true
	return nil
}

func TestService_Reload_SavesCatalog(t *testing.T) {
	loader := fakeLoader{cat: catalog.Catalog{
		Images: []gallery.Image{{ID: "1", Title: "Rose", Styles: []string{"floral"}, Src: "/r.jpg"}},
		Posts:  []blog.Post{{Slug: "hello", Title: "Hello", Date: time.Now().UTC()}},
	}}
	repo := &fakeRepo{}

	svc := NewService(loader, repo)
	images, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if len(images) != 1 || images[0].ID != "1" {
		t.Fatalf("unexpected images: %+v", images)
	}
	if len(repo.posts) != 1 {
		t.Fatalf("expected posts cached, got %+v", repo.posts)
	}

	post, ok, err := svc.Post(context.Background(), "hello")
	if err != nil || !ok || post.Title != "Hello" {
		t.Fatalf("expected cached post, got %+v ok=%v err=%v", post, ok, err)
	}
}

func TestService_Reload_WrapsLoaderError(t *testing.T) {
	svc := NewService(fakeLoader{err: catalog.ErrInvalid}, &fakeRepo{})
	_, err := svc.Reload(context.Background())
	if !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected wrapped ErrInvalid, got %v", err)
	}
	if !strings.Contains(err.Error(), "load catalog") {
		t.Fatalf("expected context in error, got %v", err)
	}
}

func TestService_Reload_SaveError(t *testing.T) {
	svc := NewService(fakeLoader{}, &fakeRepo{saveErr: errors.New("disk full")})
	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected save error")
	}
}

func TestService_Preferences(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(fakeLoader{}, repo)
	if err := svc.SavePreferences(context.Background(), storage.Preferences{PageSize: 6}); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	prefs, err := svc.LoadPreferences(context.Background())
	if err != nil || prefs.PageSize != 6 || !repo.savedPref {
		t.Fatalf("unexpected preferences: %+v err=%v", prefs, err)
	}
}

func TestFileLoader_ReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	raw := "images:\n  - {id: a, title: A, styles: [floral], src: /a.jpg}\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	cat, err := FileLoader{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cat.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(cat.Images))
	}
}
