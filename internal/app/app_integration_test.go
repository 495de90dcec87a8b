package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glabrego/inkbook/internal/gallery"
	"github.com/glabrego/inkbook/internal/storage"
)

const integrationCatalog = `
images:
  - {id: "1", title: Rose, styles: [floral], src: /g/1.jpg}
  - {id: "2", title: Skull, styles: [blackwork], src: /g/2.jpg}
  - {id: "3", title: Wild Rose, styles: [floral, color], src: /g/3.jpg}
posts:
  - {slug: welcome, title: Welcome, date: "2026-01-15", body: "<p>Hi</p>"}
`

func newIntegrationService(t *testing.T, ctx context.Context, catalogPath string) *Service {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(filepath.Dir(catalogPath), "inkbook-integration.db"))
	if err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	if err := repo.Init(ctx); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	return NewService(FileLoader{Path: catalogPath}, repo)
}

func writeCatalog(t *testing.T, path, raw string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

func TestIntegration_ReloadCacheAndFilter(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, catalogPath, integrationCatalog)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := newIntegrationService(t, ctx, catalogPath)
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	cached, err := svc.ListCached(ctx)
	if err != nil {
		t.Fatalf("ListCached returned error: %v", err)
	}
	g := gallery.New(cached, gallery.NewState(), 1)
	g.Store().UpdateFilter(gallery.DimensionStyle, "floral")
	snap := g.Snapshot()
	if snap.Matched != 2 || len(snap.Visible) != 1 || snap.Visible[0].ID != "1" {
		t.Fatalf("unexpected snapshot after reload: %+v", snap)
	}

	posts, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "welcome" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestIntegration_ReloadDropsPostsRemovedFromCatalog(t *testing.T) {
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, catalogPath, `
posts:
  - {slug: keep, title: Keep, date: "2026-01-10"}
  - {slug: retracted, title: Retracted, date: "2026-01-20"}
`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := newIntegrationService(t, ctx, catalogPath)
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatalf("first Reload returned error: %v", err)
	}

	writeCatalog(t, catalogPath, `
posts:
  - {slug: keep, title: Keep, date: "2026-01-10"}
`)
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatalf("second Reload returned error: %v", err)
	}

	posts, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(posts) != 1 || posts[0].Slug != "keep" {
		t.Fatalf("expected only keep after reload, got %+v", posts)
	}
	if _, ok, err := svc.Post(ctx, "retracted"); err != nil || ok {
		t.Fatalf("expected retracted post gone, ok=%v err=%v", ok, err)
	}
}

func TestIntegration_PostFindsPostsOlderThanFeedLimit(t *testing.T) {
	var raw strings.Builder
	raw.WriteString("posts:\n")
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultPostLimit+5; i++ {
		fmt.Fprintf(&raw, "  - {slug: post-%02d, title: Post %d, date: %q}\n", i, i, base.AddDate(0, 0, i).Format(time.DateOnly))
	}
	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, catalogPath, raw.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	svc := newIntegrationService(t, ctx, catalogPath)
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	posts, err := svc.Posts(ctx)
	if err != nil {
		t.Fatalf("Posts returned error: %v", err)
	}
	if len(posts) != DefaultPostLimit {
		t.Fatalf("expected feed capped at %d posts, got %d", DefaultPostLimit, len(posts))
	}

	post, ok, err := svc.Post(ctx, "post-00")
	if err != nil {
		t.Fatalf("Post returned error: %v", err)
	}
	if !ok || post.Title != "Post 0" {
		t.Fatalf("expected oldest post, got %+v ok=%v", post, ok)
	}
}
