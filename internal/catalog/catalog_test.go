package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

const sampleCatalog = `
images:
  - id: rose-1
    title: Rose
    styles: [floral]
    src: /gallery/rose.jpg
  - id: skull-1
    title: Skull
    styles: [blackwork]
    src: /gallery/skull.jpg
    description: Sugar skull with marigolds
  - id: rose-2
    title: Wild Rose
    styles: [" floral ", color, floral]
    src: /gallery/wild-rose.jpg
posts:
  - slug: aftercare
    title: Aftercare Basics
    date: "2026-02-10"
    author: Mara
    body: "<p>Keep it clean.</p>"
    tags: [guide]
`

func TestParse_ImagesAndPosts(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(cat.Images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(cat.Images))
	}
	if diff := cmp.Diff([]string{"floral", "color"}, cat.Images[2].Styles); diff != "" {
		t.Fatalf("styles not normalised (-want +got):\n%s", diff)
	}
	if cat.Images[1].Description != "Sugar skull with marigolds" {
		t.Fatalf("unexpected description: %q", cat.Images[1].Description)
	}
	if len(cat.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(cat.Posts))
	}
	want := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	if !cat.Posts[0].Date.Equal(want) {
		t.Fatalf("unexpected post date: %v", cat.Posts[0].Date)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := map[string]string{
		"missing id":      "images:\n  - title: A\n    styles: [x]\n    src: a.jpg\n",
		"duplicate id":    "images:\n  - {id: a, title: A, styles: [x], src: a.jpg}\n  - {id: a, title: B, styles: [x], src: b.jpg}\n",
		"no styles":       "images:\n  - {id: a, title: A, src: a.jpg}\n",
		"empty style":     "images:\n  - {id: a, title: A, styles: [\" \"], src: a.jpg}\n",
		"reserved style":  "images:\n  - {id: a, title: A, styles: [all], src: a.jpg}\n",
		"missing src":     "images:\n  - {id: a, title: A, styles: [x]}\n",
		"bad post date":   "posts:\n  - {slug: a, title: A, date: yesterday}\n",
		"post with no id": "posts:\n  - {title: A, date: \"2026-01-01\"}\n",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("images: [\n"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher returned error: %v", err)
	}
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
		goleak.VerifyNone(t)
	})

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}
	if err := os.WriteFile(path, []byte(sampleCatalog+"\n"), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("expected change signal")
	}
}
