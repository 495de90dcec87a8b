package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testCatalog = `images:
  - id: a
    title: Rose
    styles: [traditional]
    src: /img/a.jpg
  - id: b
    title: Fern
    styles: [fineline]
    src: /img/b.jpg
  - id: c
    title: Dagger
    styles: [traditional, blackwork]
    src: /img/c.jpg
posts:
  - slug: older
    title: Older post
    date: "2026-01-05"
    body: <p>First.</p>
  - slug: newer
    title: Newer post
    date: "2026-02-05"
    summary: Second.
`

func setupEnv(t *testing.T, siteURL string) string {
	t.Helper()
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalogPath, []byte(testCatalog), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	t.Setenv("INKBOOK_CATALOG_PATH", catalogPath)
	t.Setenv("INKBOOK_DB_PATH", filepath.Join(dir, "inkbook.db"))
	t.Setenv("INKBOOK_LOG_PATH", filepath.Join(dir, "inkbook.log"))
	t.Setenv("INKBOOK_PAGE_SIZE", "")
	t.Setenv("INKBOOK_SITE_NAME", "Ink Studio")
	t.Setenv("INKBOOK_SITE_URL", siteURL)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStylesCommand(t *testing.T) {
	setupEnv(t, "")
	out, err := run(t, "styles")
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	want := "all\t3\ntraditional\t2\nfineline\t1\nblackwork\t1\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("styles output mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedCommand_RequiresSiteURL(t *testing.T) {
	setupEnv(t, "")
	if _, err := run(t, "feed"); err == nil || !strings.Contains(err.Error(), "INKBOOK_SITE_URL") {
		t.Fatalf("expected site URL error, got %v", err)
	}
}

func TestFeedCommand_WritesFile(t *testing.T) {
	dir := setupEnv(t, "https://ink.example")
	path := filepath.Join(dir, "rss.xml")
	if _, err := run(t, "feed", "-o", path); err != nil {
		t.Fatalf("feed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read feed: %v", err)
	}
	rss := string(data)
	newer := strings.Index(rss, "Newer post")
	older := strings.Index(rss, "Older post")
	if newer < 0 || older < 0 || newer > older {
		t.Fatalf("expected both posts newest first, got:\n%s", rss)
	}
	if !strings.Contains(rss, "https://ink.example/blog/newer") {
		t.Fatalf("expected absolute post link, got:\n%s", rss)
	}
}

func TestSchemaCommand(t *testing.T) {
	setupEnv(t, "https://ink.example")

	out, err := run(t, "schema")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	var business map[string]any
	if err := json.Unmarshal([]byte(out), &business); err != nil {
		t.Fatalf("decode business schema: %v\n%s", err, out)
	}
	if business["name"] != "Ink Studio" {
		t.Fatalf("unexpected business name %v", business["name"])
	}

	out, err = run(t, "schema", "newer")
	if err != nil {
		t.Fatalf("schema newer: %v", err)
	}
	var posting map[string]any
	if err := json.Unmarshal([]byte(out), &posting); err != nil {
		t.Fatalf("decode posting schema: %v\n%s", err, out)
	}
	if posting["@type"] != "BlogPosting" || posting["headline"] != "Newer post" {
		t.Fatalf("unexpected posting schema %v", posting)
	}

	if _, err := run(t, "schema", "missing"); err == nil {
		t.Fatal("expected error for unknown slug")
	}
}

func TestResolvePageSize(t *testing.T) {
	tests := []struct {
		flag, saved, configured, want int
	}{
		{flag: 4, saved: 8, configured: 12, want: 4},
		{flag: 0, saved: 8, configured: 12, want: 8},
		{flag: 0, saved: 0, configured: 12, want: 12},
		{want: 12},
	}
	for _, tt := range tests {
		if got := resolvePageSize(tt.flag, tt.saved, tt.configured); got != tt.want {
			t.Fatalf("resolvePageSize(%d, %d, %d) = %d, want %d", tt.flag, tt.saved, tt.configured, got, tt.want)
		}
	}
}

func TestPostCommand(t *testing.T) {
	setupEnv(t, "https://ink.example")

	out, err := run(t, "post")
	if err != nil {
		t.Fatalf("post list: %v", err)
	}
	want := "2026-02-05\tnewer\tSecond.\n2026-01-05\tolder\tFirst.\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("post list mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, "post", "older", "--width", "40")
	if err != nil {
		t.Fatalf("post older: %v", err)
	}
	if !strings.Contains(out, "Older post") || !strings.Contains(out, "First.") {
		t.Fatalf("expected rendered post, got:\n%s", out)
	}
}

func TestTerminalWidth_NonTerminalFallsBack(t *testing.T) {
	if got := terminalWidth(&bytes.Buffer{}); got != 80 {
		t.Fatalf("terminalWidth(buffer) = %d, want 80", got)
	}
}
