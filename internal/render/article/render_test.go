package article

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/glabrego/inkbook/internal/blog"
)

var testSite = blog.Site{Name: "Ink Studio", URL: "https://ink.example"}

func plain(lines []string) string {
	return reANSICodes.ReplaceAllString(strings.Join(lines, "\n"), "")
}

func TestBodyLines_FallsBackToSummary(t *testing.T) {
	post := blog.Post{Summary: "Only summary"}
	got := BodyLines(post, testSite, 80, DefaultOptions)
	if diff := cmp.Diff([]string{"Only summary"}, got); diff != "" {
		t.Fatalf("summary fallback mismatch (-want +got):\n%s", diff)
	}

	if got := BodyLines(blog.Post{BodyHTML: "<script>x()</script>"}, testSite, 80, DefaultOptions); got != nil {
		t.Fatalf("expected nothing for script-only body without summary, got %q", got)
	}
}

func TestBodyLines_RendersCommonElements(t *testing.T) {
	post := blog.Post{BodyHTML: `<article>
		<h2>Aftercare</h2>
		<p>Wash <strong>gently</strong> twice a day.</p>
		<ul><li>Unscented soap</li><li>Thin balm<ul><li>Not petroleum</li></ul></li></ul>
		<ol><li>Wash</li><li>Dry</li></ol>
		<blockquote><p>Patience heals.</p></blockquote>
		<p>Read the <a href="/blog/faq">FAQ</a> or <a href="#top">jump up</a>.</p>
		<pre>keep
  clean</pre>
		<hr>
	</article>`}

	got := plain(BodyLines(post, testSite, 80, Options{ImageMode: ImageModeLabel}))
	for _, want := range []string{
		"▌ Aftercare",
		"Wash gently twice a day.",
		"• Unscented soap",
		"  ◦ Not petroleum",
		"1. Wash",
		"2. Dry",
		"│ Patience heals.",
		"Read the FAQ (https://ink.example/blog/faq) or jump up.",
		"    keep",
		"      clean",
		"------------------------",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, got)
		}
	}
}

func TestBodyLines_ImageLabelsFollowContentOrder(t *testing.T) {
	post := blog.Post{BodyHTML: `<p>Before.</p><figure><img src="/img/koi.jpg" alt="Koi back piece"><figcaption>Session three</figcaption></figure><p>After.</p>`}

	got := plain(BodyLines(post, testSite, 80, DefaultOptions))
	before := strings.Index(got, "Before.")
	image := strings.Index(got, "Image Koi back piece")
	caption := strings.Index(got, "~ Session three")
	after := strings.Index(got, "After.")
	if before < 0 || image < 0 || caption < 0 || after < 0 {
		t.Fatalf("expected text, image label and caption, got:\n%s", got)
	}
	if !(before < image && image < caption && caption < after) {
		t.Fatalf("expected document order preserved, got:\n%s", got)
	}

	hidden := plain(BodyLines(post, testSite, 80, Options{ImageMode: ImageModeNone}))
	if strings.Contains(hidden, "Image") {
		t.Fatalf("expected image labels hidden, got:\n%s", hidden)
	}
}

func TestBodyLines_WrapsToWidth(t *testing.T) {
	post := blog.Post{BodyHTML: "<p>one two three four five six seven eight nine ten</p><ul><li>alpha beta gamma delta</li></ul>"}
	for _, line := range BodyLines(post, testSite, 12, DefaultOptions) {
		if visibleLen(line) > 12 {
			t.Fatalf("line %q exceeds width 12", line)
		}
	}
}

func TestHeaderLines(t *testing.T) {
	post := blog.Post{
		Title:  "Choosing a style",
		Date:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Author: "Studio team",
		Tags:   []string{"styles", "consultation"},
	}
	want := []string{"Choosing a style", "March 2, 2026 · Studio team", "#styles #consultation"}
	if diff := cmp.Diff(want, strings.Split(plain(HeaderLines(post, 80)), "\n")); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
}

func TestImageURLs(t *testing.T) {
	post := blog.Post{
		Image:    "/img/cover.jpg",
		BodyHTML: `<p><img src="/img/a.jpg"><img src="/img/cover.jpg"><img src='https://cdn.example/b.png'><img src="data:image/png;base64,abc"></p>`,
	}
	want := []string{
		"https://ink.example/img/cover.jpg",
		"https://ink.example/img/a.jpg",
		"https://cdn.example/b.png",
	}
	if diff := cmp.Diff(want, ImageURLs(post, testSite)); diff != "" {
		t.Fatalf("image URLs mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapText_SplitsLongWords(t *testing.T) {
	want := []string{"abcd", "efgh", "ij k"}
	if diff := cmp.Diff(want, wrapText("abcdefghij k", 4)); diff != "" {
		t.Fatalf("wrap mismatch (-want +got):\n%s", diff)
	}
}
