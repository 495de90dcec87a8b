package view

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	tuitheme "github.com/glabrego/inkbook/internal/tui/theme"

	"github.com/glabrego/inkbook/internal/gallery"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ImageLineParams struct {
	Image       gallery.Image
	Position    int
	ShowNumbers bool
	Active      bool
	Width       int
}

func RenderImageLine(p ImageLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf("  %s ", cursorMarker)
	if p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%3d. ", cursorMarker, p.Position+1)
	}

	tags := "[" + strings.Join(p.Image.Styles, ", ") + "]"
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(tags)
	if available < 1 {
		available = 1
	}
	title := truncateWidth(strings.TrimSpace(p.Image.Title), available)
	gap := p.Width - visibleLen(prefix) - visibleLen(title) - visibleLen(tags)
	if gap < 1 {
		gap = 1
	}
	line := prefix + th.ImageTitle.Render(title) + strings.Repeat(" ", gap) + th.StyleTag.Render(tags)
	return th.RenderActiveLine(p.Active, line)
}

// StyleBar renders the style options with the selected one highlighted.
func StyleBar(options []string, selected string, th tuitheme.Theme) string {
	parts := make([]string, 0, len(options))
	for _, opt := range options {
		parts = append(parts, th.RenderOption(opt, opt == selected))
	}
	return strings.Join(parts, " ")
}

// truncateWidth shortens s to at most maxWidth terminal cells, marking the
// cut with an ellipsis.
func truncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// visibleLen is the number of terminal cells s occupies once styling is
// removed. Wide runes count twice.
func visibleLen(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

func StripANSI(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
