package view

import (
	"strings"

	"github.com/glabrego/inkbook/internal/gallery"
)

type WrapFunc func(string, int) []string

func DetailLines(img gallery.Image, source string, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 12)
	lines = append(lines, wrap(img.Title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(img.Title))))))
	lines = append(lines, "")
	lines = append(lines, wrap("Styles: "+strings.Join(img.Styles, ", "), width)...)
	lines = append(lines, wrap("Source: "+source, width)...)
	lines = append(lines, "ID: "+img.ID)
	if img.Description != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(img.Description, width)...)
	}
	return lines
}

// Wrap breaks text on spaces so no line exceeds width runes.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wl := len([]rune(w))
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	if curLen > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
