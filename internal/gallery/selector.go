package gallery

import (
	"strings"

	"golang.org/x/text/cases"
)

// Select returns the images matching state, in collection order. Both the
// style and the search predicate must hold. Search matching is a
// case-insensitive substring test against title, description and styles.
func Select(images []Image, state State) []Image {
	style := state.Style
	if style == "" {
		style = AllStyles
	}
	if style == AllStyles && state.Search == "" {
		return append([]Image(nil), images...)
	}

	fold := cases.Fold()
	query := fold.String(state.Search)

	out := make([]Image, 0, len(images))
	for _, img := range images {
		if style != AllStyles && !img.HasStyle(style) {
			continue
		}
		if query != "" && !matchesSearch(img, query, fold) {
			continue
		}
		out = append(out, img)
	}
	return out
}

func matchesSearch(img Image, query string, fold cases.Caser) bool {
	if strings.Contains(fold.String(img.Title), query) {
		return true
	}
	if strings.Contains(fold.String(img.Description), query) {
		return true
	}
	for _, style := range img.Styles {
		if strings.Contains(fold.String(style), query) {
			return true
		}
	}
	return false
}
