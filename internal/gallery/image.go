package gallery

// Image is one entry of the studio's portfolio. Records are loaded once and
// never mutated; Styles is an ordered set of tags.
type Image struct {
	ID          string
	Title       string
	Styles      []string
	Src         string
	Description string
}

// HasStyle reports whether style is one of the image's tags.
func (img Image) HasStyle(style string) bool {
	for _, s := range img.Styles {
		if s == style {
			return true
		}
	}
	return false
}
