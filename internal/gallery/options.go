package gallery

// StyleOptions lists AllStyles followed by every distinct style tag in the
// order it first appears in images.
func StyleOptions(images []Image) []string {
	seen := make(map[string]struct{})
	out := []string{AllStyles}
	for _, img := range images {
		for _, style := range img.Styles {
			if style == "" || style == AllStyles {
				continue
			}
			if _, ok := seen[style]; ok {
				continue
			}
			seen[style] = struct{}{}
			out = append(out, style)
		}
	}
	return out
}

// NextOption returns the option after current, wrapping around. An unknown
// current value moves to the first option.
func NextOption(options []string, current string, delta int) string {
	if len(options) == 0 {
		return AllStyles
	}
	idx := -1
	for i, opt := range options {
		if opt == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}
