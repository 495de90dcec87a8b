package state

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// ListHeight is the number of gallery rows that fit below the header and
// above the footer.
func ListHeight(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	chromeLines := 8
	if hasStatus {
		chromeLines += 2
	}
	rows := height - chromeLines
	if rows < 3 {
		rows = 3
	}
	return rows
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// NearEnd reports whether the last rendered row is within distance rows of
// the end of a list of size rows.
func NearEnd(windowEnd, size, distance int) bool {
	if size <= 0 {
		return false
	}
	if distance < 0 {
		distance = 0
	}
	return windowEnd >= size-distance
}
