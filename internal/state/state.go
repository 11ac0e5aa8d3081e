// Package state holds the cursor arithmetic shared by the application core
// and the renderer.
package state

import "fmt"

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

// NextWrap moves the cursor down one row, wrapping past the last row to the
// first.
func NextWrap(cursor, size int) int {
	MustInBounds(cursor, size)
	if cursor >= size-1 {
		return 0
	}
	return cursor + 1
}

// PrevWrap moves the cursor up one row, wrapping before the first row to the
// last.
func PrevWrap(cursor, size int) int {
	MustInBounds(cursor, size)
	if cursor == 0 {
		return size - 1
	}
	return cursor - 1
}

// MustInBounds panics unless 0 <= index < size. A selection that points
// outside its list means the cache and the cursor went out of sync.
func MustInBounds(index, size int) {
	if index < 0 || index >= size {
		panic(fmt.Sprintf("selection index %d out of bounds for list of %d", index, size))
	}
}

// VisibleRows is how many items of rowHeight lines fit in height lines once
// chromeLines are taken by header and footer. At least one item always fits.
func VisibleRows(height, chromeLines, rowHeight int) int {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	if height <= 0 {
		return 10
	}
	rows := (height - chromeLines) / rowHeight
	if rows < 1 {
		rows = 1
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

// IndexOf returns the position of the first item whose key matches, or -1.
func IndexOf[T any](items []T, key func(T) string, want string) int {
	for i, item := range items {
		if key(item) == want {
			return i
		}
	}
	return -1
}
