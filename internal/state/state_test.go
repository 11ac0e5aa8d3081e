package state

import "testing"

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
}

func TestWrapOnFiveRows(t *testing.T) {
	if got := NextWrap(4, 5); got != 0 {
		t.Fatalf("expected next from last to wrap to 0, got %d", got)
	}
	if got := PrevWrap(0, 5); got != 4 {
		t.Fatalf("expected previous from first to wrap to 4, got %d", got)
	}
	if got := NextWrap(2, 5); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := PrevWrap(2, 5); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := NextWrap(0, 1); got != 0 {
		t.Fatalf("expected single row to stay at 0, got %d", got)
	}
}

func TestWrapOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-bounds cursor")
		}
	}()
	NextWrap(5, 5)
}

func TestVisibleRows(t *testing.T) {
	if got := VisibleRows(0, 4, 2); got != 10 {
		t.Fatalf("expected default of 10, got %d", got)
	}
	if got := VisibleRows(24, 4, 2); got != 10 {
		t.Fatalf("expected 10 rows, got %d", got)
	}
	if got := VisibleRows(5, 4, 2); got != 1 {
		t.Fatalf("expected at least one row, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(3, 1, 10)
	if start != 0 || end != 3 {
		t.Fatalf("expected full window, got start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(25, 0, 10)
	if start != 0 || end != 10 {
		t.Fatalf("expected window at top, got start=%d end=%d", start, end)
	}
}

func TestIndexOf(t *testing.T) {
	ids := []string{"a", "b", "c"}
	key := func(s string) string { return s }
	if got := IndexOf(ids, key, "c"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := IndexOf(ids, key, "z"); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}
