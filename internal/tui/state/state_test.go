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
	if got := ClampCursor(4, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestListHeight(t *testing.T) {
	if got := ListHeight(0, false); got != 10 {
		t.Fatalf("expected default height 10, got %d", got)
	}
	if got := ListHeight(20, false); got != 12 {
		t.Fatalf("expected height 12, got %d", got)
	}
	if got := ListHeight(20, true); got != 10 {
		t.Fatalf("expected height 10 with status, got %d", got)
	}
	if got := ListHeight(5, true); got != 3 {
		t.Fatalf("expected minimum height 3, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(2, 0, 10)
	if start != 0 || end != 2 {
		t.Fatalf("expected whole list when it fits: start=%d end=%d", start, end)
	}
}

func TestNearEnd(t *testing.T) {
	if NearEnd(6, 12, 3) {
		t.Fatal("row 6 of 12 is not near the end")
	}
	if !NearEnd(9, 12, 3) {
		t.Fatal("row 9 of 12 is within 3 of the end")
	}
	if NearEnd(0, 0, 3) {
		t.Fatal("an empty list has no sentinel")
	}
}
