package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Gesture", "Count", "Blocked"}
	rows := [][]string{
		{"swipe", "142", "12"},
		{"long_press", "8", "0"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Gesture    Count Blocked" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "swipe        142      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "long_press     8       0" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
