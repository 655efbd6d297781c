package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Player", "WPM", "Rank"}
	rows := [][]string{
		{"ana", "97.50", "1"},
		{"<guest>", "8.00", "12"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Player    WPM Rank" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "ana     97.50    1" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "<guest>  8.00   12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Player"}, [][]string{{"山田"}}, nil)
	if lines[1] != "山田  " {
		t.Fatalf("expected display-width padding, got %q", lines[1])
	}
}
