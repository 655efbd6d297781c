package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPlotRendersSeries(t *testing.T) {
	var buf bytes.Buffer
	err := Plot(&buf, []Series{
		{Name: "WPM", Values: []float64{40, 55, 62, 58, 70}},
		{Name: "Accuracy", Values: []float64{90, 92, 95, 97, 96}},
	}, PlotOptions{Title: "Per-Word Curves", Width: 12, Height: 4})
	if err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Per-Word Curves", "WPM: min=40.00 max=70.00", "Accuracy: min=90.00", "Legend:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1+2+4+1 {
		t.Fatalf("expected 8 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[3], "    70") {
		t.Fatalf("expected top axis label 70, got %q", lines[3])
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color for non-terminal writer")
	}
}

func TestPlotSkipsEmptySeries(t *testing.T) {
	var buf bytes.Buffer
	if err := Plot(&buf, []Series{{Name: "WPM"}}, PlotOptions{}); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotForceColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if err := Plot(&buf, []Series{{Name: "WPM", Values: []float64{1, 2}}}, PlotOptions{Width: 10, Height: 2, ForceColor: true}); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	if !strings.Contains(buf.String(), colorReset) {
		t.Fatalf("expected ANSI colors when forced")
	}
}

func TestPlotWidthFor(t *testing.T) {
	axis := axisLabelWidth + runewidth.StringWidth(axisSeparator)
	if got := PlotWidthFor(80); got != 80-axis {
		t.Fatalf("expected width %d, got %d", 80-axis, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResampleSeries(t *testing.T) {
	shrunk := resampleSeries([]float64{1, 3, 5, 7}, 2)
	if shrunk[0] != 2 || shrunk[1] != 6 {
		t.Fatalf("unexpected shrink: %v", shrunk)
	}
	stretched := resampleSeries([]float64{0, 10}, 3)
	if stretched[0] != 0 || stretched[1] != 5 || stretched[2] != 10 {
		t.Fatalf("unexpected stretch: %v", stretched)
	}
	flat := resampleSeries([]float64{4}, 3)
	if flat[0] != 4 || flat[2] != 4 {
		t.Fatalf("unexpected single value stretch: %v", flat)
	}
}
