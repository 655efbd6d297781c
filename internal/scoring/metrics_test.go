package scoring

import (
	"math"
	"testing"
)

func TestWPMZeroGuards(t *testing.T) {
	cases := []struct {
		words   int
		minutes float64
	}{
		{0, 1},
		{0, 0},
		{10, 0},
		{0, -3},
	}
	for _, c := range cases {
		if got := WPM(c.words, c.minutes); got != 0 {
			t.Fatalf("WPM(%d, %v) = %v, expected 0", c.words, c.minutes, got)
		}
	}
}

func TestWPM(t *testing.T) {
	if got := WPM(50, 1); got != 50 {
		t.Fatalf("expected 50 WPM, got %v", got)
	}
	if got := WPM(1, 0.2); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5 WPM, got %v", got)
	}
}

func TestAccuracyZeroGuards(t *testing.T) {
	if got := Accuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
	if got := Accuracy(5, 5); got != 0 {
		t.Fatalf("expected 0 when nothing correct, got %v", got)
	}
	if got := Accuracy(5, 9); got != 0 {
		t.Fatalf("expected 0 when mistakes exceed characters, got %v", got)
	}
}

func TestAccuracyRange(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for wrong := 0; wrong <= total; wrong++ {
			got := Accuracy(total, wrong)
			if got < 0 || got > 100 {
				t.Fatalf("Accuracy(%d, %d) = %v out of range", total, wrong, got)
			}
			want := float64(total-wrong) / float64(total) * 100
			if wrong == total {
				want = 0
			}
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("Accuracy(%d, %d) = %v, expected %v", total, wrong, got, want)
			}
		}
	}
	if got := Accuracy(4, 0); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}
