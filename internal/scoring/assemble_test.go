package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/verte-zerg/typeracer/internal/model"
)

func at(base time.Time, seconds float64) *time.Time {
	t := base.Add(time.Duration(seconds * float64(time.Second)))
	return &t
}

func TestCompletionTimeMissingOrReversed(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []model.RawSessionStats{
		{},
		{StartedAt: at(base, 0)},
		{FinishedAt: at(base, 10)},
		{StartedAt: at(base, 10), FinishedAt: at(base, 10)},
		{StartedAt: at(base, 10), FinishedAt: at(base, 5)},
	}
	for i, raw := range cases {
		raw.TypedWords = 20
		raw.TypedChars = 100
		res := Assemble(raw)
		if res.CompletionSeconds != 0 || res.WPM != 0 || res.Accuracy != 0 {
			t.Fatalf("case %d: expected zero metrics, got %+v", i, res)
		}
	}
}

func TestAssembleSessionWPM(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	res := Assemble(model.RawSessionStats{
		StartedAt:  at(base, 0),
		FinishedAt: at(base, 60),
		TypedWords: 50,
		TypedChars: 200,
		WrongChars: 10,
	})
	if res.CompletionSeconds != 60 {
		t.Fatalf("expected 60s, got %v", res.CompletionSeconds)
	}
	if res.WPM != 50 {
		t.Fatalf("expected 50 WPM, got %v", res.WPM)
	}
	if math.Abs(res.Accuracy-95) > 1e-9 {
		t.Fatalf("expected 95%% accuracy, got %v", res.Accuracy)
	}
}

func TestAssembleEmptyWords(t *testing.T) {
	res := Assemble(model.RawSessionStats{})
	if res.Words == nil || len(res.Words) != 0 {
		t.Fatalf("expected empty non-nil word metrics, got %#v", res.Words)
	}
}

func TestRawWordSeriesShortWordWithoutPriorLongWord(t *testing.T) {
	wpms, accs := RawWordSeries(model.RawSessionStats{
		TypingData: []model.WordEvent{{Word: "the"}},
	})
	if wpms[0] != 0 {
		t.Fatalf("expected carried WPM to start at 0, got %v", wpms[0])
	}
	if accs[0] != 100 {
		t.Fatalf("expected 100%% accuracy, got %v", accs[0])
	}
}

func TestRawWordSeriesUntimedLongWord(t *testing.T) {
	base := time.Unix(0, 0)
	wpms, accs := RawWordSeries(model.RawSessionStats{
		TypingData: []model.WordEvent{
			{Word: "quick", BeginAt: at(base, 0), EndAt: at(base, 30)},
			{Word: "brown", BeginAt: at(base, 30), Mistakes: 1},
			{Word: "fox"},
		},
	})
	if wpms[0] != 2 {
		t.Fatalf("expected 2 WPM, got %v", wpms[0])
	}
	if wpms[1] != 0 {
		t.Fatalf("expected untimed long word to score 0 WPM, got %v", wpms[1])
	}
	if wpms[2] != 2 {
		t.Fatalf("expected short word to inherit 2 WPM, got %v", wpms[2])
	}
	// Untimed words still get accuracy from their characters and mistakes.
	if accs[1] != 80 {
		t.Fatalf("expected 80%% accuracy for untimed word, got %v", accs[1])
	}
}

func TestRawWordSeriesDegenerateWordTiming(t *testing.T) {
	base := time.Unix(100, 0)
	wpms, _ := RawWordSeries(model.RawSessionStats{
		TypingData: []model.WordEvent{
			{Word: "alpha", BeginAt: at(base, 0), EndAt: at(base, 12)},
			{Word: "bravo", BeginAt: at(base, 20), EndAt: at(base, 20)},
			{Word: "to"},
			{Word: "charlie", BeginAt: at(base, 30), EndAt: at(base, 25)},
		},
	})
	want := []float64{5, 0, 0, 0}
	for i := range want {
		if math.Abs(wpms[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], wpms[i])
		}
	}
}

func TestAssembleTwoWordScenario(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := model.RawSessionStats{
		StartedAt:  at(base, 0),
		FinishedAt: at(base, 13),
		TypedWords: 2,
		TypedChars: 8,
		Mode:       model.ModeShort,
		TypingData: []model.WordEvent{
			{Word: "wordA", BeginAt: at(base, 0), EndAt: at(base, 12)},
			{Word: "it"},
		},
	}
	res := Assemble(raw)
	if len(res.Words) != 2 {
		t.Fatalf("expected 2 word metrics, got %d", len(res.Words))
	}
	for i, w := range res.Words {
		if math.Abs(w.SmoothedWPM-5) > 1e-9 {
			t.Fatalf("word %d: expected 5 WPM, got %v", i, w.SmoothedWPM)
		}
		if w.SmoothedAccuracy != 100 {
			t.Fatalf("word %d: expected 100%% accuracy, got %v", i, w.SmoothedAccuracy)
		}
	}
	if res.Stats.Mode != model.ModeShort {
		t.Fatalf("expected mode to be carried through, got %v", res.Stats.Mode)
	}
}

func TestAssembleSmoothsBothSeries(t *testing.T) {
	base := time.Unix(0, 0)
	raw := model.RawSessionStats{
		TypingData: []model.WordEvent{
			{Word: "abcd", BeginAt: at(base, 0), EndAt: at(base, 6)},
			{Word: "efgh", BeginAt: at(base, 6), EndAt: at(base, 9), Mistakes: 2},
		},
	}
	res := AssembleWindow(raw, 7)
	if math.Abs(res.Words[1].SmoothedWPM-15) > 1e-9 {
		t.Fatalf("expected smoothed WPM 15, got %v", res.Words[1].SmoothedWPM)
	}
	if math.Abs(res.Words[1].SmoothedAccuracy-75) > 1e-9 {
		t.Fatalf("expected smoothed accuracy 75, got %v", res.Words[1].SmoothedAccuracy)
	}
	if got := AssembleWindow(raw, 0); got.Words[1] != res.Words[1] {
		t.Fatalf("expected non-positive window to use the default")
	}
}
