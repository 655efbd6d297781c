package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/scoring"
)

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{3, 3, 3}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 10}); got != " @" {
		t.Fatalf("expected min and max glyphs, got %q", got)
	}
}

func TestRenderResult(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(12 * time.Second)
	res := scoring.Assemble(model.RawSessionStats{
		StartedAt:  &start,
		FinishedAt: &end,
		TypedWords: 2,
		TypedChars: 8,
		WrongChars: 1,
		Mode:       model.ModeHard,
		TypingData: []model.WordEvent{
			{Word: "wordA", BeginAt: &start, EndAt: &end, Mistakes: 1},
			{Word: "it"},
		},
	})
	var buf bytes.Buffer
	if err := RenderResult(&buf, res, 60, 4, false); err != nil {
		t.Fatalf("render result: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Mode: hard", "Time: 12.00s", "WPM: 10.00", "Accuracy: 87.50%", "Per-Word Curves", "Trouble Words", "wordA"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderResultWithoutWords(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderResult(&buf, scoring.Assemble(model.RawSessionStats{}), 60, 4, false); err != nil {
		t.Fatalf("render result: %v", err)
	}
	if strings.Contains(buf.String(), "Per-Word Curves") {
		t.Fatalf("expected no curves for an empty session")
	}
}

func TestTroubleWords(t *testing.T) {
	events := []model.WordEvent{
		{Word: "clean"},
		{Word: "tricky", Mistakes: 2},
		{Word: "odd", Mistakes: 1},
		{Word: "rhythm", Mistakes: 2},
	}
	got := TroubleWords(events, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 trouble words, got %d", len(got))
	}
	if got[0].Word != "tricky" || got[1].Word != "rhythm" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].Position != 1 {
		t.Fatalf("expected position 1, got %d", got[0].Position)
	}
	if all := TroubleWords(events, 0); len(all) != 3 {
		t.Fatalf("expected all 3 trouble words, got %d", len(all))
	}
}

func TestSummarizeAndRenderSummary(t *testing.T) {
	sessions := []model.SessionSummary{
		{WPM: 40, Accuracy: 90, CompletionSeconds: 30},
		{WPM: 60, Accuracy: 100, CompletionSeconds: 20},
	}
	sum := Summarize(sessions)
	if sum.AvgWPM != 50 || sum.BestWPM != 60 || sum.AvgAccuracy != 95 || sum.TotalSeconds != 50 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if !strings.Contains(buf.String(), "Avg WPM: 50.00") {
		t.Fatalf("unexpected summary output: %s", buf.String())
	}
	buf.Reset()
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty summary: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("expected empty message")
	}
}

func TestRenderLeaderboard(t *testing.T) {
	entries := []model.LeaderboardEntry{
		{Rank: 1, Session: model.SessionSummary{ID: "0123456789abcdef", PlayerName: "ana", WPM: 88.5, Accuracy: 97.25, CompletionSeconds: 41}},
		{Rank: 2, Session: model.SessionSummary{ID: "fedcba", Mode: model.ModeShort, WPM: 70, Accuracy: 99}},
	}
	var buf bytes.Buffer
	if err := RenderLeaderboard(&buf, entries); err != nil {
		t.Fatalf("render leaderboard: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Leaderboard", "ana", "88.50", "97.25%", "<guest>", "short", "01234567"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBestByPlayer(t *testing.T) {
	sessions := []model.SessionSummary{
		{PlayerName: "ana", WPM: 50, Accuracy: 90},
		{PlayerName: "bo", WPM: 70, Accuracy: 80},
		{PlayerName: "ana", WPM: 75, Accuracy: 95},
		{WPM: 30},
	}
	got := BestByPlayer(sessions, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 players, got %d", len(got))
	}
	if got[0].Player != "ana" || got[0].BestWPM != 75 || got[0].Accuracy != 95 || got[0].Sessions != 2 {
		t.Fatalf("unexpected first player: %+v", got[0])
	}
	if got[1].Player != "bo" {
		t.Fatalf("unexpected second player: %+v", got[1])
	}
}
