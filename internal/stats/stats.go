// Package stats renders race results, history and leaderboards.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/scoring"
)

const sparkChars = " .:-=+*#%@"

const guestLabel = "<guest>"

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[max(0, min(len(sparkChars)-1, idx))])
	}
	return b.String()
}

// WordSeries splits per-word metrics into WPM and accuracy series.
func WordSeries(words []model.WordMetric) (wpms, accs []float64) {
	wpms = make([]float64, len(words))
	accs = make([]float64, len(words))
	for i, w := range words {
		wpms[i] = w.SmoothedWPM
		accs[i] = w.SmoothedAccuracy
	}
	return wpms, accs
}

// RenderResult prints a scored session: totals, per-word curves and the words
// with the most mistakes.
func RenderResult(w io.Writer, res model.SessionResult, totalWidth, height int, useColor bool) error {
	lines := []string{
		"Result",
		fmt.Sprintf("Mode: %s", res.Stats.Mode),
		fmt.Sprintf("Time: %.2fs", res.CompletionSeconds),
		fmt.Sprintf("WPM: %.2f", res.WPM),
		fmt.Sprintf("Accuracy: %.2f%%", res.Accuracy),
		fmt.Sprintf("Words: %d typed / %d total", res.Stats.TypedWords, len(res.Stats.TypingData)),
	}
	wpms, _ := WordSeries(res.Words)
	if len(wpms) > 0 {
		lines = append(lines, fmt.Sprintf("Pace: [%s]", Sparkline(wpms)))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if err := RenderWordCurves(w, res, totalWidth, height, useColor); err != nil {
		return err
	}
	return RenderTroubleWords(w, TroubleWords(res.Stats.TypingData, 5))
}

// RenderWordCurves plots the smoothed per-word WPM and accuracy.
func RenderWordCurves(w io.Writer, res model.SessionResult, totalWidth, height int, useColor bool) error {
	if len(res.Words) == 0 {
		return nil
	}
	wpms, accs := WordSeries(res.Words)
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return Plot(w, []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, PlotOptions{Title: "Per-Word Curves", Width: width, Height: height, ForceColor: useColor})
}

// RenderTroubleWords prints words that collected mistakes.
func RenderTroubleWords(w io.Writer, words []TroubleWord) error {
	if len(words) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Trouble Words"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(words))
	for _, tw := range words {
		rows = append(rows, []string{
			tw.Word,
			fmt.Sprintf("%d", tw.Mistakes),
			fmt.Sprintf("%.2f%%", tw.Accuracy),
		})
	}
	for _, line := range formatTable([]string{"Word", "Mistakes", "Accuracy"}, rows, map[int]bool{1: true, 2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderSummary prints a summary for stored sessions.
func RenderSummary(w io.Writer, sessions []model.SessionSummary) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", sum.Sessions),
		fmt.Sprintf("Avg WPM: %.2f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %.2f", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.2f%%", sum.AvgAccuracy),
		fmt.Sprintf("Time Typed: %.0fs", sum.TotalSeconds),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Summary aggregates stored sessions.
type Summary struct {
	Sessions     int
	AvgWPM       float64
	BestWPM      float64
	AvgAccuracy  float64
	TotalSeconds float64
}

// Summarize averages WPM and accuracy across sessions.
func Summarize(sessions []model.SessionSummary) Summary {
	sum := Summary{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return sum
	}
	for _, s := range sessions {
		sum.AvgWPM += s.WPM
		sum.AvgAccuracy += s.Accuracy
		sum.TotalSeconds += s.CompletionSeconds
		sum.BestWPM = math.Max(sum.BestWPM, s.WPM)
	}
	count := float64(len(sessions))
	sum.AvgWPM /= count
	sum.AvgAccuracy /= count
	return sum
}

// RenderCurves prints learning curves across stored sessions.
func RenderCurves(w io.Writer, sessions []model.SessionSummary, window int) error {
	return RenderCurvesWithSize(w, sessions, window, 0, defaultPlotHeight, false)
}

// RenderCurvesWithSize prints learning curves sized to a given total width.
func RenderCurvesWithSize(w io.Writer, sessions []model.SessionSummary, window, totalWidth, height int, useColor bool) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = s.WPM
		accs[i] = s.Accuracy
	}
	wpms = scoring.MovingAverage(wpms, window)
	accs = scoring.MovingAverage(accs, window)

	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return Plot(w, []Series{
		{Name: "WPM", Values: wpms},
		{Name: "Accuracy", Values: accs},
	}, PlotOptions{Title: "Learning Curves", Width: width, Height: height, ForceColor: useColor})
}

// LeaderboardRows formats leaderboard entries as table rows.
func LeaderboardRows(entries []model.LeaderboardEntry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		player := e.Session.PlayerName
		if player == "" {
			player = guestLabel
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Rank),
			player,
			e.Session.Mode.String(),
			fmt.Sprintf("%.2f", e.Session.WPM),
			fmt.Sprintf("%.2f%%", e.Session.Accuracy),
			fmt.Sprintf("%.1fs", e.Session.CompletionSeconds),
			e.Session.CreatedAt.Local().Format("2006-01-02 15:04"),
			shortID(e.Session.ID),
		})
	}
	return rows
}

// LeaderboardHeaders names the LeaderboardRows columns.
var LeaderboardHeaders = []string{"#", "Player", "Mode", "WPM", "Accuracy", "Time", "Date", "Session"}

// RenderLeaderboard prints ranked sessions.
func RenderLeaderboard(w io.Writer, entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No ranked sessions yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Leaderboard"); err != nil {
		return err
	}
	lines := formatTable(LeaderboardHeaders, LeaderboardRows(entries), map[int]bool{0: true, 3: true, 4: true, 5: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
