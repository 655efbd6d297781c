package scoring

import (
	"unicode/utf8"

	"github.com/verte-zerg/typeracer/internal/model"
)

// minTimedWordLen is the shortest word timed on its own. Shorter words inherit
// the rate of the last timed word.
const minTimedWordLen = 4

// CompletionTime returns the session duration in seconds, or 0 when either
// timestamp is missing or the finish does not come after the start.
func CompletionTime(raw model.RawSessionStats) float64 {
	if raw.StartedAt == nil || raw.FinishedAt == nil {
		return 0
	}
	if !raw.FinishedAt.After(*raw.StartedAt) {
		return 0
	}
	return raw.FinishedAt.Sub(*raw.StartedAt).Seconds()
}

// RawWordSeries returns the unsmoothed per-word WPM and accuracy sequences.
func RawWordSeries(raw model.RawSessionStats) (wpms, accs []float64) {
	wpms = make([]float64, len(raw.TypingData))
	accs = make([]float64, len(raw.TypingData))
	carried := 0.0
	for i, ev := range raw.TypingData {
		length := utf8.RuneCountInString(ev.Word)
		switch {
		case length < minTimedWordLen:
			wpms[i] = carried
		case ev.BeginAt != nil && ev.EndAt != nil:
			minutes := ev.EndAt.Sub(*ev.BeginAt).Minutes()
			if minutes < 0 {
				minutes = 0
			}
			wpms[i] = WPM(1, minutes)
			carried = wpms[i]
		default:
			wpms[i] = 0
		}
		accs[i] = Accuracy(length, ev.Mistakes)
	}
	return wpms, accs
}

// Assemble scores a finished session with the default smoothing window.
func Assemble(raw model.RawSessionStats) model.SessionResult {
	return AssembleWindow(raw, DefaultWindow)
}

// AssembleWindow scores a finished session, smoothing per-word series over the
// given window. A non-positive window means DefaultWindow.
func AssembleWindow(raw model.RawSessionStats, window int) model.SessionResult {
	if window <= 0 {
		window = DefaultWindow
	}
	res := model.SessionResult{
		Stats:             raw,
		CompletionSeconds: CompletionTime(raw),
	}
	if res.CompletionSeconds > 0 {
		res.WPM = WPM(raw.TypedWords, res.CompletionSeconds/60.0)
		res.Accuracy = Accuracy(raw.TypedChars, raw.WrongChars)
	}

	wpms, accs := RawWordSeries(raw)
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)
	res.Words = make([]model.WordMetric, len(raw.TypingData))
	for i := range res.Words {
		res.Words[i] = model.WordMetric{
			SmoothedWPM:      wpms[i],
			SmoothedAccuracy: accs[i],
		}
	}
	return res
}
