// Package session records a typing attempt keystroke by keystroke and reports
// it as raw session stats.
package session

import (
	"time"

	"github.com/verte-zerg/typeracer/internal/model"
)

// Span is the half-open rune range [Start, End) of one word in a text.
type Span struct {
	Start int
	End   int
}

type wordState struct {
	beginAt  *time.Time
	endAt    *time.Time
	mistakes int
}

// Recorder tracks input against a target text.
type Recorder struct {
	now    func() time.Time
	target []rune
	input  []rune
	spans  []Span
	words  []wordState

	startedAt  *time.Time
	finishedAt *time.Time
	typed      int
	wrong      int
}

// NewRecorder returns a recorder for target. A nil clock uses time.Now.
func NewRecorder(target string, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	runes := []rune(target)
	spans := SplitWords(runes)
	return &Recorder{
		now:    now,
		target: runes,
		spans:  spans,
		words:  make([]wordState, len(spans)),
	}
}

// Target returns the text being typed.
func (r *Recorder) Target() []rune {
	return r.target
}

// Input returns the runes typed so far.
func (r *Recorder) Input() []rune {
	return r.input
}

// Spans returns the word spans of the target.
func (r *Recorder) Spans() []Span {
	return r.spans
}

// Started reports whether the first keystroke has happened.
func (r *Recorder) Started() bool {
	return r.startedAt != nil
}

// Done reports whether the whole target has been typed.
func (r *Recorder) Done() bool {
	return len(r.target) > 0 && len(r.input) >= len(r.target)
}

// Type records one keystroke. Keystrokes after the end are ignored.
func (r *Recorder) Type(typed rune) {
	if r.Done() {
		return
	}
	now := r.now()
	if r.startedAt == nil {
		r.startedAt = &now
	}
	pos := len(r.input)
	expected := r.target[pos]
	r.input = append(r.input, typed)
	r.typed++
	correct := typed == expected
	if !correct {
		r.wrong++
	}

	if idx := r.wordAt(pos); idx >= 0 {
		w := &r.words[idx]
		if w.beginAt == nil {
			w.beginAt = &now
		}
		if !correct {
			w.mistakes++
		}
		if pos == r.spans[idx].End-1 {
			w.endAt = &now
		}
	}
	if r.Done() {
		r.finishedAt = &now
	}
}

// Backspace removes the last typed rune. Mistakes already made stay counted.
func (r *Recorder) Backspace() {
	if len(r.input) == 0 || r.Done() {
		return
	}
	pos := len(r.input) - 1
	r.input = r.input[:pos]
	if idx := r.wordAt(pos); idx >= 0 && pos == r.spans[idx].End-1 {
		r.words[idx].endAt = nil
	}
}

// Progress returns the typed share of the target in percent.
func (r *Recorder) Progress() int {
	if len(r.target) == 0 {
		return 0
	}
	return int(float64(len(r.input)) / float64(len(r.target)) * 100)
}

// Stats reports the attempt so far as raw session stats.
func (r *Recorder) Stats(mode model.GameMode) model.RawSessionStats {
	raw := model.RawSessionStats{
		StartedAt:  r.startedAt,
		FinishedAt: r.finishedAt,
		TypedChars: r.typed,
		WrongChars: r.wrong,
		Mode:       mode,
		TypingData: make([]model.WordEvent, len(r.spans)),
	}
	for i, span := range r.spans {
		w := r.words[i]
		raw.TypingData[i] = model.WordEvent{
			Word:     string(r.target[span.Start:span.End]),
			BeginAt:  w.beginAt,
			EndAt:    w.endAt,
			Mistakes: w.mistakes,
		}
		if w.endAt != nil {
			raw.TypedWords++
		}
	}
	return raw
}

func (r *Recorder) wordAt(pos int) int {
	return WordAt(r.spans, pos)
}

// WordAt returns the index of the span containing pos, or -1 when pos falls
// on a separator.
func WordAt(spans []Span, pos int) int {
	for i, span := range spans {
		if pos >= span.Start && pos < span.End {
			return i
		}
		if pos < span.Start {
			break
		}
	}
	return -1
}

// SplitWords returns the spans of space-separated words in target.
func SplitWords(target []rune) []Span {
	spans := []Span{}
	start := -1
	for i, r := range target {
		if r == ' ' {
			if start != -1 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		spans = append(spans, Span{Start: start, End: len(target)})
	}
	return spans
}
