package stats

import (
	"sort"
	"unicode/utf8"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/scoring"
)

// TroubleWord is a word that collected mistakes during a race.
type TroubleWord struct {
	Position int
	Word     string
	Mistakes int
	Accuracy float64
}

// TroubleWords returns up to top words with mistakes, most mistakes first.
// Ties keep typing order. A non-positive top returns all of them.
func TroubleWords(events []model.WordEvent, top int) []TroubleWord {
	var out []TroubleWord
	for i, ev := range events {
		if ev.Mistakes <= 0 {
			continue
		}
		out = append(out, TroubleWord{
			Position: i,
			Word:     ev.Word,
			Mistakes: ev.Mistakes,
			Accuracy: scoring.Accuracy(utf8.RuneCountInString(ev.Word), ev.Mistakes),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Mistakes > out[j].Mistakes
	})
	if top > 0 && len(out) > top {
		out = out[:top]
	}
	return out
}
