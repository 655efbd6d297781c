// Package generator picks and shapes race texts.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/typeracer/internal/model"
)

const (
	shortMaxWords = 20
	hardCapsPct   = 0.35
	hardPunctPct  = 0.25
	hardPunctSet  = ",;:!?-()\"'"
)

// Generator produces race texts.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Text picks a random paragraph and shapes it for the mode.
func (g *Generator) Text(paragraphs []string, mode model.GameMode) string {
	if len(paragraphs) == 0 {
		return ""
	}
	words := strings.Fields(paragraphs[g.rnd.Intn(len(paragraphs))])
	switch mode {
	case model.ModeShort:
		words = shorten(words, shortMaxWords)
	case model.ModeHard:
		punct := []rune(hardPunctSet)
		for i, word := range words {
			word = applyCaps(g.rnd, word, hardCapsPct)
			words[i] = applyPunct(g.rnd, word, hardPunctPct, punct)
		}
	}
	return strings.Join(words, " ")
}

// shorten keeps whole sentences while they fit in limit words. When the first
// sentence alone is longer, it is cut at limit.
func shorten(words []string, limit int) []string {
	if len(words) <= limit {
		return words
	}
	cut := 0
	for i := 0; i < limit; i++ {
		if strings.ContainsAny(words[i][len(words[i])-1:], ".!?") {
			cut = i + 1
		}
	}
	if cut == 0 {
		cut = limit
	}
	return words[:cut]
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
