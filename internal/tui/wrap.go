package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typeracer/internal/session"
)

// styledRune is one rendered cell of the race text.
type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func buildStyledRunes(targetRunes, inputRunes []rune, cursorIndex int) []styledRune {
	current := currentSpan(session.SplitWords(targetRunes), cursorIndex)

	out := make([]styledRune, 0, len(targetRunes))
	for i, target := range targetRunes {
		displayed := target
		style := pendingStyle
		switch {
		case i < len(inputRunes) && target == ' ' && inputRunes[i] != ' ':
			// A wrong key on a separator has nothing visible to color.
			displayed = '•'
			style = incorrectStyle
		case i < len(inputRunes) && inputRunes[i] == target:
			style = correctStyle
		case i < len(inputRunes):
			style = incorrectStyle
		case target != ' ' && current != nil && i >= current.Start && i < current.End:
			style = currentWordStyle
		}
		if i == cursorIndex && i >= len(inputRunes) {
			style = style.Underline(true)
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: target == ' ',
		})
	}
	return out
}

// currentSpan returns the word the cursor is in or about to enter.
func currentSpan(spans []session.Span, cursorIndex int) *session.Span {
	if len(spans) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &spans[0]
	}
	for i, span := range spans {
		if cursorIndex < span.End {
			return &spans[i]
		}
	}
	return &spans[len(spans)-1]
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// token is a run of styled runes that are either all spaces or all non-spaces.
type token []styledRune

func (t token) width() int {
	total := 0
	for _, item := range t {
		total += item.width
	}
	return total
}

func tokenize(runes []styledRune) []token {
	var tokens []token
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j].isSpace == runes[i].isSpace {
			j++
		}
		tokens = append(tokens, token(runes[i:j]))
		i = j
	}
	return tokens
}

// wrapStyledRunes breaks the text into lines no wider than width. Breaks happen
// at spaces, which are dropped at the line end; a word wider than a whole line
// is split across lines.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var lines []string
	var line []styledRune
	lineWidth := 0
	flush := func() {
		lines = append(lines, renderStyledRunes(line))
		line = nil
		lineWidth = 0
	}

	for _, tok := range tokenize(runes) {
		w := tok.width()
		if tok[0].isSpace {
			if lineWidth+w > width {
				flush()
				continue
			}
			line = append(line, tok...)
			lineWidth += w
			continue
		}
		if lineWidth+w > width && lineWidth > 0 {
			line = trimTrailingSpaces(line)
			flush()
		}
		for _, item := range tok {
			if lineWidth+item.width > width && lineWidth > 0 {
				flush()
			}
			line = append(line, item)
			lineWidth += item.width
		}
	}
	lines = append(lines, renderStyledRunes(line))
	return strings.Join(lines, "\n")
}

func trimTrailingSpaces(line []styledRune) []styledRune {
	end := len(line)
	for end > 0 && line[end-1].isSpace {
		end--
	}
	return line[:end]
}
