// Package paragraphs loads the texts players race on.
package paragraphs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var builtin = []string{
	"The quick brown fox jumps over the lazy dog. It is a sentence that uses every letter of the alphabet, which makes it a favorite warm up for typists who want to loosen their fingers before a long race.",
	"A river does not rush because it is late. It moves at the pace the land allows, carving valleys over thousands of years. Patience is not the absence of motion but steady motion that never stops.",
	"Good software is written twice: once to understand the problem and once to solve it well. The first draft teaches you where the edges are, and the second one respects them.",
	"On clear winter nights the stars seem close enough to touch. Sailors once crossed entire oceans by reading them, trusting a handful of bright points to carry them home across the dark water.",
	"Practice does not make perfect. Practice makes permanent. If you repeat a mistake a thousand times you will learn the mistake, so slow down, type each word correctly, and speed will follow.",
	"The library was quiet except for the soft turning of pages. Somewhere between the shelves a student found the book she had been searching for all week, and for a moment the whole city disappeared.",
}

// Builtin returns a copy of the bundled paragraphs.
func Builtin() []string {
	return append([]string(nil), builtin...)
}

// Load reads paragraphs separated by blank lines. Lines within a paragraph are
// joined with single spaces.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only paragraph file.
			_ = cerr
		}
	}()

	var out []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
	}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	if len(out) == 0 {
		return nil, fmt.Errorf("paragraph file is empty")
	}
	return out, nil
}

// LoadOrBuiltin reads path when it exists and falls back to the bundled set.
func LoadOrBuiltin(path string) ([]string, error) {
	if path == "" {
		return Builtin(), nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Builtin(), nil
		}
		return nil, err
	}
	return Load(path)
}
