// Package scoring turns a raw typing session into words-per-minute, accuracy and
// smoothed per-word series. Every function is pure and safe for concurrent use.
package scoring

// WPM returns typed words per elapsed minute. Zero words or a zero duration
// yield 0.
func WPM(typedWords int, elapsedMinutes float64) float64 {
	if typedWords == 0 {
		return 0
	}
	if elapsedMinutes == 0 {
		return 0
	}
	return float64(typedWords) / elapsedMinutes
}

// Accuracy returns the percentage of correct characters. It is 0 when nothing
// was typed or nothing was typed correctly.
func Accuracy(totalCharacters, incorrectCharacters int) float64 {
	correct := totalCharacters - incorrectCharacters
	if totalCharacters == 0 || correct <= 0 {
		return 0
	}
	return float64(correct) / float64(totalCharacters) * 100
}
