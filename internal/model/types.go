// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameMode selects how the race text is shaped. The scoring engine carries it
// through without interpreting it.
type GameMode int

const (
	ModeStandard GameMode = iota
	ModeShort
	ModeHard
)

var modeNames = []string{"standard", "short", "hard"}

// String returns the lowercase mode name.
func (m GameMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseGameMode accepts a mode name or its numeric value.
func ParseGameMode(s string) (GameMode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for i, name := range modeNames {
		if s == name {
			return GameMode(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(modeNames) {
		return GameMode(n), nil
	}
	return ModeStandard, fmt.Errorf("unknown game mode %q (available: %s)", s, strings.Join(modeNames, ", "))
}

// GameModes lists every known mode in declaration order.
func GameModes() []GameMode {
	return []GameMode{ModeStandard, ModeShort, ModeHard}
}

// MarshalText implements encoding.TextMarshaler.
func (m GameMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *GameMode) UnmarshalText(text []byte) error {
	parsed, err := ParseGameMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalJSON accepts both the numeric and the named form of a mode.
func (m *GameMode) UnmarshalJSON(data []byte) error {
	return m.UnmarshalText([]byte(strings.Trim(string(data), `"`)))
}

// Config defines race settings.
type Config struct {
	Mode           GameMode
	Player         string
	Guest          bool
	ParagraphsPath string
	Window         int
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        *GameMode
	Player      string
	Since       *time.Time
	Last        int
	CurveWindow int
}

// WordEvent is one typed word as reported by the client. A nil timestamp means
// the word was abandoned before it was started or finished.
type WordEvent struct {
	Word     string     `json:"word"`
	BeginAt  *time.Time `json:"beginTimestamp,omitempty"`
	EndAt    *time.Time `json:"endTimestamp,omitempty"`
	Mistakes int        `json:"mistakeCount"`
}

// RawSessionStats captures a finished typing session before scoring.
type RawSessionStats struct {
	StartedAt  *time.Time  `json:"localStartTime,omitempty"`
	FinishedAt *time.Time  `json:"localFinishTime,omitempty"`
	TypedWords int         `json:"typedWordCount"`
	TypedChars int         `json:"typedCharacterCount"`
	WrongChars int         `json:"wrongCharacterCount"`
	Mode       GameMode    `json:"gameMode"`
	TypingData []WordEvent `json:"typingData"`
}

// WordMetric holds the smoothed metrics for one word.
type WordMetric struct {
	SmoothedWPM      float64 `json:"smoothedWpm"`
	SmoothedAccuracy float64 `json:"smoothedAccuracy"`
}

// SessionResult is a scored session. Words has one entry per TypingData event.
type SessionResult struct {
	Stats             RawSessionStats `json:"statistics"`
	CompletionSeconds float64         `json:"completionTime"`
	WPM               float64         `json:"wordsPerMinute"`
	Accuracy          float64         `json:"accuracy"`
	Words             []WordMetric    `json:"words"`
}

// SessionSummary is a stored session row used for history and leaderboards.
type SessionSummary struct {
	ID                string
	PlayerName        string
	Mode              GameMode
	CreatedAt         time.Time
	CompletionSeconds float64
	WPM               float64
	Accuracy          float64
	WordCount         int
}

// LeaderboardEntry is a ranked session.
type LeaderboardEntry struct {
	Rank    int
	Session SessionSummary
}

// Player is a named racer. Guests have no Player row.
type Player struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
