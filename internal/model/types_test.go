package model

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestParseGameMode(t *testing.T) {
	cases := map[string]GameMode{
		"standard": ModeStandard,
		" Short ":  ModeShort,
		"HARD":     ModeHard,
		"0":        ModeStandard,
		"2":        ModeHard,
	}
	for in, want := range cases {
		got, err := ParseGameMode(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", in, got, want)
		}
	}
	for _, in := range []string{"", "turbo", "3", "-1"} {
		if _, err := ParseGameMode(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestGameModeString(t *testing.T) {
	if ModeHard.String() != "hard" {
		t.Fatalf("unexpected name %q", ModeHard.String())
	}
	if GameMode(9).String() != "mode(9)" {
		t.Fatalf("unexpected name for unknown mode %q", GameMode(9).String())
	}
}

func TestRawSessionDecodesClientJSON(t *testing.T) {
	doc := `{
		"localStartTime": "2024-02-03T10:00:00Z",
		"typedWordCount": 2,
		"typedCharacterCount": 9,
		"wrongCharacterCount": 1,
		"gameMode": "hard",
		"typingData": [
			{"word": "quick", "beginTimestamp": "2024-02-03T10:00:00Z", "endTimestamp": "2024-02-03T10:00:02Z", "mistakeCount": 1},
			{"word": "fox"}
		]
	}`
	var raw RawSessionStats
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.StartedAt == nil || raw.FinishedAt != nil {
		t.Fatalf("expected start only, got %v / %v", raw.StartedAt, raw.FinishedAt)
	}
	if raw.Mode != ModeHard || raw.TypedWords != 2 || raw.WrongChars != 1 {
		t.Fatalf("unexpected counters: %+v", raw)
	}
	if len(raw.TypingData) != 2 {
		t.Fatalf("expected 2 events, got %d", len(raw.TypingData))
	}
	if raw.TypingData[0].Mistakes != 1 || raw.TypingData[0].EndAt == nil {
		t.Fatalf("unexpected first event: %+v", raw.TypingData[0])
	}
	if raw.TypingData[1].BeginAt != nil || raw.TypingData[1].EndAt != nil {
		t.Fatalf("expected missing timestamps to stay nil")
	}
}

func TestGameModeTOML(t *testing.T) {
	var doc struct {
		Mode GameMode `toml:"mode"`
	}
	if _, err := toml.Decode(`mode = "short"`, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Mode != ModeShort {
		t.Fatalf("expected short, got %v", doc.Mode)
	}
}
