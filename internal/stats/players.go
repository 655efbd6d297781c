package stats

import (
	"sort"

	"github.com/verte-zerg/typeracer/internal/model"
)

// PlayerBest is a player's best stored race.
type PlayerBest struct {
	Player   string
	BestWPM  float64
	Accuracy float64
	Sessions int
}

// BestByPlayer returns the top n players by best WPM. Guest sessions are
// grouped under one guest entry.
func BestByPlayer(sessions []model.SessionSummary, n int) []PlayerBest {
	if n <= 0 || len(sessions) == 0 {
		return nil
	}
	byName := map[string]*PlayerBest{}
	for _, s := range sessions {
		name := s.PlayerName
		if name == "" {
			name = guestLabel
		}
		entry, ok := byName[name]
		if !ok {
			entry = &PlayerBest{Player: name}
			byName[name] = entry
		}
		entry.Sessions++
		if s.WPM > entry.BestWPM {
			entry.BestWPM = s.WPM
			entry.Accuracy = s.Accuracy
		}
	}
	items := make([]PlayerBest, 0, len(byName))
	for _, entry := range byName {
		items = append(items, *entry)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].BestWPM == items[j].BestWPM {
			return items[i].Player < items[j].Player
		}
		return items[i].BestWPM > items[j].BestWPM
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
