package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions    []model.SessionSummary
	Leaderboard []model.LeaderboardEntry
	// Latest is the most recent session in Sessions with its per-word data.
	Latest    *model.SessionResult
	LatestID  string
	TopRacers []PlayerBest
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig, by store.LeaderboardMetric) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	board, err := st.Leaderboard(ctx, store.LeaderboardQuery{By: by, Mode: cfg.Mode, Limit: 20})
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Sessions:    sessions,
		Leaderboard: board,
		TopRacers:   BestByPlayer(sessions, 5),
	}
	if len(sessions) == 0 {
		return report, nil
	}
	last := sessions[len(sessions)-1]
	id, err := uuid.Parse(last.ID)
	if err != nil {
		return Report{}, err
	}
	latest, err := st.GetResult(ctx, id)
	if err != nil {
		return Report{}, err
	}
	report.Latest = &latest
	report.LatestID = last.ID
	return report, nil
}
