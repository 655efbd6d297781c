// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/typeracer/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// Store wraps SQLite access for race data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			player_id TEXT REFERENCES players(id) ON DELETE SET NULL,
			mode INTEGER NOT NULL,
			started_at TEXT,
			finished_at TEXT,
			typed_words INTEGER NOT NULL,
			typed_chars INTEGER NOT NULL,
			wrong_chars INTEGER NOT NULL,
			completion_seconds REAL NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS typing_data (
			game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			word TEXT NOT NULL,
			begin_at TEXT,
			end_at TEXT,
			mistakes INTEGER NOT NULL,
			smoothed_wpm REAL NOT NULL,
			smoothed_accuracy REAL NOT NULL,
			PRIMARY KEY (game_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_created_at ON games(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_games_wpm ON games(wpm);`,
		`CREATE INDEX IF NOT EXISTS idx_games_player ON games(player_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// EnsurePlayer returns the id of the named player, creating it on first use.
func (s *Store) EnsurePlayer(ctx context.Context, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return uuid.Nil, fmt.Errorf("player name is empty")
	}
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ?`, name).Scan(&raw)
	switch {
	case err == nil:
		return uuid.Parse(raw)
	case !errors.Is(err, sql.ErrNoRows):
		return uuid.Nil, err
	}
	id := uuid.New()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)`,
		id.String(), name, s.now().UTC().Format(timeLayout),
	); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// SaveResult stores a scored session and its per-word data. A nil playerID
// stores a guest session.
func (s *Store) SaveResult(ctx context.Context, playerID *uuid.UUID, res model.SessionResult) (id uuid.UUID, err error) {
	if len(res.Words) != len(res.Stats.TypingData) {
		return uuid.Nil, fmt.Errorf("word metrics (%d) do not match typing data (%d)", len(res.Words), len(res.Stats.TypingData))
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	id = uuid.New()
	var player any
	if playerID != nil {
		player = playerID.String()
	}
	raw := res.Stats
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, player_id, mode, started_at, finished_at, typed_words, typed_chars, wrong_chars, completion_seconds, wpm, accuracy, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(),
		player,
		int(raw.Mode),
		formatTime(raw.StartedAt),
		formatTime(raw.FinishedAt),
		raw.TypedWords,
		raw.TypedChars,
		raw.WrongChars,
		res.CompletionSeconds,
		res.WPM,
		res.Accuracy,
		s.now().UTC().Format(timeLayout),
	); err != nil {
		return uuid.Nil, err
	}

	if len(raw.TypingData) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO typing_data (game_id, position, word, begin_at, end_at, mistakes, smoothed_wpm, smoothed_accuracy)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return uuid.Nil, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, ev := range raw.TypingData {
			if _, err = stmt.ExecContext(ctx, id.String(), i, ev.Word,
				formatTime(ev.BeginAt), formatTime(ev.EndAt), ev.Mistakes,
				res.Words[i].SmoothedWPM, res.Words[i].SmoothedAccuracy,
			); err != nil {
				return uuid.Nil, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// GetResult loads a stored session with its per-word data.
func (s *Store) GetResult(ctx context.Context, id uuid.UUID) (model.SessionResult, error) {
	var res model.SessionResult
	var mode int
	var startedAt, finishedAt sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT mode, started_at, finished_at, typed_words, typed_chars, wrong_chars, completion_seconds, wpm, accuracy
		 FROM games WHERE id = ?`, id.String(),
	).Scan(&mode, &startedAt, &finishedAt, &res.Stats.TypedWords, &res.Stats.TypedChars, &res.Stats.WrongChars,
		&res.CompletionSeconds, &res.WPM, &res.Accuracy)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SessionResult{}, ErrNotFound
	}
	if err != nil {
		return model.SessionResult{}, err
	}
	res.Stats.Mode = model.GameMode(mode)
	if res.Stats.StartedAt, err = parseTime(startedAt); err != nil {
		return model.SessionResult{}, err
	}
	if res.Stats.FinishedAt, err = parseTime(finishedAt); err != nil {
		return model.SessionResult{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word, begin_at, end_at, mistakes, smoothed_wpm, smoothed_accuracy
		 FROM typing_data WHERE game_id = ? ORDER BY position ASC`, id.String())
	if err != nil {
		return model.SessionResult{}, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	res.Stats.TypingData = []model.WordEvent{}
	res.Words = []model.WordMetric{}
	for rows.Next() {
		var ev model.WordEvent
		var metric model.WordMetric
		var beginAt, endAt sql.NullString
		if err := rows.Scan(&ev.Word, &beginAt, &endAt, &ev.Mistakes, &metric.SmoothedWPM, &metric.SmoothedAccuracy); err != nil {
			return model.SessionResult{}, err
		}
		if ev.BeginAt, err = parseTime(beginAt); err != nil {
			return model.SessionResult{}, err
		}
		if ev.EndAt, err = parseTime(endAt); err != nil {
			return model.SessionResult{}, err
		}
		res.Stats.TypingData = append(res.Stats.TypingData, ev)
		res.Words = append(res.Words, metric)
	}
	if err := rows.Err(); err != nil {
		return model.SessionResult{}, err
	}
	return res, nil
}

// ResolveID finds the session whose id starts with prefix.
func (s *Store) ResolveID(ctx context.Context, prefix string) (uuid.UUID, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || strings.ContainsAny(prefix, "%_") {
		return uuid.Nil, ErrNotFound
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM games WHERE id LIKE ? LIMIT 2`, prefix+"%")
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return uuid.Nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return uuid.Nil, err
	}
	switch len(ids) {
	case 0:
		return uuid.Nil, ErrNotFound
	case 1:
		return uuid.Parse(ids[0])
	default:
		return uuid.Nil, fmt.Errorf("session id prefix %q is ambiguous", prefix)
	}
}

// ListSessions returns stored sessions filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionSummary, error) {
	where, args := filterClauses(cfg)
	query := fmt.Sprintf(`SELECT g.id, COALESCE(p.name, ''), g.mode, g.created_at, g.completion_seconds, g.wpm, g.accuracy,
			(SELECT COUNT(*) FROM typing_data t WHERE t.game_id = g.id)
		FROM games g
		LEFT JOIN players p ON p.id = g.player_id
		WHERE %s
		ORDER BY g.created_at ASC`, where)
	sessions, err := s.querySummaries(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// LeaderboardMetric selects the ranking column.
type LeaderboardMetric string

const (
	ByWPM      LeaderboardMetric = "wpm"
	ByAccuracy LeaderboardMetric = "accuracy"
)

// LeaderboardQuery filters and limits a leaderboard.
type LeaderboardQuery struct {
	By    LeaderboardMetric
	Mode  *model.GameMode
	Limit int
}

// Leaderboard ranks stored sessions by the chosen metric. Ties on the primary
// metric are broken by the other metric, then by the earlier session.
func (s *Store) Leaderboard(ctx context.Context, q LeaderboardQuery) ([]model.LeaderboardEntry, error) {
	order := "g.wpm DESC, g.accuracy DESC"
	switch q.By {
	case "", ByWPM:
	case ByAccuracy:
		order = "g.accuracy DESC, g.wpm DESC"
	default:
		return nil, fmt.Errorf("unknown leaderboard metric %q", q.By)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	where, args := filterClauses(model.StatsConfig{Mode: q.Mode})
	query := fmt.Sprintf(`SELECT g.id, COALESCE(p.name, ''), g.mode, g.created_at, g.completion_seconds, g.wpm, g.accuracy,
			(SELECT COUNT(*) FROM typing_data t WHERE t.game_id = g.id)
		FROM games g
		LEFT JOIN players p ON p.id = g.player_id
		WHERE %s AND g.completion_seconds > 0
		ORDER BY %s, g.created_at ASC
		LIMIT ?`, where, order)
	args = append(args, limit)
	sessions, err := s.querySummaries(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	entries := make([]model.LeaderboardEntry, len(sessions))
	for i, session := range sessions {
		entries[i] = model.LeaderboardEntry{Rank: i + 1, Session: session}
	}
	return entries, nil
}

func filterClauses(cfg model.StatsConfig) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != nil {
		clauses = append(clauses, "g.mode = ?")
		args = append(args, int(*cfg.Mode))
	}
	if cfg.Player != "" {
		clauses = append(clauses, "p.name = ?")
		args = append(args, cfg.Player)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "g.created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	return strings.Join(clauses, " AND "), args
}

func (s *Store) querySummaries(ctx context.Context, query string, args ...any) ([]model.SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionSummary
	for rows.Next() {
		var sum model.SessionSummary
		var mode int
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.PlayerName, &mode, &createdAt, &sum.CompletionSeconds, &sum.WPM, &sum.Accuracy, &sum.WordCount); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		sum.Mode = model.GameMode(mode)
		sum.CreatedAt = parsed
		sessions = append(sessions, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	parsed, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
