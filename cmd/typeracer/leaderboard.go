package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/stats"
	"github.com/verte-zerg/typeracer/internal/store"
)

var (
	boardBy    string
	boardMode  string
	boardLimit int
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank stored races",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&boardBy, "by", string(store.ByWPM), "ranking metric (wpm, accuracy)")
	cmd.Flags().StringVar(&boardMode, "mode", "", "game mode filter")
	cmd.Flags().IntVar(&boardLimit, "limit", defaultBoardLimit, "number of places")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	by, err := parseMetric(boardBy)
	if err != nil {
		return err
	}
	if boardLimit < 1 {
		return fmt.Errorf("--limit must be >= 1")
	}
	query := store.LeaderboardQuery{By: by, Limit: boardLimit}
	if strings.TrimSpace(boardMode) != "" {
		mode, err := model.ParseGameMode(boardMode)
		if err != nil {
			return fmt.Errorf("invalid --mode: %w", err)
		}
		query.Mode = &mode
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	entries, err := st.Leaderboard(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}
	if err := stats.RenderLeaderboard(cmd.OutOrStdout(), entries); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func parseMetric(s string) (store.LeaderboardMetric, error) {
	switch metric := store.LeaderboardMetric(strings.ToLower(strings.TrimSpace(s))); metric {
	case store.ByWPM, store.ByAccuracy:
		return metric, nil
	default:
		return "", fmt.Errorf("invalid --by %q (use wpm or accuracy)", s)
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print one stored race with its per-word curves",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	id, err := st.ResolveID(cmd.Context(), strings.TrimSpace(args[0]))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no session matches %q", args[0])
		}
		return fmt.Errorf("failed to resolve session: %w", err)
	}
	res, err := st.GetResult(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Session %s\n", id); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderResult(out, res, 0, 0, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
