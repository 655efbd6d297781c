package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/config"
	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/stats"
	"github.com/verte-zerg/typeracer/internal/statsui"
	"github.com/verte-zerg/typeracer/internal/store"
)

var (
	statsMode        string
	statsPlayer      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsBy          string
	statsPlain       bool
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse race history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "game mode filter")
	cmd.Flags().StringVar(&statsPlayer, "player", "", "player filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window for learning curves")
	cmd.Flags().StringVar(&statsBy, "by", string(store.ByWPM), "leaderboard metric (wpm, accuracy)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)

	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}
	by, err := parseMetric(statsBy)
	if err != nil {
		return err
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if statsPlain {
		return printStatsReport(cmd, st, cfg, by)
	}
	browser := statsui.NewModel(st, cfg, by)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Player:      strings.TrimSpace(statsPlayer),
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}
	if cfg.Last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow < 1 {
		return cfg, fmt.Errorf("--curve-window must be >= 1")
	}
	if strings.TrimSpace(statsMode) != "" {
		mode, err := model.ParseGameMode(statsMode)
		if err != nil {
			return cfg, fmt.Errorf("invalid --mode: %w", err)
		}
		cfg.Mode = &mode
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func printStatsReport(cmd *cobra.Command, st *store.Store, cfg model.StatsConfig, by store.LeaderboardMetric) error {
	report, err := stats.BuildReport(cmd.Context(), st, cfg, by)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Sessions); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(out, report.Sessions, cfg.CurveWindow); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderLeaderboard(out, report.Leaderboard); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
