// Package main provides the CLI entrypoint for typeracer.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/config"
	"github.com/verte-zerg/typeracer/internal/generator"
	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/paragraphs"
	"github.com/verte-zerg/typeracer/internal/scoring"
	"github.com/verte-zerg/typeracer/internal/store"
	"github.com/verte-zerg/typeracer/internal/tui"
)

const (
	defaultMode        = "standard"
	defaultCurveWindow = 10
	defaultBoardLimit  = 10
)

var (
	playMode       string
	playPlayer     string
	playGuest      bool
	playParagraphs string
	playWindow     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeracer",
		Short:         "Terminal typing race with per-word scoring",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "game mode (standard, short, hard)")
	rootCmd.Flags().StringVar(&playPlayer, "player", "", "player name (empty races as guest)")
	rootCmd.Flags().BoolVar(&playGuest, "guest", false, "race as guest even when a player is configured")
	rootCmd.Flags().StringVar(&playParagraphs, "paragraphs", config.DefaultParagraphsPath(), "paragraph file (blank-line separated)")
	rootCmd.Flags().IntVar(&playWindow, "window", scoring.DefaultWindow, "per-word smoothing window")

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetupCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Game.Mode)
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Game.Player)
	applyStringConfig(cmd, "paragraphs", &playParagraphs, fileCfg.Game.Paragraphs)
	applyIntConfig(cmd, "window", &playWindow, fileCfg.Game.Window)

	mode, err := model.ParseGameMode(playMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	cfg := model.Config{
		Mode:           mode,
		Player:         strings.TrimSpace(playPlayer),
		Guest:          playGuest || strings.TrimSpace(playPlayer) == "",
		ParagraphsPath: playParagraphs,
		Window:         playWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	texts, err := paragraphs.LoadOrBuiltin(cfg.ParagraphsPath)
	if err != nil {
		return fmt.Errorf("failed to load paragraphs: %w", err)
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	playerID, err := resolvePlayer(cmd.Context(), st, cfg)
	if err != nil {
		return err
	}

	race := tui.NewModel(cfg, st, generator.New(), texts, playerID)
	program := tea.NewProgram(race, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolvePlayer returns nil for guests and the stored id otherwise.
func resolvePlayer(ctx context.Context, st *store.Store, cfg model.Config) (*uuid.UUID, error) {
	if cfg.Guest {
		return nil, nil
	}
	id, err := st.EnsurePlayer(ctx, cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}
	return &id, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Window < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	if !cfg.Guest && len([]rune(cfg.Player)) > 32 {
		return fmt.Errorf("--player must be at most 32 characters")
	}
	return nil
}

func openStore() (*store.Store, func(), error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
