package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/config"
	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/scoring"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeracer configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# mode = %q         # standard, short or hard
# player = "name"          # Player name; leave unset to race as guest
# paragraphs = %q
# window = %d               # Per-word smoothing window

[stats]
# curve-window = %d        # Moving average window for learning curves
# last = 0                 # Limit history to the last N sessions (0 = all)
`,
		defaultMode,
		config.DefaultParagraphsPath(),
		scoring.DefaultWindow,
		defaultCurveWindow,
	)
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Choose default player and game mode",
		Args:  cobra.NoArgs,
		RunE:  runSetupCmd,
	}
}

func runSetupCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	player := ""
	if fileCfg.Game.Player != nil {
		player = *fileCfg.Game.Player
	}
	mode := defaultMode
	if fileCfg.Game.Mode != nil {
		mode = *fileCfg.Game.Mode
	}

	modeOptions := make([]huh.Option[string], 0, len(model.GameModes()))
	for _, m := range model.GameModes() {
		modeOptions = append(modeOptions, huh.NewOption(m.String(), m.String()))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Player name").
				Description("Leave empty to race as guest.").
				Value(&player).
				Validate(validatePlayerName),
			huh.NewSelect[string]().
				Title("Default game mode").
				Options(modeOptions...).
				Value(&mode),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			logErrln("Setup cancelled.")
			return nil
		}
		return fmt.Errorf("failed to run setup form: %w", err)
	}

	applySetup(&fileCfg, player, mode)
	if err := config.SaveConfig(path, fileCfg); err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func validatePlayerName(name string) error {
	if len([]rune(strings.TrimSpace(name))) > 32 {
		return fmt.Errorf("at most 32 characters")
	}
	return nil
}

// applySetup stores the form answers; an empty player clears the setting.
func applySetup(cfg *config.FileConfig, player, mode string) {
	player = strings.TrimSpace(player)
	if player == "" {
		cfg.Game.Player = nil
	} else {
		cfg.Game.Player = &player
	}
	cfg.Game.Mode = &mode
}
