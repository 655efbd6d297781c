package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/scoring"
	"github.com/verte-zerg/typeracer/internal/stats"
)

var (
	scoreJSON   bool
	scoreSave   bool
	scorePlayer string
	scoreWindow int
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Score a raw session JSON document (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScoreCmd,
	}
	cmd.Flags().BoolVar(&scoreJSON, "json", false, "print the scored session as JSON")
	cmd.Flags().BoolVar(&scoreSave, "save", false, "store the scored session")
	cmd.Flags().StringVar(&scorePlayer, "player", "", "player to store the session for (guest when empty)")
	cmd.Flags().IntVar(&scoreWindow, "window", scoring.DefaultWindow, "per-word smoothing window")
	return cmd
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	if scoreWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open session file: %w", err)
		}
		defer func() {
			if cerr := file.Close(); cerr != nil {
				// Best-effort close after reading.
				_ = cerr
			}
		}()
		in = file
	}
	raw, err := decodeRawSession(in)
	if err != nil {
		return err
	}
	res := scoring.AssembleWindow(raw, scoreWindow)

	if scoreSave {
		if err := saveScored(cmd, res); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := stats.RenderResult(out, res, 0, 0, false); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func decodeRawSession(r io.Reader) (model.RawSessionStats, error) {
	var raw model.RawSessionStats
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return model.RawSessionStats{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return raw, nil
}

func saveScored(cmd *cobra.Command, res model.SessionResult) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	player := strings.TrimSpace(scorePlayer)
	playerID, err := resolvePlayer(cmd.Context(), st, model.Config{Player: player, Guest: player == ""})
	if err != nil {
		return err
	}
	id, err := st.SaveResult(cmd.Context(), playerID, res)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	logErrf("Saved session %s\n", id)
	return nil
}
