package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMoves      int
)

var playCmd = &cobra.Command{
	Use:   "play [layout]",
	Short: "Play a board layout",
	Long: `Start playing the given layout (default: match3).

Controls:
  Arrows/WASD/hjkl - Move cursor
  Space/Enter      - Select a token, then a neighbour to swap
  X                - Drop the selection
  Esc/B            - Drop the selection, or leave when paused/over
  P                - Pause
  R                - Restart (when paused or after game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 50% more moves, one token kind fewer
  normal - Moves and kinds as configured
  hard   - 30% fewer moves

Examples:
  match3 play
  match3 play match3_holes
  match3 play match3_mini --difficulty easy
  match3 play --moves 5 --seed 42
  match3 play --config ./my-boards.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom match-3 config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
		cmd.Flags().IntVar(&flagMoves, "moves", 0, "Override the starting move budget (0 = from config)")
	}
}

// applyGameFlags hands --config, --difficulty and --moves to the game
// package before any layout is created.
func applyGameFlags() error {
	if flagMoves < 0 {
		return fmt.Errorf("--moves must not be negative, got %d", flagMoves)
	}
	if err := match3.SetDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	match3.SetMovesOverride(flagMoves)
	return match3.Configure(flagConfig)
}

// terminalConfig builds the runtime config from the terminal size and
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) > 0 {
		gameID = args[0]
	}

	if err := applyGameFlags(); err != nil {
		return err
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown layout %q, run 'match3 list' to see available layouts", gameID)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "seed", flagSeed)
	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
