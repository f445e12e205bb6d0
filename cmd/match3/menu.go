package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick board layouts from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to pick a layout and Tab for
the scoreboard. After a game ends, Esc/B returns to the menu.

Examples:
  match3 menu
  match3 menu --difficulty hard
  match3 menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	lastID := ""

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, lastID)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "game", menuResult.GameID, "error", err)
			continue
		}
		lastID = menuResult.GameID

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		logger.Info("starting game", "game", lastID, "seed", cfg.Seed)

		if err := tui.Run(game, store, cfg, logger); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
	}
}
