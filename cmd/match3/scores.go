package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores [layout]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a layout, or a summary of every
layout that has been played when no layout is given.

Examples:
  match3 scores
  match3 scores match3_holes
  match3 scores match3 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the layout")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a layout")
		}
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown layout %q, run 'match3 list' to see available layouts", gameID)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}

	return printLayoutScores(store, gameID)
}

func printLayoutScores(store *storage.Store, gameID string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	title := gameID
	if info, ok := registry.Info(gameID); ok {
		title = info.Title
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if last, ok, err := store.LastScore(gameID); err == nil && ok {
		fmt.Printf("Last: %d\n", last)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	fmt.Printf("  %-16s  %6s  %6s  %8s  %6s  %s\n", "Layout", "Games", "Best", "Average", "Last", "Last played")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %6d  %6d  %8.1f  %6d  %s\n",
			g.ID, s.GamesCount, s.HighScore, s.AvgScore, s.LastScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
