// match3 is a terminal match-3 puzzle: swap adjacent tokens to line up three
// or more of a kind before the move budget runs out.
//
// Usage:
//
//	match3 list              - List available board layouts
//	match3 play [layout]     - Play a layout (default: match3)
//	match3 menu              - Pick layouts interactively
//	match3 scores [layout]   - Show high scores for a layout
//	match3 serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.match3/scores.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the configured layouts
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - a tile-swapping puzzle for your terminal",
	Long: `Match-3 is a terminal puzzle game. Swap two neighbouring tokens to
line up three or more of the same kind; matched tokens clear, the
ones above fall down and new tokens drop in from the top. Every swap
that clears something costs a move, and the game ends when the move
budget runs out.

Available commands:
  list     - Show all board layouts
  play     - Play a layout directly
  menu     - Interactive layout picker
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  match3 list
  match3 play
  match3 play match3_holes --difficulty hard
  match3 menu
  match3 serve --ssh :2222
  match3 scores match3`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.match3/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger builds the logger for an interactive command. Bubble Tea owns
// the terminal there, so without --log-file the output is discarded.
// The returned func closes the log file, if any.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = io.Discard
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "match3",
		Level:           level,
	})
	return logger, closeFn, nil
}
