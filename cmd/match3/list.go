package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all board layouts",
	Long: `Shows every board layout loaded from the configuration.

Layouts come from --config, ~/.match3/configs/match3.yaml,
./configs/match3.yaml or the built-in defaults, in that order.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom match-3 config YAML")
}

func runList(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No layouts available.")
		return nil
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Board")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Description)
	}

	fmt.Println()
	fmt.Println("Run 'match3 play <id>' to play a layout.")
	return nil
}
