// Package registry maps board layout IDs to game constructors.
// Layouts register from init functions; the CLI and TUI look them up by ID
// and never import a game package directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Game is a playable layout driven by the platform tick loop. Implementations
// hold pure logic and draw into a core.Screen; key handling, timing and
// terminal output belong to the platform.
type Game interface {
	// ID is the stable key used on the command line and in the score store.
	ID() string
	Title() string

	// Reset starts a new game with cfg. It is also how a restart happens.
	Reset(cfg core.RuntimeConfig)

	// Step applies the actions collected during one tick.
	Step(in core.InputFrame) core.StepResult

	Render(dst *core.Screen)
	State() core.GameState
}

// GameOverNotifier is implemented by games that report a finished game
// themselves. The callback fires exactly once per finished game, with the
// game ID and final score.
type GameOverNotifier interface {
	OnGameOver(fn func(gameID string, score int))
}

// Describer is implemented by games that can summarize their setup
// (board size, move budget) for listings.
type Describer interface {
	Description() string
}

// GameInfo is what listings show for a layout.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory returns a fresh, not yet Reset game.
type Factory func() Game

type entry struct {
	info GameInfo
	new  Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register makes f available under id. Registering an id twice panics,
// since it can only come from two init functions claiming the same layout.
func Register(id string, f Factory) {
	// Metadata is read from a throwaway instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{info: info, new: f}
}

func lookup(id string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e, ok
}

// Create builds a new instance of the layout id.
func Create(id string) (Game, error) {
	e, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.new(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := lookup(id)
	return ok
}

// Info returns the listing metadata of id.
func Info(id string) (GameInfo, bool) {
	e, ok := lookup(id)
	return e.info, ok
}

// List returns every registered layout ordered by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
