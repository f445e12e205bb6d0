package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// helpHeight is the number of lines reserved below the game for the help bar.
const helpHeight = 1

// resizer is implemented by games that can adapt to a new screen size
// without being reset.
type resizer interface {
	Resize(width, height int)
}

// selectionCanceler is implemented by games with a pending selection that
// Back should drop before leaving the game.
type selectionCanceler interface {
	CancelSelection() bool
}

// swapObserver is implemented by games that report every swap attempt.
type swapObserver interface {
	OnSwap(fn func(match3.SwapEvent))
}

// GameModel is the Bubble Tea model that drives one game: it maps keys to
// actions, steps the game on every tick and saves the final score.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	keys       GameKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	notifier   bool // game reports game over itself
	scoreSaved bool // fallback bookkeeping for games without a notifier
	exitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game.
// A nil store disables score saving and a nil logger discards log output.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		logger:     logger.With("game", game.ID()),
		keys:       DefaultGameKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}

	if n, ok := game.(registry.GameOverNotifier); ok {
		m.notifier = true
		n.OnGameOver(scoreSaver(store, m.logger))
	}
	if o, ok := game.(swapObserver); ok {
		o.OnSwap(swapLogger(m.logger))
	}

	return m
}

// scoreSaver returns the game over callback that persists final scores.
// The returned func only captures the store and logger, so it stays valid
// while Bubble Tea copies the model around.
func scoreSaver(store *storage.Store, logger *log.Logger) func(gameID string, score int) {
	return func(gameID string, score int) {
		logger.Info("game over", "score", score)
		if store == nil || score <= 0 {
			return
		}
		if _, err := store.SaveScore(gameID, score); err != nil {
			logger.Warn("could not save score", "error", err)
		}
	}
}

func swapLogger(logger *log.Logger) func(match3.SwapEvent) {
	return func(ev match3.SwapEvent) {
		if ev.Err != nil {
			logger.Debug("swap rejected", "from", ev.From, "to", ev.To, "error", ev.Err)
			return
		}
		logger.Debug("swap",
			"from", ev.From,
			"to", ev.To,
			"outcome", ev.Result.Outcome,
			"cleared", ev.Result.Cleared,
			"passes", len(ev.Result.Passes),
			"moves_left", ev.Result.MovesLeft,
		)
	}
}

func gameHeight(screenH int) int {
	return max(screenH-helpHeight, 0)
}

func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if c, ok := m.game.(selectionCanceler); ok && c.CancelSelection() {
			return m, nil
		}
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}
	case core.ActionRestart:
		if m.gameState.GameOver || m.gameState.Paused {
			m.inputFrame.Set(action)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the board and only informs the game of the new size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, gameHeight(msg.Height))

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, gameHeight(msg.Height))
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	return m, nil
}

// handleTick processes one simulation tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.logger.Info("restarted", "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if !m.notifier && m.gameState.GameOver && !m.scoreSaved {
		scoreSaver(m.store, m.logger)(m.game.ID(), m.gameState.Score)
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".match3", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the game followed by the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state as of the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the user quits or leaves it.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.exitOnBack = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
