package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewScores
)

// SessionModel is the root model of an SSH connection. It moves between
// the layout picker, a running game and the scoreboard inside a single
// Bubble Tea program, since an SSH session cannot start new programs the
// way the local CLI does.
type SessionModel struct {
	store  *storage.Store
	config core.RuntimeConfig
	logger *log.Logger

	view       sessionView
	menu       MenuModel
	gameModel  GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel starts a session on the layout picker. store and logger
// may be nil.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger,
		menu:   NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = size.Width, size.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The picker answers with tea.Quit when it is done; inside a session
	// that would close the connection, so its command is dropped.
	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}
	if m.menu.WantsScoreboard() {
		m.view = viewScores
		m.scoreboard = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, "")
		return m, m.scoreboard.Init()
	}
	if item := m.menu.Selected(); item != nil {
		return m.startGame(item.GameID)
	}
	return m, nil
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("cannot create game", "game", id, "error", err)
		return m.showMenu()
	}

	m.config.Seed = time.Now().UnixNano()
	m.gameModel = NewGameModel(game, m.store, m.config, m.logger)
	m.view = viewGame
	m.logger.Info("game started", "game", id)
	return m, m.gameModel.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	m.gameModel = next.(GameModel)

	switch {
	case m.gameModel.IsQuitting():
		return m.quit()
	case m.gameModel.BackToMenu():
		return m.showMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.showMenu()
	}
	return m, cmd
}

// showMenu opens a fresh picker so best scores are current. Ticks still
// queued by a finished game are ignored by the picker.
func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.view == viewGame:
		return m.gameModel.View()
	case m.view == viewScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
