package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// MenuItem is one layout in the picker.
type MenuItem struct {
	GameID      string
	Title       string
	Description string
	Best        int // 0 when nothing was recorded
}

// menuChoice is how the picker was left.
type menuChoice int

const (
	choiceNone menuChoice = iota
	choicePlay
	choiceScores
	choiceQuit
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel lets the player pick a layout or open the scoreboard.
type MenuModel struct {
	items  []MenuItem
	cursor int
	choice menuChoice

	config core.RuntimeConfig
	keys   MenuKeyMap
	help   help.Model
}

// NewMenuModel lists every registered layout. With a non-nil store each
// item carries its best score.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	m.help.Width = cfg.ScreenW

	for _, info := range registry.List() {
		item := MenuItem{GameID: info.ID, Title: info.Title, Description: info.Description}
		if store != nil {
			// A broken store only hides the best score
			item.Best, _ = store.HighScore(info.ID)
		}
		m.items = append(m.items, item)
	}
	return m
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		if m.choice != choiceNone {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
		case key.Matches(msg, m.keys.Select):
			if len(m.items) > 0 {
				return m.leave(choicePlay)
			}
		case key.Matches(msg, m.keys.Scores):
			return m.leave(choiceScores)
		case key.Matches(msg, m.keys.Quit):
			return m.leave(choiceQuit)
		}
	}
	return m, nil
}

func (m MenuModel) leave(c menuChoice) (tea.Model, tea.Cmd) {
	m.choice = c
	return m, tea.Quit
}

func (m MenuModel) View() string {
	if m.choice == choiceQuit {
		return ""
	}
	width := m.config.ScreenW

	var b strings.Builder
	b.WriteString("\n" + centerText("  M A T C H - 3  ", width, menuTitleStyle) + "\n\n")
	b.WriteString(centerText("Select a board", width, menuDimStyle) + "\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No layouts configured", width, menuDimStyle) + "\n")
	}
	for i, item := range m.items {
		marker, style := "  ", lipgloss.NewStyle()
		if i == m.cursor {
			marker, style = "> ", menuActiveStyle
		}
		line := fmt.Sprintf("%s%-10s %-24s", marker, item.Title, item.Description)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		b.WriteString(centerText(line, width, style) + "\n")
	}

	b.WriteString("\n" + centerText(m.help.View(m.keys), width, menuDimStyle) + "\n")
	return b.String()
}

// Selected returns the picked layout, or nil.
func (m MenuModel) Selected() *MenuItem {
	if m.choice != choicePlay {
		return nil
	}
	item := m.items[m.cursor]
	return &item
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool { return m.choice == choiceQuit }

// WantsScoreboard reports whether the player asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool { return m.choice == choiceScores }

// Config returns the runtime config, including the latest window size.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

// centerText renders text with style, padded on the left to sit in the
// middle of width columns.
func centerText(text string, width int, style lipgloss.Style) string {
	pad := (width - lipgloss.Width(text)) / 2
	if pad <= 0 {
		return style.Render(text)
	}
	return strings.Repeat(" ", pad) + style.Render(text)
}

// MenuResult is what the standalone picker returns to the CLI loop.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the picker as its own Bubble Tea program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch m.choice {
	case choicePlay:
		res.GameID = m.Selected().GameID
	case choiceScores:
		res.WantsScoreboard = true
	default:
		// ctrl+c, or the program ended without a choice
		res.Quit = true
	}
	return res, nil
}
