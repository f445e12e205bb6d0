package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	scoreboardLimit = 50 // rows loaded per layout
	sidebarWidth    = 24
	wideLayoutMin   = 80 // below this the layout list collapses into a single tab line
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev}, {k.Back, k.Quit}}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

var activeTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

// ScoreboardModel shows the best scores of one layout at a time.
type ScoreboardModel struct {
	layouts  []registry.GameInfo
	current  int
	store    *storage.Store
	scores   []storage.ScoreEntry
	stats    *storage.GameStats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard sized to width x height.
// When startID names a registered layout, its scores are shown first.
func NewScoreboardModel(store *storage.Store, width, height int, startID string) ScoreboardModel {
	m := ScoreboardModel{
		layouts: registry.List(),
		store:   store,
		help:    help.New(),
		keys:    DefaultScoreboardKeyMap(),
		width:   width,
		height:  height,
	}
	m.help.Width = width

	for i, l := range m.layouts {
		if l.ID == startID {
			m.current = i
		}
	}

	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideLayoutMin
}

func (m ScoreboardModel) newTable() table.Model {
	avail := m.width - 6
	if m.wide() {
		avail -= sidebarWidth + 4
	}
	dateWidth := min(max(avail-20, 12), 20)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Score", Width: 10},
			{Title: "Played", Width: dateWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload reads scores and stats for the current layout.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.layouts) > 0 {
		id := m.layouts[m.current].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, s := range m.scores {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// step moves the current layout by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.layouts) == 0 {
		return
	}
	n := len(m.layouts)
	m.current = ((m.current+delta)%n + n) % n
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// statsLine summarizes the selected layout's history.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games played"
	}
	return fmt.Sprintf("Games: %d  Best: %d  Avg: %.0f  Last: %d",
		m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.LastScore)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.layouts) > 0 {
		title += " · " + m.layouts[m.current].Title
	}

	var b strings.Builder
	b.WriteString(centerText(title, m.width, boardTitleStyle))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width, statsStyle))
	b.WriteString("\n\n")

	scores := panelStyle.Render(m.scoresPanel())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panelStyle.Render(m.layoutList()), "  ", scores))
	} else {
		b.WriteString(centerText(m.layoutTabs(), m.width, lipgloss.NewStyle()))
		b.WriteString("\n\n")
		b.WriteString(scores)
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// layoutList renders the sidebar of layouts for wide terminals.
func (m ScoreboardModel) layoutList() string {
	var b strings.Builder
	b.WriteString("Boards\n")
	b.WriteString(strings.Repeat("─", sidebarWidth-4))
	for i, l := range m.layouts {
		b.WriteString("\n")
		name := truncate(l.Title, sidebarWidth-6)
		if i == m.current {
			b.WriteString(boardTitleStyle.Render("> " + name))
			continue
		}
		b.WriteString("  " + name)
	}
	return lipgloss.NewStyle().Width(sidebarWidth - 2).Render(b.String())
}

// layoutTabs renders a single line of layouts for narrow terminals,
// falling back to "< current >" when the tabs do not fit.
func (m ScoreboardModel) layoutTabs() string {
	if len(m.layouts) == 0 {
		return ""
	}
	tabs := make([]string, len(m.layouts))
	for i, l := range m.layouts {
		name := truncate(l.Title, 10)
		if i == m.current {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = mutedStyle.Render(" " + name + " ")
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.layouts[m.current].Title)
	}
	return line
}

func (m ScoreboardModel) scoresPanel() string {
	if len(m.scores) == 0 {
		return mutedStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nClear a few rows to set a high score!")
	}
	return m.table.View()
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// It returns true when the user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, startID string) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, startID), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
