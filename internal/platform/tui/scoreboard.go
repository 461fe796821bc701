package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/soarscape/internal/config"
	"github.com/vovakirdan/soarscape/internal/registry"
	"github.com/vovakirdan/soarscape/internal/sim"
	"github.com/vovakirdan/soarscape/internal/storage"
)

// historyLimit caps how many sessions the scoreboard reads per mode.
const historyLimit = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardStatStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

// scoreboardKeys are the scoreboard bindings; they double as the help model.
type scoreboardKeys struct {
	Scroll     key.Binding
	Mode       key.Binding
	Difficulty key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Mode, k.Difficulty, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll:     key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
		Mode:       key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab/←/→", "mode")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the session history of one mode at a time, next to
// the persisted best score and aggregate stats.
type ScoreboardModel struct {
	modes      []registry.ModeInfo
	modeCursor int
	filter     config.Difficulty // empty shows every difficulty

	store  *storage.Store
	scores []storage.ScoreEntry
	best   int
	stats  *storage.ModeStats
	err    error

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the scoreboard on the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) mode() sim.GameMode {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.modeCursor].ID
}

// newTable sizes the columns to the terminal; the date column takes what is left.
func (m ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Score", Width: 7},
		{Title: "Difficulty", Width: 10},
		{Title: "Ticks", Width: 8},
		{Title: "Played", Width: 12},
	}
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width + 2
	}
	columns[len(columns)-1].Width = max(min(m.width-used-8, 20), 6)

	t := table.New(
		table.WithColumns(columns),
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

// reload reads the history, best score and stats of the selected mode.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.best, m.err = nil, nil, 0, nil
	mode := m.mode()
	if m.store != nil && mode != "" {
		m.best, m.err = m.store.LoadBest(mode)
		if m.err == nil {
			m.stats, m.err = m.store.GetModeStats(mode)
		}
		if m.err == nil {
			var all []storage.ScoreEntry
			all, m.err = m.store.TopScores(mode, historyLimit)
			for _, e := range all {
				if m.filter == "" || e.Difficulty == m.filter {
					m.scores = append(m.scores, e)
				}
			}
		}
	}
	m.fillTable()
}

// fillTable writes the loaded history into the table, starring entries that
// match the persisted best.
func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		rank := fmt.Sprintf("%d", i+1)
		if e.Score == m.best && m.best > 0 {
			rank = "★ " + rank
		}
		rows[i] = table.Row{
			rank,
			fmt.Sprintf("%d", e.Score),
			e.Difficulty.Title(),
			fmt.Sprintf("%d", e.Ticks),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycleMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.modeCursor = (m.modeCursor + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

// cycleFilter steps through all difficulties and back to no filter.
func (m *ScoreboardModel) cycleFilter() {
	all := config.Difficulties()
	switch m.filter {
	case "":
		m.filter = all[0]
	case all[len(all)-1]:
		m.filter = ""
	default:
		m.filter = m.filter.Next()
	}
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
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Mode):
			switch msg.String() {
			case "shift+tab", "left", "h":
				m.cycleMode(-1)
			default:
				m.cycleMode(1)
			}
			return m, nil
		case key.Matches(msg, m.keys.Difficulty):
			m.cycleFilter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, len(m.modes))
	for i, info := range m.modes {
		if i == m.modeCursor {
			tabs[i] = boardActiveTab.Render(info.Title)
		} else {
			tabs[i] = boardTabStyle.Render(info.Title)
		}
	}

	filter := "All difficulties"
	if m.filter != "" {
		filter = m.filter.Title()
	}

	body := m.table.View()
	switch {
	case m.err != nil:
		body = boardEmptyStyle.Render("Scores unavailable: " + m.err.Error())
	case m.store == nil:
		body = boardEmptyStyle.Render("No score database.")
	case len(m.scores) == 0:
		body = boardEmptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(boardTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")
	b.WriteString(boardStatStyle.Render(centerText(m.statsLine()+"  ·  "+filter, m.width)))
	b.WriteString("\n")
	b.WriteString(boardFrameStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// statsLine summarizes the persisted best and the history of the mode.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return fmt.Sprintf("Best %d", m.best)
	}
	return fmt.Sprintf("Best %d  ·  %d games  ·  avg %.1f  ·  %d ticks played  ·  last %s",
		m.best, m.stats.GamesCount, m.stats.AvgScore, m.stats.TotalTicks, m.stats.LastPlayed.Format("Jan 02"))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own.
// It reports whether the player went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	finalModel, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
