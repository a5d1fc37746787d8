package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/star-dodge/internal/registry"
	"github.com/vovakirdan/star-dodge/internal/storage"
)

// boardLimit is the number of runs loaded per tab.
const boardLimit = 100

// allShips is the tab listing every ship's runs together.
var allShips = registry.SkinInfo{Title: "All ships"}

type boardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Next, k.Back, k.Quit}
}

func (k boardKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var boardKeys = boardKeyMap{
	Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
	Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "next ship")),
	Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev ship")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	boardMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel browses the saved runs one ship at a time.
type ScoreboardModel struct {
	store  *storage.Store
	logger *log.Logger
	tabs   []registry.SkinInfo
	tab    int
	scores []storage.ScoreEntry
	stats  map[string]*storage.SkinStats
	table  table.Model
	help   help.Model

	width, height int
	goingBack     bool
	quitting      bool
}

// NewScoreboardModel creates the scoreboard on the "All ships" tab. A nil
// logger discards output.
func NewScoreboardModel(store *storage.Store, width, height int, logger *log.Logger) ScoreboardModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := ScoreboardModel{
		store:  store,
		logger: logger,
		tabs:   append([]registry.SkinInfo{allShips}, registry.List()...),
		help:   help.New(),
		width:  width,
		height: height,
	}
	if store != nil {
		stats, err := store.Stats()
		if err != nil {
			logger.Warn("Could not load stats", "error", err)
		}
		m.stats = stats
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Ship", Width: 10},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 13},
	}
	if m.width >= 80 {
		cols[2].Width = 20
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches the runs of the current tab.
func (m *ScoreboardModel) load() {
	m.scores = nil
	if m.store != nil {
		scores, err := m.store.TopScores(m.tabs[m.tab].ID, boardLimit)
		if err != nil {
			m.logger.Warn("Could not load scores", "skin", m.tabs[m.tab].ID, "error", err)
		}
		m.scores = scores
	}

	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{strconv.Itoa(i + 1), e.Skin, player, strconv.Itoa(e.Score), e.CreatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Next):
			m.tab = (m.tab + 1) % len(m.tabs)
			m.load()
			return m, nil
		case key.Matches(msg, boardKeys.Prev):
			m.tab = (m.tab + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = boardActiveTab.Render(t.Title)
		} else {
			tabs[i] = boardTabStyle.Render(t.Title)
		}
	}

	body := boardEmptyStyle.Render("No runs recorded yet.\nDodge some meteorites to set a high score!")
	if len(m.scores) > 0 {
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(body)))
	b.WriteString("\n")
	b.WriteString(centerText(boardMutedStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")
	b.WriteString(boardMutedStyle.Render(m.help.View(boardKeys)))
	return b.String()
}

// summary describes the runs of the current tab from the aggregated stats.
func (m ScoreboardModel) summary() string {
	runs, best, total := 0, 0, 0.0
	for id, st := range m.stats {
		if m.tabs[m.tab].ID != "" && id != m.tabs[m.tab].ID {
			continue
		}
		runs += st.Runs
		best = max(best, st.HighScore)
		total += st.AvgScore * float64(st.Runs)
	}
	if runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs · best %d · average %.1f", runs, best, total/float64(runs))
}

// IsGoingBack reports whether the board was closed with back.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the player quit from the board.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard runs the scoreboard. It returns true when the player went
// back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, logger *log.Logger) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, logger), tea.WithAltScreen())

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
