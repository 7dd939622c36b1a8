package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilemerge/internal/games/t2048"
	"github.com/vovakirdan/tilemerge/internal/registry"
	"github.com/vovakirdan/tilemerge/internal/storage"
)

// History browser layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show variant sidebar
	sidebarWidth       = 20  // Width of variant sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextVariant, k.PrevVariant, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextVariant, k.PrevVariant},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyFilter is one entry of the variant selector. An empty ID shows
// every variant.
type historyFilter struct {
	ID    string
	Title string
}

// HistoryModel is the Bubble Tea model for the session history browser.
type HistoryModel struct {
	filters     []historyFilter
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       *storage.Stats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewHistoryModel creates a history browser. store may be nil.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	filters := []historyFilter{{ID: "", Title: "All boards"}}
	for _, g := range registry.List() {
		filters = append(filters, historyFilter{ID: g.ID, Title: g.Title})
	}

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		filters:     filters,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadRuns()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Board", Width: 10},
		{Title: "Best", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Merges", Width: 6},
		{Title: "Outcome", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Room for header, stats and help
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

// loadRuns loads runs and stats for the current filter.
func (m *HistoryModel) loadRuns() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil {
		variant := m.filters[m.cursor].ID
		m.runs, m.loadErr = m.store.RecentRuns(variant, maxRuns)
		if m.loadErr == nil && variant != "" {
			m.stats, m.loadErr = m.store.Stats(variant)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			r.Variant,
			bestTile(r.MaxRank),
			fmt.Sprintf("%d", r.Moves),
			fmt.Sprintf("%d", r.Merges),
			string(r.Outcome),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func bestTile(rank int) string {
	if rank < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", t2048.RankValue(rank))
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextVariant):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			m.cursor = (m.cursor - 1 + len(m.filters)) % len(m.filters)
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("HISTORY - %s", m.filters[m.cursor].Title)
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", panel))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.filters[m.cursor].Title), m.width))
		b.WriteString("\n\n")
		b.WriteString(panel)
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected variant.
func (m HistoryModel) statsLine() string {
	switch {
	case m.loadErr != nil:
		return "history unavailable: " + m.loadErr.Error()
	case m.stats == nil:
		return fmt.Sprintf("%d recent runs", len(m.runs))
	default:
		return fmt.Sprintf("%d runs  |  %d finished  |  best tile %s",
			m.stats.Runs, m.stats.Completed, bestTile(m.stats.BestMaxRank))
	}
}

func (m HistoryModel) renderSidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Boards\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, f := range m.filters {
		cursor := "  "
		line := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			line = line.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sb.WriteString(line.Render(cursor + f.Title))
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No games recorded yet.\nFinish a game to see it here!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history browser on its own.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
