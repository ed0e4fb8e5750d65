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

	"github.com/vovakirdan/flappy-bounce/internal/assets"
	"github.com/vovakirdan/flappy-bounce/internal/replay"
	"github.com/vovakirdan/flappy-bounce/internal/storage"
)

// Replay browser layout constants
const (
	maxReplays  = 100 // Max replays to load
	tableChrome = 8   // Rows used by title, borders, status and help
)

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Verify},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
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

// ReplayModel is the Bubble Tea model for the replay browser.
type ReplayModel struct {
	store     *storage.Store
	provider  *assets.Provider
	replays   []storage.Replay
	table     table.Model
	help      help.Model
	keys      ReplayKeyMap
	width     int
	height    int
	status    string
	loadErr   error
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewReplayModel creates a new replay browser.
func NewReplayModel(store *storage.Store, provider *assets.Provider, width, height int) ReplayModel {
	h := help.New()
	h.ShowAll = false

	m := ReplayModel{
		store:    store,
		provider: provider,
		keys:     DefaultReplayKeyMap(),
		help:     h,
		width:    width,
		height:   height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "Seed", Width: 20},
		{Title: "Date", Width: 14},
	}

	height := m.height - tableChrome
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadReplays reads the most recent replays.
func (m *ReplayModel) loadReplays() {
	m.replays = nil
	m.loadErr = nil
	if m.store != nil {
		replays, err := m.store.RecentReplays(maxReplays)
		if err != nil {
			m.loadErr = err
		} else {
			m.replays = replays
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded replays.
func (m *ReplayModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.TickCount),
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoBottom()
	}
}

// current returns the replay under the cursor.
func (m ReplayModel) current() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// verify simulates the selected replay and compares the score.
func (m *ReplayModel) verify() {
	sel, ok := m.current()
	if !ok {
		return
	}
	full, err := m.store.Replay(sel.ID)
	if err != nil {
		m.status = fmt.Sprintf("replay #%d: %v", sel.ID, err)
		return
	}
	out, err := replay.Run(replay.FromRecord(full), m.provider)
	if err != nil {
		m.status = fmt.Sprintf("replay #%d: %v", sel.ID, err)
		return
	}
	if out.Score == full.Score {
		m.status = fmt.Sprintf("replay #%d verified: score %d, %s", sel.ID, out.Score, out.Phase)
		return
	}
	m.status = fmt.Sprintf("replay #%d MISMATCH: recorded %d, simulated %d", sel.ID, full.Score, out.Score)
}

// remove deletes the selected replay.
func (m *ReplayModel) remove() {
	sel, ok := m.current()
	if !ok {
		return
	}
	if err := m.store.DeleteReplay(sel.ID); err != nil {
		m.status = fmt.Sprintf("delete #%d: %v", sel.ID, err)
		return
	}
	m.status = fmt.Sprintf("deleted replay #%d", sel.ID)
	m.loadReplays()
}

// Init initializes the replay browser.
func (m ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Verify):
			m.verify()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.remove()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplayModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(centerText(titleStyle.Render("REPLAYS"), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ReplayModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot load replays:\n" + m.loadErr.Error())
	case len(m.replays) == 0:
		return emptyStyle.Render("No replays recorded yet.\nPlay a round to record one!")
	}
	return m.table.View()
}

// Status returns the last status line.
func (m ReplayModel) Status() string {
	return m.status
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayModel) IsGoingBack() bool {
	return m.goingBack
}

// RunReplays runs the replay browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplays(store *storage.Store, provider *assets.Provider, width, height int) (goBack bool, err error) {
	model := NewReplayModel(store, provider, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplayModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
