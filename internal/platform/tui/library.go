package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hnjm/2DTileMapLevelEditor/internal/storage"
)

// ErrNoLibrary is returned when the level library database is unavailable.
var ErrNoLibrary = errors.New("tui: level library not available")

// LibraryKeyMap defines the key bindings for the level library.
type LibraryKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Save    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Back    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LibraryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Save, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LibraryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Save},
		{k.Delete, k.Refresh, k.Back},
	}
}

// DefaultLibraryKeyMap returns default key bindings.
func DefaultLibraryKeyMap() LibraryKeyMap {
	return LibraryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "store open level"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "back"),
		),
	}
}

// LibraryModel is the Bubble Tea model for browsing stored levels.
type LibraryModel struct {
	store         *storage.Store
	levels        []storage.LevelInfo
	stats         *storage.LibraryStats
	table         table.Model
	help          help.Model
	keys          LibraryKeyMap
	width         int
	height        int
	err           error
	pendingDelete string               // Name awaiting a second delete press
	chosen        *storage.LevelRecord // Set when the user opens a level
	wantsSave     bool                 // Set when the user asks to store the open level
	goingBack     bool
}

// NewLibraryModel creates a library browser over store.
func NewLibraryModel(store *storage.Store, width, height int) LibraryModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := LibraryModel{
		store:  store,
		keys:   DefaultLibraryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

// createTable creates a new table sized to the window.
func (m *LibraryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Size", Width: 10},
		{Title: "Bytes", Width: 12},
		{Title: "Updated", Width: 14},
	}

	// Give spare width to the name column
	tableWidth := m.width - 6 // Border and padding
	if spare := tableWidth - 62; spare > 0 {
		columns[0].Width += spare
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for title, help, and margins
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

// reload reads the level list and statistics from the store.
func (m *LibraryModel) reload() {
	m.err = nil
	if m.store == nil {
		m.levels = nil
		m.err = ErrNoLibrary
		m.updateTableRows()
		return
	}

	levels, err := m.store.ListLevels()
	if err != nil {
		m.err = err
		levels = nil
	}
	m.levels = levels

	stats, err := m.store.Stats()
	if err == nil {
		m.stats = stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current level list.
func (m *LibraryModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, lvl := range m.levels {
		rows[i] = table.Row{
			lvl.Name,
			fmt.Sprintf("%dx%dx%d", lvl.Width, lvl.Height, lvl.Layers),
			fmt.Sprintf("%d/%d", lvl.StoredSize, lvl.RawSize),
			lvl.UpdatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// selectedName returns the name under the table cursor.
func (m LibraryModel) selectedName() (string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.levels) {
		return "", false
	}
	return m.levels[i].Name, true
}

// Init initializes the library model.
func (m LibraryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the library browser.
func (m LibraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		pending := m.pendingDelete
		m.pendingDelete = ""

		switch {
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Open):
			name, ok := m.selectedName()
			if !ok {
				return m, nil
			}
			rec, err := m.store.LoadLevel(name)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.chosen = rec
			return m, nil

		case key.Matches(msg, m.keys.Save):
			if m.store != nil {
				m.wantsSave = true
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			name, ok := m.selectedName()
			if !ok {
				return m, nil
			}
			if pending != name {
				m.pendingDelete = name
				return m, nil
			}
			if err := m.store.DeleteLevel(name); err != nil {
				m.err = err
				return m, nil
			}
			m.reload()
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

// View renders the library browser.
func (m LibraryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "LEVEL LIBRARY"
	if m.stats != nil && m.stats.Count > 0 {
		title = fmt.Sprintf("LEVEL LIBRARY - %d levels, %d of %d bytes stored",
			m.stats.Count, m.stats.StoredBytes, m.stats.RawBytes)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.pendingDelete != "":
		b.WriteString(messageStyle.Render(fmt.Sprintf("press d again to delete %q", m.pendingDelete)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m LibraryModel) renderTableContent() string {
	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No levels in the library yet.\nPress s to store the open level.")
	}

	return m.table.View()
}

// Chosen returns the level the user opened, if any.
func (m LibraryModel) Chosen() *storage.LevelRecord {
	return m.chosen
}

// WantsSave returns true if the user asked to store the open level.
func (m LibraryModel) WantsSave() bool {
	return m.wantsSave
}

// IsGoingBack returns true if user wants to go back to the editor.
func (m LibraryModel) IsGoingBack() bool {
	return m.goingBack
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
