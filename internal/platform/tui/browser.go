package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-dash/internal/catalog"
)

// BrowserKeyMap defines the key bindings for the level browser.
type BrowserKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BrowserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k BrowserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Refresh, k.Quit},
	}
}

// DefaultBrowserKeyMap returns default key bindings.
func DefaultBrowserKeyMap() BrowserKeyMap {
	return BrowserKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// BrowserModel lists catalog levels and lets the player pick one.
type BrowserModel struct {
	catalog  *catalog.Catalog
	entries  []catalog.Entry
	problems []catalog.Problem
	table    table.Model
	help     help.Model
	keys     BrowserKeyMap
	width    int
	height   int
	status   string
	selected *catalog.Entry
	quitting bool
}

// NewBrowserModel creates a level browser over cat.
func NewBrowserModel(cat *catalog.Catalog, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := BrowserModel{
		catalog: cat,
		keys:    DefaultBrowserKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.table = m.createTable()
	m.loadEntries()
	return m
}

// createTable creates a new table sized for the current window.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 14},
		{Title: "Title", Width: 22},
		{Title: "Source", Width: 9},
		{Title: "Obstacles", Width: 9},
		{Title: "Length", Width: 8},
	}

	// Give the title column whatever is left
	used := 14 + 9 + 9 + 8 + 5*2 + 6
	if extra := m.width - used; extra > 22 {
		columns[1].Width = min(extra, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
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

// loadEntries fills the table from the catalog snapshot.
// Every level is loaded so broken files show up before they are played.
func (m *BrowserModel) loadEntries() {
	m.entries = m.catalog.List()
	m.problems = m.catalog.Problems()

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		obstacles, length := "invalid", "-"
		if spec, err := m.catalog.Load(e.ID); err == nil {
			obstacles = fmt.Sprintf("%d", spec.Len())
			length = fmt.Sprintf("%.0f", spec.Length())
		}
		rows[i] = table.Row{e.ID, e.Title, e.Origin.String(), obstacles, length}
	}
	m.table.SetRows(rows)
}

// Init initializes the browser.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.entries) {
				selected := m.entries[cursor]
				m.selected = &selected
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if err := m.catalog.Refresh(); err != nil {
				m.status = err.Error()
			} else {
				m.status = fmt.Sprintf("%d levels", len(m.catalog.List()))
			}
			m.loadEntries()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.loadEntries()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("D A S H"), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No levels found.")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if n := len(m.problems); n > 0 {
		warn := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(warn.Render(fmt.Sprintf(" %d level file(s) skipped, see `dash levels`", n)))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(dimStyle.Render(" " + m.status))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Selected returns the chosen level, or nil if none was chosen yet.
func (m BrowserModel) Selected() *catalog.Entry {
	return m.selected
}

// IsQuitting returns true if the user requested to quit.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// clearSelection readies the browser for another pick.
func (m *BrowserModel) clearSelection() {
	m.selected = nil
	m.status = ""
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
