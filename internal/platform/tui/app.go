package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/catalog"
	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/session"
)

// AppModel manages the full flow: level browser -> game -> browser.
// Each AppModel owns its sessions, so one is created per terminal or SSH
// connection.
type AppModel struct {
	catalog  *catalog.Catalog
	runner   config.RunnerConfig
	config   core.RuntimeConfig
	browser  BrowserModel
	game     *GameModel
	quitting bool
}

// NewAppModel creates the browser-first application model.
func NewAppModel(cat *catalog.Catalog, runner config.RunnerConfig, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		catalog: cat,
		runner:  runner,
		config:  cfg,
		browser: NewBrowserModel(cat, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the browser.
func (m AppModel) Init() tea.Cmd {
	return m.browser.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateBrowser(msg)
}

func (m AppModel) updateBrowser(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBrowser, cmd := m.browser.Update(msg)
	if browser, ok := newBrowser.(BrowserModel); ok {
		m.browser = browser
	}

	if m.browser.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	entry := m.browser.Selected()
	if entry == nil {
		return m, cmd
	}
	m.browser.clearSelection()

	src, err := m.catalog.Source(entry.ID)
	if err != nil {
		m.browser.status = err.Error()
		return m, nil
	}

	// A level that fails to load still opens: the title screen shows the
	// error and M goes back to the browser.
	sess := session.New(src, m.runner)
	//nolint:errcheck // Failure is kept in the session and rendered
	sess.Start()

	game := NewGameModel(sess, m.config).WithBrowser()
	m.game = &game
	return m, m.game.Init()
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if game, ok := newModel.(GameModel); ok {
		m.game = &game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.browser.loadEntries()
		// The browser missed resizes while the game was running.
		newBrowser, _ := m.browser.Update(tea.WindowSizeMsg{Width: m.config.ScreenW, Height: m.config.ScreenH})
		if browser, ok := newBrowser.(BrowserModel); ok {
			m.browser = browser
		}
		return m, nil
	}

	return m, cmd
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.browser.View()
}

// RunMenu runs the level browser and the games started from it.
func RunMenu(cat *catalog.Catalog, runner config.RunnerConfig, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewAppModel(cat, runner, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
