package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/session"
)

// GameModel is the Bubble Tea model that drives one runner session.
// The session itself owns all game state; the model only feeds it input
// frames at a fixed tick rate and draws it.
type GameModel struct {
	session    *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	changes    <-chan string
	loop       uint64
	browsable  bool // Leaving the title screen returns to the level browser
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for sess.
func NewGameModel(sess *session.Session, cfg core.RuntimeConfig) GameModel {
	return GameModel{
		session:    sess,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       nextLoop(),
	}
}

// WithChanges makes the model reload the level whenever events delivers a path.
func (m GameModel) WithChanges(events <-chan string) GameModel {
	m.changes = events
	return m
}

// WithBrowser lets M or Esc on the title screen go back to the level browser.
func (m GameModel) WithBrowser() GameModel {
	m.browsable = true
	return m
}

// Init starts the tick loop and, if enabled, the level watcher.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.config.TickRate, m.loop), waitForChange(m.changes))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()

	case LevelChangedMsg:
		//nolint:errcheck // The session keeps the error and shows it as an overlay
		m.session.Reload()
		return m, waitForChange(m.changes)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.browsable && m.session.Mode() == session.ModeMenu &&
		(action == core.ActionMenu || action == core.ActionPause) {
		m.backToMenu = true
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick advances the session by one fixed step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	m.session.Update(m.config.TickSeconds(), m.inputFrame)
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loop)
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dash", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.session.Source().ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked for the level browser.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays sess in the terminal until the user quits.
// If changes is not nil, each path received reloads the level.
func Run(sess *session.Session, cfg core.RuntimeConfig, changes <-chan string) error {
	model := NewGameModel(sess, cfg).WithChanges(changes)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
