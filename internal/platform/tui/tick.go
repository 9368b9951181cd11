// Package tui provides the Bubble Tea front end for the runner: the game
// loop, the level browser and the SSH server that hosts both.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
// Loop identifies the tick chain so a stale chain from a previous game
// cannot drive a new one.
type TickMsg struct {
	Time time.Time
	Loop uint64
}

var loops atomic.Uint64

// nextLoop returns a fresh tick chain ID.
func nextLoop() uint64 {
	return loops.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Loop: loop}
	})
}

// LevelChangedMsg reports that the current level file was edited.
type LevelChangedMsg struct {
	Path string
}

// waitForChange blocks on the watcher channel and turns the next edit into a message.
func waitForChange(events <-chan string) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return LevelChangedMsg{Path: path}
	}
}
