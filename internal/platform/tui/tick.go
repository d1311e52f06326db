// Package tui provides the Bubble Tea front end of the level editor.
// It handles the terminal UI loop, input mapping, and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 4 * time.Second

// clearStatusMsg is sent to clear the status message with the given sequence.
type clearStatusMsg struct {
	seq int
}

// clearStatusCmd returns a Bubble Tea command that clears status message seq
// once it has been shown long enough.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
