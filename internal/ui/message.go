package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/tidalfest/internal/poster"
	"github.com/desertthunder/tidalfest/internal/tasks"
)

// stateMsg carries a lifecycle update. The model re-reads the current state on receipt.
type stateMsg tasks.State

// updatesClosedMsg is sent once the lifecycle's update stream is closed.
type updatesClosedMsg struct{}

type exportDoneMsg struct {
	artifact *poster.Artifact
	err      error
}

type loginOpenedMsg struct {
	err error
}

type prefsSavedMsg struct {
	code string
	err  error
}

func waitForState(updates <-chan tasks.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return updatesClosedMsg{}
		}
		return stateMsg(s)
	}
}
