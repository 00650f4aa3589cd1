package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

type CommonModel struct {
	Width       int
	Height      int
	WorkspaceID string
	// ReadOnly hides write actions for viewers.
	ReadOnly bool
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
