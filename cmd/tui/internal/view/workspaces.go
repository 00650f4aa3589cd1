package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/weddingledger/planner/internal/workspace"
)

// WorkspaceSelectedMsg is emitted when the operator picks a workspace.
type WorkspaceSelectedMsg struct {
	Workspace *workspace.Workspace
	Role      workspace.Role
}

type workspaceItem struct {
	uw *workspace.UserWorkspace
}

func (i workspaceItem) Title() string {
	role := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.uw.Role))
	return fmt.Sprintf("%s  %s", i.uw.Workspace.Name, role)
}

func (i workspaceItem) Description() string {
	ws := i.uw.Workspace

	desc := fmt.Sprintf("%s | %d members", FormatDate(ws.WeddingDate), ws.MembersCount)
	if ws.CoupleNames != "" {
		desc = ws.CoupleNames + " | " + desc
	}

	return desc
}

func (i workspaceItem) FilterValue() string {
	return i.uw.Workspace.Name + " " + i.uw.Workspace.CoupleNames
}

type WorkspacesModel struct {
	CommonModel
	workspaceService *workspace.Service
	userID           string

	list    list.Model
	loading bool
	err     error
}

func NewWorkspacesModel(svc *workspace.Service, userID string) WorkspacesModel {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Workspaces"
	l.SetShowHelp(false)

	return WorkspacesModel{
		workspaceService: svc,
		userID:           userID,
		list:             l,
		loading:          true,
	}
}

func (m WorkspacesModel) Title() string     { return "Select Workspace" }
func (m WorkspacesModel) ShortHelp() string { return "Enter: open | /: filter | q: quit" }

func (m WorkspacesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WorkspacesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadWorkspacesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		items := make([]list.Item, len(msg.workspaces))
		for i, uw := range msg.workspaces {
			items[i] = workspaceItem{uw: uw}
		}

		return m, m.list.SetItems(items)

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && m.list.FilterState() != list.Filtering {
			item, ok := m.list.SelectedItem().(workspaceItem)
			if !ok {
				return m, nil
			}

			return m, func() tea.Msg {
				return WorkspaceSelectedMsg{Workspace: item.uw.Workspace, Role: item.uw.Role}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

// Filtering reports whether the list is capturing keys for its filter input.
func (m WorkspacesModel) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m WorkspacesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading workspaces...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("No workspaces for user %s.\n\nq. Quit", m.userID),
		)
	}

	return lipgloss.NewStyle().Padding(1).Render(m.list.View())
}

type loadWorkspacesMsg struct {
	workspaces []*workspace.UserWorkspace
	err        error
}

func (m WorkspacesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ws, err := m.workspaceService.ListForUser(ctx, m.userID)
		return loadWorkspacesMsg{workspaces: ws, err: err}
	}
}
