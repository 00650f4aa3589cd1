package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/ledger"
)

type contributorState int

const (
	contributorStateBrowse contributorState = iota
	contributorStateNew
	contributorStateGift
)

// ContributorsModel lists contributors with their gift balances and records
// new contributors and gifts.
type ContributorsModel struct {
	CommonModel
	contributorService *contributor.Service
	giftService        *gift.Service
	ledgerService      *ledger.Service

	state contributorState
	table table.Model
	views []*ledger.ContributorView
	form  *huh.Form

	loading bool
	err     error
	status  string

	fields *contributorFields
}

type contributorFields struct {
	name   string
	amount string
	date   string
	notes  string
}

func NewContributorsModel(cSvc *contributor.Service, gSvc *gift.Service, lSvc *ledger.Service, workspaceID string) ContributorsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Name", Width: 28},
			{Title: "Gifts", Width: 12},
			{Title: "Spent", Width: 12},
			{Title: "Available", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ContributorsModel{
		CommonModel:        CommonModel{WorkspaceID: workspaceID},
		contributorService: cSvc,
		giftService:        gSvc,
		ledgerService:      lSvc,
		table:              t,
		loading:            true,
	}
}

func (m ContributorsModel) Title() string { return "Contributors" }
func (m ContributorsModel) ShortHelp() string {
	if m.state != contributorStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	if m.ReadOnly {
		return "Esc: back | r: refresh"
	}

	return "Esc: back | n: new contributor | g: record gift | r: refresh"
}

func (m ContributorsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ContributorsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadContributorsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.views = msg.views
			m.refreshTable()
		}

		return m, nil

	case contributorSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = contributorStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state != contributorStateBrowse {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.ReadOnly && isWriteKey(keyMsg.String()) {
			return m, nil
		}

		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterNew()
		case "g":
			if m.selected() == nil {
				return m, nil
			}

			return m.enterGift()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ContributorsModel) selected() *ledger.ContributorView {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.views) {
		return nil
	}

	return m.views[idx]
}

func (m ContributorsModel) enterNew() (tea.Model, tea.Cmd) {
	m.fields = &contributorFields{}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&m.fields.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Notes").
				Value(&m.fields.notes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = contributorStateNew
	m.table.Blur()

	return m, m.form.Init()
}

func (m ContributorsModel) enterGift() (tea.Model, tea.Cmd) {
	m.fields = &contributorFields{date: time.Now().Format(time.DateOnly)}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Placeholder("250.00").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Date").
				Value(&m.fields.date).
				Validate(func(s string) error {
					d, err := ParseDate(s)
					if err == nil && d == nil {
						return errors.New("date is required")
					}
					return err
				}),
			huh.NewInput().
				Title("Notes").
				Value(&m.fields.notes),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = contributorStateGift
	m.table.Blur()

	return m, m.form.Init()
}

func (m ContributorsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = contributorStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == contributorStateNew {
		return m, m.createCmd()
	}

	return m, m.giftCmd()
}

func (m ContributorsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading contributors...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.form != nil {
		title := "New Contributor"
		if m.state == contributorStateGift {
			title = "Gift from " + m.selected().Contributor.Name
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ContributorsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.views))
	for _, v := range m.views {
		rows = append(rows, table.Row{
			v.Contributor.Name,
			FormatAmount(v.TotalGifts),
			FormatAmount(v.Spent),
			FormatAmount(v.Available),
		})
	}

	m.table.SetRows(rows)
}

type loadContributorsMsg struct {
	views []*ledger.ContributorView
	err   error
}

func (m ContributorsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sum, _, err := m.ledgerService.Summary(ctx, m.WorkspaceID)
		if err != nil {
			return loadContributorsMsg{err: err}
		}

		return loadContributorsMsg{views: sum.Contributors}
	}
}

type contributorSaveMsg struct {
	status string
	err    error
}

func (m ContributorsModel) createCmd() tea.Cmd {
	p := contributor.Params{Name: m.fields.name, Notes: m.fields.notes}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		c, err := m.contributorService.Create(ctx, m.WorkspaceID, p)
		if err != nil {
			return contributorSaveMsg{err: err}
		}

		return contributorSaveMsg{status: "Added " + c.Name}
	}
}

func (m ContributorsModel) giftCmd() tea.Cmd {
	target := m.selected().Contributor
	amount, _ := ParseAmount(m.fields.amount)
	date, _ := ParseDate(m.fields.date)
	notes := strings.TrimSpace(m.fields.notes)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, _, err := m.giftService.AddToContributor(ctx, m.WorkspaceID, target.ID, gift.Params{
			Amount: amount,
			Date:   *date,
			Notes:  notes,
		}, nil)
		if err != nil {
			return contributorSaveMsg{err: err}
		}

		return contributorSaveMsg{status: fmt.Sprintf("Recorded %s from %s", FormatAmount(amount), target.Name)}
	}
}
