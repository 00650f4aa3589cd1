package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
)

var (
	labelStyle   = lipgloss.NewStyle().Width(16).Faint(true)
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

type SummaryModel struct {
	CommonModel
	ledgerService *ledger.Service

	summary  *ledger.Summary
	settings *settings.Settings
	now      func() time.Time

	loading bool
	err     error
}

func NewSummaryModel(svc *ledger.Service, workspaceID string) SummaryModel {
	return SummaryModel{
		CommonModel:   CommonModel{WorkspaceID: workspaceID},
		ledgerService: svc,
		now:           time.Now,
		loading:       true,
	}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.settings = msg.settings

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	t := m.summary.Totals
	cur := m.settings.Currency

	row := func(label string, cents int64) string {
		return labelStyle.Render(label) + fmt.Sprintf("%12s %s", FormatAmount(cents), cur)
	}

	totals := lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("Totals"),
		"",
		row("Budget", t.Budget),
		row("Planned", t.Planned),
		row("Paid", t.Paid),
		row("Remaining", t.Remaining),
		row("Gifts", t.Gifts),
		row("Unallocated", t.Unallocated),
		"",
		fmt.Sprintf("%d expenses, %d gifts, %d contributors",
			len(m.summary.Expenses), len(m.summary.Gifts), len(m.summary.Contributors)),
	)

	if t.Budget > 0 && t.Planned > t.Budget {
		totals += "\n" + overdueStyle.Render(fmt.Sprintf("Over budget by %s %s", FormatAmount(t.Planned-t.Budget), cur))
	}

	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Upcoming (%d days)", m.settings.UpcomingWindowDays)))
	b.WriteString("\n\n")

	upcoming := m.summary.Upcoming(now, m.settings.UpcomingWindowDays)
	if len(upcoming) == 0 {
		b.WriteString("Nothing due.")
	}

	for _, v := range upcoming {
		line := fmt.Sprintf("%s  %12s  %s", FormatDate(v.Expense.DueDate), FormatAmount(v.Remaining), v.Expense.Title)
		if v.Expense.DueDate.Before(today) {
			line = overdueStyle.Render(line + "  (overdue)")
		}

		b.WriteString(line + "\n")
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, panel.Render(totals), " ", panel.Render(b.String())),
	)
}

type loadSummaryMsg struct {
	summary  *ledger.Summary
	settings *settings.Settings
	err      error
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sum, st, err := m.ledgerService.Summary(ctx, m.WorkspaceID)
		return loadSummaryMsg{summary: sum, settings: st, err: err}
	}
}
