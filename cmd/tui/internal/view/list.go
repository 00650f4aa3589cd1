package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/weddingledger/planner/internal/category"
	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/ledger"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateTimeframe
	listStateEdit
)

type ListModel struct {
	CommonModel
	expenseService  *expense.Service
	categoryService *category.Service
	ledgerService   *ledger.Service

	state listState
	table table.Model
	rows  []*ledger.ExpenseView
	form  *huh.Form

	timeframePicker TimeframePicker
	frame           Timeframe
	categories      []string
	categoryIdx     int

	filter  expense.ListFilter
	loading bool
	err     error
	status  string

	editing *expense.Expense
	fields  *expenseFields
}

// expenseFields holds form bindings. huh writes through these pointers, so
// they must outlive copies of the model.
type expenseFields struct {
	title    string
	amount   string
	due      string
	category string
	provider string
}

func NewListModel(expSvc *expense.Service, catSvc *category.Service, ledgerSvc *ledger.Service, workspaceID string) ListModel {
	columns := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Category", Width: 14},
		{Title: "Total", Width: 11},
		{Title: "Paid", Width: 11},
		{Title: "Remaining", Width: 11},
		{Title: "Title", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
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

	return ListModel{
		CommonModel:     CommonModel{WorkspaceID: workspaceID},
		expenseService:  expSvc,
		categoryService: catSvc,
		ledgerService:   ledgerSvc,
		table:           t,
		timeframePicker: NewTimeframePicker(TimeframeAll),
		loading:         true,
	}
}

func (m ListModel) Title() string { return "Expenses" }
func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateEdit:
		return "Navigate form | Esc: cancel"
	case listStateTimeframe:
		return "Enter: select | Esc: cancel"
	}

	if m.ReadOnly {
		return "Esc: back | d: due window | c: category | r: refresh"
	}

	return "Esc: back | n: new | e: edit | x: delete | d: due window | c: category | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return tea.Batch(m.loadCategoriesCmd(), m.loadCmd())
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.rows = msg.rows
		m.refreshTable()

		return m, nil

	case loadCategoriesMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading categories: %v", msg.err)
			return m, nil
		}

		m.categories = msg.names

		return m, nil

	case listSaveMsg:
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}

		m.state = listStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.frame = msg.Frame
		m.filter.DueFrom = msg.From
		m.filter.DueTo = msg.To
		m.state = listStateBrowse
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateTimeframe:
		return m.updateTimeframe(msg)
	case listStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && m.ReadOnly && isWriteKey(keyMsg.String()) {
		return m, nil
	}

	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			return m.enterEditMode(nil)
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.rows) {
				return m, nil
			}

			return m.enterEditMode(m.rows[idx].Expense)
		case "x":
			return m, m.deleteCmd()
		case "d":
			m.state = listStateTimeframe
			m.timeframePicker.Reset()
			m.table.Blur()

			return m, nil
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(m.categories) + 1)
			m.filter.Category = nil

			if m.categoryIdx > 0 {
				m.filter.Category = new(m.categories[m.categoryIdx-1])
			}

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ListModel) enterEditMode(e *expense.Expense) (tea.Model, tea.Cmd) {
	m.editing = e
	m.fields = &expenseFields{}

	if e != nil {
		m.fields.title = e.Title
		m.fields.amount = FormatAmount(e.TotalAmount)
		m.fields.category = e.Category
		m.fields.provider = e.Provider

		if e.DueDate != nil {
			m.fields.due = FormatDate(e.DueDate)
		}
	}

	catOptions := make([]huh.Option[string], 0, len(m.categories)+1)
	catOptions = append(catOptions, huh.NewOption("(none)", ""))
	for _, c := range m.categories {
		catOptions = append(catOptions, huh.NewOption(c, c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&m.fields.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title cannot be empty")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(catOptions...).
				Value(&m.fields.category),

			huh.NewInput().
				Key("amount").
				Title("Total Amount").
				Placeholder("1250.00").
				Value(&m.fields.amount).
				Validate(func(s string) error {
					_, err := ParseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("due").
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.due).
				Validate(func(s string) error {
					_, err := ParseDate(s)
					return err
				}),

			huh.NewInput().
				Key("provider").
				Title("Provider").
				Value(&m.fields.provider),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
			m.form = nil
			m.editing = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == listStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	cat := "All"
	if m.filter.Category != nil {
		cat = *m.filter.Category
	}

	header := fmt.Sprintf(
		"Filter: [d] Due: %s | [c] Category: %s",
		activeStyle(m.frame.String()),
		activeStyle(cat),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateEdit && m.form != nil {
		title := "New Expense"
		if m.editing != nil {
			title = "Edit Expense"
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

func isWriteKey(k string) bool {
	return k == "n" || k == "e" || k == "x" || k == "g"
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.rows))
	for _, v := range m.rows {
		remaining := FormatAmount(v.Remaining)
		if v.Overpaid {
			remaining += " !"
		}

		rows = append(rows, table.Row{
			FormatDate(v.Expense.DueDate),
			v.Expense.Category,
			FormatAmount(v.Expense.TotalAmount),
			FormatAmount(v.Paid),
			remaining,
			v.Expense.Title,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	rows []*ledger.ExpenseView
	err  error
}

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.expenseService.List(ctx, m.WorkspaceID, filter)
		if err != nil {
			return loadListMsg{err: err}
		}

		sum, _, err := m.ledgerService.Summary(ctx, m.WorkspaceID)
		if err != nil {
			return loadListMsg{err: err}
		}

		rows := make([]*ledger.ExpenseView, 0, len(expenses))
		for _, e := range expenses {
			if v := sum.Expense(e.ID); v != nil {
				rows = append(rows, v)
			}
		}

		return loadListMsg{rows: rows}
	}
}

type loadCategoriesMsg struct {
	names []string
	err   error
}

func (m ListModel) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := m.categoryService.List(ctx, m.WorkspaceID)
		if err != nil {
			return loadCategoriesMsg{err: err}
		}

		names := make([]string, 0, len(cats))
		for _, c := range cats {
			names = append(names, c.Name)
		}

		return loadCategoriesMsg{names: names}
	}
}

type listSaveMsg struct {
	err error
}

func (m ListModel) saveCmd() tea.Cmd {
	editing := m.editing
	title := strings.TrimSpace(m.fields.title)
	cat := m.fields.category
	provider := strings.TrimSpace(m.fields.provider)
	amount, _ := ParseAmount(m.fields.amount)
	due, _ := ParseDate(m.fields.due)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			_, err := m.expenseService.Create(ctx, m.WorkspaceID, expense.CreateParams{
				Title:       title,
				Category:    cat,
				TotalAmount: amount,
				DueDate:     due,
				Provider:    provider,
			})

			return listSaveMsg{err: err}
		}

		_, err := m.expenseService.Update(ctx, m.WorkspaceID, editing.ID, expense.UpdateParams{
			Title:       &title,
			Category:    &cat,
			TotalAmount: &amount,
			DueDate:     due,
			ClearDue:    due == nil,
			Provider:    &provider,
		})

		return listSaveMsg{err: err}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return nil
	}

	id := m.rows[idx].Expense.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return listSaveMsg{err: m.expenseService.Delete(ctx, m.WorkspaceID, id)}
	}
}
