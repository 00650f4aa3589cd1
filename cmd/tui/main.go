package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/storage"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/weddingledger/planner/cmd/tui/internal/view"
	"github.com/weddingledger/planner/internal/category"
	categoryStore "github.com/weddingledger/planner/internal/category/store"
	"github.com/weddingledger/planner/internal/config"
	"github.com/weddingledger/planner/internal/contributor"
	contributorStore "github.com/weddingledger/planner/internal/contributor/store"
	"github.com/weddingledger/planner/internal/database"
	"github.com/weddingledger/planner/internal/expense"
	expenseStore "github.com/weddingledger/planner/internal/expense/store"
	"github.com/weddingledger/planner/internal/export"
	"github.com/weddingledger/planner/internal/gift"
	giftStore "github.com/weddingledger/planner/internal/gift/store"
	"github.com/weddingledger/planner/internal/importer"
	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
	settingsStore "github.com/weddingledger/planner/internal/settings/store"
	"github.com/weddingledger/planner/internal/workspace"
	workspaceStore "github.com/weddingledger/planner/internal/workspace/store"
)

type model struct {
	workspaceService   *workspace.Service
	expenseService     *expense.Service
	categoryService    *category.Service
	contributorService *contributor.Service
	giftService        *gift.Service
	ledgerService      *ledger.Service
	importService      *importer.Service
	exportService      *export.Service

	workspace   *workspace.Workspace
	role        workspace.Role
	currentView View

	workspacesView   view.WorkspacesModel
	summaryView      view.SummaryModel
	listView         view.ListModel
	contributorsView view.ContributorsModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewWorkspaces   View = 0
	ViewMenu         View = 1
	ViewSummary      View = 2
	ViewList         View = 3
	ViewContributors View = 4
	ViewImport       View = 5
	ViewExport       View = 6
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Console.UserID == "" {
		slog.Error("CONSOLE_USER_ID is required")
		os.Exit(1)
	}

	ctx := context.Background()
	opts := database.Options(cfg.Firestore.CredentialsFile)

	db, err := database.New(ctx, cfg.Firestore.ProjectID, opts...)
	if err != nil {
		slog.Error("failed to connect to firestore", "error", err)
		os.Exit(1)
	}

	var archiver export.Archiver

	if cfg.Export.Bucket != "" {
		gcs, err := storage.NewClient(ctx, opts...)
		if err != nil {
			slog.Error("failed to create storage client", "error", err)
			os.Exit(1)
		}

		archiver = export.NewGCSArchiver(gcs, cfg.Export.Bucket)
	}

	var (
		wsSvc   = workspace.NewService(workspaceStore.New(db))
		cSvc    = contributor.NewService(contributorStore.New(db))
		expSvc  = expense.NewService(expenseStore.New(db), cSvc)
		giftSvc = gift.NewService(giftStore.New(db), cSvc, expSvc)
		ledSvc  = ledger.NewService(expSvc, cSvc, giftSvc, settings.NewService(settingsStore.New(db)))
	)

	return model{
		workspaceService:   wsSvc,
		expenseService:     expSvc,
		categoryService:    category.NewService(categoryStore.New(db)),
		contributorService: cSvc,
		giftService:        giftSvc,
		ledgerService:      ledSvc,
		importService:      importer.NewService(cSvc, giftSvc),
		exportService:      export.NewService(ledSvc, archiver),
		currentView:        ViewWorkspaces,
		workspacesView:     view.NewWorkspacesModel(wsSvc, cfg.Console.UserID),
	}
}

func (m model) Init() tea.Cmd {
	return m.workspacesView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewWorkspaces && msg.String() == "q" && !m.workspacesView.Filtering() {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case view.WorkspaceSelectedMsg:
		m.workspace = msg.Workspace
		m.role = msg.Role
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewWorkspaces:
		var newModel tea.Model
		newModel, cmd = m.workspacesView.Update(msg)
		m.workspacesView = newModel.(view.WorkspacesModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewContributors:
		var newModel tea.Model
		newModel, cmd = m.contributorsView.Update(msg)
		m.contributorsView = newModel.(view.ContributorsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.workspace.ID
	canWrite := m.role != workspace.RoleViewer

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "w":
		m.currentView = ViewWorkspaces
		return m, m.workspacesView.Init()
	case "1":
		m.currentView = ViewSummary
		m.summaryView = view.NewSummaryModel(m.ledgerService, id)

		return m, m.summaryView.Init()
	case "2":
		m.currentView = ViewList
		m.listView = view.NewListModel(m.expenseService, m.categoryService, m.ledgerService, id)
		m.listView.ReadOnly = !canWrite

		return m, m.listView.Init()
	case "3":
		m.currentView = ViewContributors
		m.contributorsView = view.NewContributorsModel(m.contributorService, m.giftService, m.ledgerService, id)
		m.contributorsView.ReadOnly = !canWrite

		return m, m.contributorsView.Init()
	case "4":
		if !canWrite {
			return m, nil
		}

		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.importService, id)

		return m, m.importView.Init()
	case "5":
		m.currentView = ViewExport
		m.exportView = view.NewExportModel(m.exportService, id)

		return m, m.exportView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewWorkspaces:
		return m.workspacesView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s (%s)\n\n", m.workspace.Name, m.role) +
				"1. Summary\n" +
				"2. Expenses\n" +
				"3. Contributors\n" +
				"4. Import Gift List\n" +
				"5. Export\n\n" +
				"w. Switch Workspace\n" +
				"q. Quit",
		)
	case ViewSummary:
		return m.summaryView.View()
	case ViewList:
		return m.listView.View()
	case ViewContributors:
		return m.contributorsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
