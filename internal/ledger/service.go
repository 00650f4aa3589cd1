package ledger

import (
	"context"
	"fmt"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/settings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type ExpenseSource interface {
	List(ctx context.Context, workspaceID string, filter expense.ListFilter) ([]*expense.Expense, error)
}

type ContributorSource interface {
	List(ctx context.Context, workspaceID string) ([]*contributor.Contributor, error)
}

type GiftSource interface {
	List(ctx context.Context, workspaceID string) ([]*gift.Gift, error)
	ListAllocations(ctx context.Context, workspaceID string) ([]*gift.Allocation, error)
}

type SettingsSource interface {
	Get(ctx context.Context, workspaceID string) (*settings.Settings, error)
}

type Service struct {
	expenses     ExpenseSource
	contributors ContributorSource
	gifts        GiftSource
	settings     SettingsSource
}

func NewService(expenses ExpenseSource, contributors ContributorSource, gifts GiftSource, settings SettingsSource) *Service {
	return &Service{expenses: expenses, contributors: contributors, gifts: gifts, settings: settings}
}

// Summary loads the workspace and builds its ledger. The second return value
// is the workspace settings, which callers need for the upcoming window.
func (s *Service) Summary(ctx context.Context, workspaceID string) (*Summary, *settings.Settings, error) {
	st, err := s.settings.Get(ctx, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading settings: %w", err)
	}

	expenses, err := s.expenses.List(ctx, workspaceID, expense.ListFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("loading expenses: %w", err)
	}

	contributors, err := s.contributors.List(ctx, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading contributors: %w", err)
	}

	gifts, err := s.gifts.List(ctx, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading gifts: %w", err)
	}

	allocations, err := s.gifts.ListAllocations(ctx, workspaceID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading allocations: %w", err)
	}

	return Build(st.TotalBudget, expenses, contributors, gifts, allocations), st, nil
}

// Expense returns one expense with its gift-derived payments merged in.
func (s *Service) Expense(ctx context.Context, workspaceID, id string) (*ExpenseView, error) {
	sum, _, err := s.Summary(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	v := sum.Expense(id)
	if v == nil {
		return nil, expense.ErrNotFound
	}

	return v, nil
}

// Balance returns the available balance view for one contributor.
func (s *Service) Balance(ctx context.Context, workspaceID, contributorID string) (*ContributorView, error) {
	sum, _, err := s.Summary(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	v := sum.Contributor(contributorID)
	if v == nil {
		return nil, contributor.ErrNotFound
	}

	return v, nil
}
