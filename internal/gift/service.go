package gift

import (
	"context"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=gift
type Repository interface {
	CreateWithAllocations(ctx context.Context, g *Gift, allocs []*Allocation) error
	Get(ctx context.Context, workspaceID, id string) (*Gift, error)
	List(ctx context.Context, workspaceID string) ([]*Gift, error)
	ListAllocations(ctx context.Context, workspaceID string) ([]*Allocation, error)
	ListAllocationsForGift(ctx context.Context, workspaceID, giftID string) ([]*Allocation, error)
	Update(ctx context.Context, g *Gift) error
	ReplaceAllocations(ctx context.Context, workspaceID, giftID string, allocs []*Allocation) error
	Delete(ctx context.Context, workspaceID, id string) error
}

// Checker reports whether a document exists in a workspace.
type Checker interface {
	Exists(ctx context.Context, workspaceID, id string) (bool, error)
}

type Service struct {
	repo         Repository
	contributors Checker
	expenses     Checker
	now          func() time.Time
}

func NewService(repo Repository, contributors, expenses Checker) *Service {
	return &Service{
		repo:         repo,
		contributors: contributors,
		expenses:     expenses,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// AddToContributor records a gift from a known contributor and allocates it
// to expenses in a single batched write.
func (s *Service) AddToContributor(ctx context.Context, workspaceID, contributorID string, p Params, allocs []AllocationParams) (*Gift, []*Allocation, error) {
	if strings.TrimSpace(contributorID) == "" {
		return nil, nil, ErrUnknownContributor
	}

	p.ContributorID = contributorID
	p.FromName = ""

	return s.Add(ctx, workspaceID, p, allocs)
}

// Add records a gift. A gift needs either a contributor or a free-text giver
// name.
func (s *Service) Add(ctx context.Context, workspaceID string, p Params, allocs []AllocationParams) (*Gift, []*Allocation, error) {
	p.ContributorID = strings.TrimSpace(p.ContributorID)
	p.FromName = strings.TrimSpace(p.FromName)

	if p.Amount <= 0 || p.Date.IsZero() || (p.ContributorID == "" && p.FromName == "") {
		return nil, nil, ErrInvalid
	}

	if p.ContributorID != "" {
		ok, err := s.contributors.Exists(ctx, workspaceID, p.ContributorID)
		if err != nil {
			return nil, nil, fmt.Errorf("checking contributor: %w", err)
		}

		if !ok {
			return nil, nil, ErrUnknownContributor
		}
	}

	merged, err := s.checkAllocations(ctx, workspaceID, p.Amount, allocs)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	g := &Gift{
		WorkspaceID:   workspaceID,
		ContributorID: p.ContributorID,
		FromName:      p.FromName,
		Amount:        p.Amount,
		Date:          p.Date,
		Notes:         strings.TrimSpace(p.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created := toAllocations(workspaceID, "", merged, now)

	if err := s.repo.CreateWithAllocations(ctx, g, created); err != nil {
		return nil, nil, fmt.Errorf("creating gift: %w", err)
	}

	return g, created, nil
}

type UpdateParams struct {
	FromName *string
	Amount   *int64
	Date     *time.Time
	Notes    *string
}

func (s *Service) Update(ctx context.Context, workspaceID, id string, p UpdateParams) (*Gift, error) {
	g, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if p.Amount != nil {
		if *p.Amount <= 0 {
			return nil, ErrInvalid
		}

		allocs, err := s.repo.ListAllocationsForGift(ctx, workspaceID, id)
		if err != nil {
			return nil, fmt.Errorf("loading allocations: %w", err)
		}

		if Allocated(allocs) > *p.Amount {
			return nil, ErrOverAllocated
		}

		g.Amount = *p.Amount
	}

	if p.FromName != nil && g.ContributorID == "" {
		name := strings.TrimSpace(*p.FromName)
		if name == "" {
			return nil, ErrInvalid
		}

		g.FromName = name
	}

	if p.Date != nil {
		g.Date = *p.Date
	}

	if p.Notes != nil {
		g.Notes = strings.TrimSpace(*p.Notes)
	}

	g.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, fmt.Errorf("updating gift: %w", err)
	}

	return g, nil
}

// SetAllocations replaces every allocation of a gift.
func (s *Service) SetAllocations(ctx context.Context, workspaceID, giftID string, allocs []AllocationParams) ([]*Allocation, error) {
	g, err := s.repo.Get(ctx, workspaceID, giftID)
	if err != nil {
		return nil, err
	}

	merged, err := s.checkAllocations(ctx, workspaceID, g.Amount, allocs)
	if err != nil {
		return nil, err
	}

	out := toAllocations(workspaceID, giftID, merged, s.now())

	if err := s.repo.ReplaceAllocations(ctx, workspaceID, giftID, out); err != nil {
		return nil, fmt.Errorf("replacing allocations: %w", err)
	}

	return out, nil
}

// Delete removes the gift and its allocations together.
func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

func (s *Service) Get(ctx context.Context, workspaceID, id string) (*Gift, []*Allocation, error) {
	g, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, nil, err
	}

	allocs, err := s.repo.ListAllocationsForGift(ctx, workspaceID, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading allocations: %w", err)
	}

	return g, allocs, nil
}

func (s *Service) List(ctx context.Context, workspaceID string) ([]*Gift, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *Service) ListAllocations(ctx context.Context, workspaceID string) ([]*Allocation, error) {
	return s.repo.ListAllocations(ctx, workspaceID)
}

func (s *Service) checkAllocations(ctx context.Context, workspaceID string, amount int64, params []AllocationParams) ([]AllocationParams, error) {
	merged, err := mergeAllocations(params)
	if err != nil {
		return nil, err
	}

	var total int64

	for _, a := range merged {
		total += a.Amount

		ok, err := s.expenses.Exists(ctx, workspaceID, a.ExpenseID)
		if err != nil {
			return nil, fmt.Errorf("checking expense %s: %w", a.ExpenseID, err)
		}

		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExpense, a.ExpenseID)
		}
	}

	if total > amount {
		return nil, ErrOverAllocated
	}

	return merged, nil
}

func toAllocations(workspaceID, giftID string, params []AllocationParams, now time.Time) []*Allocation {
	out := make([]*Allocation, len(params))
	for i, p := range params {
		out[i] = &Allocation{
			WorkspaceID: workspaceID,
			GiftID:      giftID,
			ExpenseID:   p.ExpenseID,
			Amount:      p.Amount,
			CreatedAt:   now,
		}
	}

	return out
}
