package expense

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	Get(ctx context.Context, workspaceID, id string) (*Expense, error)
	List(ctx context.Context, workspaceID string, filter ListFilter) ([]*Expense, error)
	Update(ctx context.Context, workspaceID, id string, fn func(e *Expense) error) (*Expense, error)
	Delete(ctx context.Context, workspaceID, id string) error
}

type ContributorChecker interface {
	Exists(ctx context.Context, workspaceID, contributorID string) (bool, error)
}

type Service struct {
	repo         Repository
	contributors ContributorChecker
}

func NewService(repo Repository, contributors ContributorChecker) *Service {
	return &Service{repo: repo, contributors: contributors}
}

type CreateParams struct {
	Title       string
	Category    string
	TotalAmount int64
	DueDate     *time.Time
	Provider    string
	Notes       string
}

type UpdateParams struct {
	Title       *string
	Category    *string
	TotalAmount *int64
	DueDate     *time.Time
	ClearDue    bool
	Provider    *string
	Notes       *string
}

type ListFilter struct {
	Category *string
	DueFrom  *time.Time
	DueTo    *time.Time
}

type PaymentParams struct {
	ContributorID string
	Amount        int64
	Date          time.Time
	Notes         string
}

func (s *Service) Create(ctx context.Context, workspaceID string, params CreateParams) (*Expense, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" || params.TotalAmount < 0 {
		return nil, ErrInvalid
	}

	now := time.Now().UTC()
	e := &Expense{
		WorkspaceID:        workspaceID,
		Title:              title,
		Category:           strings.TrimSpace(params.Category),
		TotalAmount:        params.TotalAmount,
		DueDate:            params.DueDate,
		Provider:           strings.TrimSpace(params.Provider),
		Notes:              params.Notes,
		PaymentAllocations: []PaymentAllocation{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, workspaceID, id string) (*Expense, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

func (s *Service) List(ctx context.Context, workspaceID string, filter ListFilter) ([]*Expense, error) {
	return s.repo.List(ctx, workspaceID, filter)
}

func (s *Service) Update(ctx context.Context, workspaceID, id string, params UpdateParams) (*Expense, error) {
	return s.repo.Update(ctx, workspaceID, id, func(e *Expense) error {
		if params.Title != nil {
			title := strings.TrimSpace(*params.Title)
			if title == "" {
				return ErrInvalid
			}

			e.Title = title
		}

		if params.Category != nil {
			e.Category = strings.TrimSpace(*params.Category)
		}

		if params.TotalAmount != nil {
			if *params.TotalAmount < 0 {
				return ErrInvalid
			}

			e.TotalAmount = *params.TotalAmount
		}

		if params.ClearDue {
			e.DueDate = nil
		} else if params.DueDate != nil {
			e.DueDate = params.DueDate
		}

		if params.Provider != nil {
			e.Provider = strings.TrimSpace(*params.Provider)
		}

		if params.Notes != nil {
			e.Notes = *params.Notes
		}

		return nil
	})
}

// Delete removes the expense together with the gift allocations that point
// at it.
func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

// AddPayment records a direct payment. Paying more than the expense total or
// more than the contributor's balance is allowed.
func (s *Service) AddPayment(ctx context.Context, workspaceID, expenseID string, params PaymentParams) (*Expense, *PaymentAllocation, error) {
	if err := s.validatePayment(ctx, workspaceID, params); err != nil {
		return nil, nil, err
	}

	p := PaymentAllocation{
		ID:            uuid.NewString(),
		ContributorID: params.ContributorID,
		Amount:        params.Amount,
		Date:          params.Date,
		Notes:         params.Notes,
	}

	e, err := s.repo.Update(ctx, workspaceID, expenseID, func(e *Expense) error {
		e.PaymentAllocations = append(e.PaymentAllocations, p)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("adding payment: %w", err)
	}

	return e, &p, nil
}

func (s *Service) UpdatePayment(ctx context.Context, workspaceID, expenseID, paymentID string, params PaymentParams) (*Expense, error) {
	if err := s.validatePayment(ctx, workspaceID, params); err != nil {
		return nil, err
	}

	e, err := s.repo.Update(ctx, workspaceID, expenseID, func(e *Expense) error {
		i := paymentIndex(e, paymentID)
		if i < 0 {
			return ErrPaymentNotFound
		}

		if e.PaymentAllocations[i].GiftID != "" {
			return ErrGiftPaymentReadOnly
		}

		e.PaymentAllocations[i].ContributorID = params.ContributorID
		e.PaymentAllocations[i].Amount = params.Amount
		e.PaymentAllocations[i].Date = params.Date
		e.PaymentAllocations[i].Notes = params.Notes

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating payment: %w", err)
	}

	return e, nil
}

func (s *Service) RemovePayment(ctx context.Context, workspaceID, expenseID, paymentID string) (*Expense, error) {
	e, err := s.repo.Update(ctx, workspaceID, expenseID, func(e *Expense) error {
		i := paymentIndex(e, paymentID)
		if i < 0 {
			return ErrPaymentNotFound
		}

		if e.PaymentAllocations[i].GiftID != "" {
			return ErrGiftPaymentReadOnly
		}

		e.PaymentAllocations = slices.Delete(e.PaymentAllocations, i, i+1)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("removing payment: %w", err)
	}

	return e, nil
}

func (s *Service) validatePayment(ctx context.Context, workspaceID string, params PaymentParams) error {
	if params.Amount <= 0 || params.Date.IsZero() {
		return ErrInvalidPayment
	}

	if params.ContributorID == "" {
		return nil
	}

	ok, err := s.contributors.Exists(ctx, workspaceID, params.ContributorID)
	if err != nil {
		return fmt.Errorf("checking contributor: %w", err)
	}

	if !ok {
		return ErrUnknownContributor
	}

	return nil
}

func paymentIndex(e *Expense, id string) int {
	return slices.IndexFunc(e.PaymentAllocations, func(p PaymentAllocation) bool { return p.ID == id })
}

func (s *Service) Exists(ctx context.Context, workspaceID, id string) (bool, error) {
	_, err := s.repo.Get(ctx, workspaceID, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	return err == nil, err
}
