package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/expense"
)

func TestPaidAndRemaining(t *testing.T) {
	tests := []struct {
		name          string
		total         int64
		payments      []int64
		wantPaid      int64
		wantRemaining int64
	}{
		{name: "NoPayments", total: 50000, wantPaid: 0, wantRemaining: 50000},
		{name: "Partial", total: 50000, payments: []int64{10000, 2550}, wantPaid: 12550, wantRemaining: 37450},
		{name: "Exact", total: 50000, payments: []int64{50000}, wantPaid: 50000, wantRemaining: 0},
		{name: "Overpaid", total: 50000, payments: []int64{30000, 30000}, wantPaid: 60000, wantRemaining: -10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &expense.Expense{TotalAmount: tt.total}
			for _, a := range tt.payments {
				e.PaymentAllocations = append(e.PaymentAllocations, expense.PaymentAllocation{Amount: a})
			}

			assert.Equal(t, tt.wantPaid, expense.PaidAmount(e))
			assert.Equal(t, tt.wantRemaining, expense.RemainingAmount(e))
			assert.Equal(t, tt.wantRemaining < 0, expense.Overpaid(e))
		})
	}
}

// applyUpdate makes Repository.Update run fn against current.
func applyUpdate(m *expense.MockRepository, current *expense.Expense) {
	m.EXPECT().
		Update(gomock.Any(), "ws1", current.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, fn func(*expense.Expense) error) (*expense.Expense, error) {
			if err := fn(current); err != nil {
				return nil, err
			}

			return current, nil
		})
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    expense.CreateParams
		setupMock func(m *expense.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: expense.CreateParams{Title: " Venue ", Category: "venue", TotalAmount: 500000},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *expense.Expense) error {
					e.ID = "e1"
					return nil
				})
			},
		},
		{
			name:    "MissingTitle",
			params:  expense.CreateParams{TotalAmount: 100},
			wantErr: true,
		},
		{
			name:    "NegativeTotal",
			params:  expense.CreateParams{Title: "Cake", TotalAmount: -1},
			wantErr: true,
		},
		{
			name:   "RepoError",
			params: expense.CreateParams{Title: "Cake", TotalAmount: 100},
			setupMock: func(m *expense.MockRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := expense.NewService(repo, expense.NewMockContributorChecker(ctrl))
			got, err := svc.Create(context.Background(), "ws1", tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "e1", got.ID)
			assert.Equal(t, "Venue", got.Title)
			assert.Equal(t, "ws1", got.WorkspaceID)
			assert.NotNil(t, got.PaymentAllocations)
		})
	}
}

func TestService_AddPayment(t *testing.T) {
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	t.Run("OverpaymentAllowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		contributors := expense.NewMockContributorChecker(ctrl)

		current := &expense.Expense{ID: "e1", TotalAmount: 10000}
		contributors.EXPECT().Exists(gomock.Any(), "ws1", "c1").Return(true, nil)
		applyUpdate(repo, current)

		e, p, err := expense.NewService(repo, contributors).AddPayment(context.Background(), "ws1", "e1", expense.PaymentParams{
			ContributorID: "c1", Amount: 15000, Date: date,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, int64(15000), expense.PaidAmount(e))
		assert.True(t, expense.Overpaid(e))
	})

	t.Run("UnknownContributor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		contributors := expense.NewMockContributorChecker(ctrl)
		contributors.EXPECT().Exists(gomock.Any(), "ws1", "c9").Return(false, nil)

		_, _, err := expense.NewService(expense.NewMockRepository(ctrl), contributors).
			AddPayment(context.Background(), "ws1", "e1", expense.PaymentParams{ContributorID: "c9", Amount: 100, Date: date})
		assert.ErrorIs(t, err, expense.ErrUnknownContributor)
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, _, err := expense.NewService(expense.NewMockRepository(ctrl), expense.NewMockContributorChecker(ctrl)).
			AddPayment(context.Background(), "ws1", "e1", expense.PaymentParams{Amount: 0, Date: date})
		assert.ErrorIs(t, err, expense.ErrInvalidPayment)
	})
}

func TestService_UpdateAndRemovePayment(t *testing.T) {
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	newCurrent := func() *expense.Expense {
		return &expense.Expense{ID: "e1", TotalAmount: 10000, PaymentAllocations: []expense.PaymentAllocation{
			{ID: "p1", Amount: 4000, Date: date},
			{ID: "p2", Amount: 1000, Date: date},
		}}
	}

	t.Run("Update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		applyUpdate(repo, newCurrent())

		e, err := expense.NewService(repo, expense.NewMockContributorChecker(ctrl)).
			UpdatePayment(context.Background(), "ws1", "e1", "p2", expense.PaymentParams{Amount: 2500, Date: date})
		require.NoError(t, err)
		assert.Equal(t, int64(6500), expense.PaidAmount(e))
	})

	t.Run("Remove", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		applyUpdate(repo, newCurrent())

		e, err := expense.NewService(repo, expense.NewMockContributorChecker(ctrl)).
			RemovePayment(context.Background(), "ws1", "e1", "p1")
		require.NoError(t, err)
		require.Len(t, e.PaymentAllocations, 1)
		assert.Equal(t, "p2", e.PaymentAllocations[0].ID)
		assert.Equal(t, int64(9000), expense.RemainingAmount(e))
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		applyUpdate(repo, newCurrent())

		_, err := expense.NewService(repo, expense.NewMockContributorChecker(ctrl)).
			RemovePayment(context.Background(), "ws1", "e1", "nope")
		assert.ErrorIs(t, err, expense.ErrPaymentNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	current := &expense.Expense{ID: "e1", Title: "Venue", TotalAmount: 100, DueDate: &due}

	repo := expense.NewMockRepository(ctrl)
	applyUpdate(repo, current)

	e, err := expense.NewService(repo, expense.NewMockContributorChecker(ctrl)).Update(context.Background(), "ws1", "e1", expense.UpdateParams{
		Title:       new("Quinta"),
		TotalAmount: new(int64(250000)),
		ClearDue:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Quinta", e.Title)
	assert.Equal(t, int64(250000), e.TotalAmount)
	assert.Nil(t, e.DueDate)
}
