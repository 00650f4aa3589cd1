package gift

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("gift not found")
	ErrInvalid            = errors.New("invalid gift")
	ErrInvalidAllocation  = errors.New("invalid allocation")
	ErrOverAllocated      = errors.New("allocations exceed the gift amount")
	ErrUnknownContributor = errors.New("unknown contributor")
	ErrUnknownExpense     = errors.New("unknown expense")
)

// Gift is money received for the wedding, either from a known contributor or
// from someone named only in FromName. Amounts are in cents.
type Gift struct {
	ID            string    `firestore:"-"`
	WorkspaceID   string    `firestore:"workspaceId"`
	ContributorID string    `firestore:"contributorId"`
	FromName      string    `firestore:"fromName"`
	Amount        int64     `firestore:"amount"`
	Date          time.Time `firestore:"date"`
	Notes         string    `firestore:"notes,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt"`
	UpdatedAt     time.Time `firestore:"updatedAt"`
}

// Allocation assigns part of a gift to an expense. Allocations are the only
// stored record of gift money reaching an expense.
type Allocation struct {
	ID          string    `firestore:"-"`
	WorkspaceID string    `firestore:"workspaceId"`
	GiftID      string    `firestore:"giftId"`
	ExpenseID   string    `firestore:"expenseId"`
	Amount      int64     `firestore:"amount"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

type Params struct {
	ContributorID string
	FromName      string
	Amount        int64
	Date          time.Time
	Notes         string
}

type AllocationParams struct {
	ExpenseID string
	Amount    int64
}

// Allocated sums allocs.
func Allocated(allocs []*Allocation) int64 {
	var total int64
	for _, a := range allocs {
		total += a.Amount
	}

	return total
}

// mergeAllocations validates params and folds entries for the same expense
// together, keeping first-seen order.
func mergeAllocations(params []AllocationParams) ([]AllocationParams, error) {
	out := make([]AllocationParams, 0, len(params))
	index := make(map[string]int, len(params))

	for _, p := range params {
		id := strings.TrimSpace(p.ExpenseID)
		if id == "" || p.Amount <= 0 {
			return nil, ErrInvalidAllocation
		}

		if i, ok := index[id]; ok {
			out[i].Amount += p.Amount
			continue
		}

		index[id] = len(out)
		out = append(out, AllocationParams{ExpenseID: id, Amount: p.Amount})
	}

	return out, nil
}
