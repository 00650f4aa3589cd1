package expense

import (
	"errors"
	"time"
)

var (
	ErrNotFound            = errors.New("expense not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvalid             = errors.New("invalid expense")
	ErrInvalidPayment      = errors.New("invalid payment")
	ErrUnknownContributor  = errors.New("unknown contributor")
	ErrGiftPaymentReadOnly = errors.New("gift payments are managed through gift allocations")
)

// Expense is a planned or incurred wedding cost. Amounts are in cents.
type Expense struct {
	ID                 string              `firestore:"-"`
	WorkspaceID        string              `firestore:"workspaceId"`
	Title              string              `firestore:"title"`
	Category           string              `firestore:"category"`
	TotalAmount        int64               `firestore:"totalAmount"`
	DueDate            *time.Time          `firestore:"dueDate"`
	Provider           string              `firestore:"provider,omitempty"`
	Notes              string              `firestore:"notes,omitempty"`
	PaymentAllocations []PaymentAllocation `firestore:"paymentAllocations"`
	CreatedAt          time.Time           `firestore:"createdAt"`
	UpdatedAt          time.Time           `firestore:"updatedAt"`
}

// PaymentAllocation is money paid towards an expense. Direct payments are
// stored on the expense; entries with GiftID set are derived from gift
// allocations and never stored.
type PaymentAllocation struct {
	ID            string    `firestore:"id"`
	ContributorID string    `firestore:"contributorId,omitempty"`
	Amount        int64     `firestore:"amount"`
	Date          time.Time `firestore:"date"`
	Notes         string    `firestore:"notes,omitempty"`
	GiftID        string    `firestore:"giftId,omitempty"`
	AllocationID  string    `firestore:"allocationId,omitempty"`
}

// PaidAmount is the sum of every payment allocation on e.
func PaidAmount(e *Expense) int64 {
	var total int64
	for _, p := range e.PaymentAllocations {
		total += p.Amount
	}

	return total
}

// RemainingAmount is TotalAmount minus PaidAmount. It is negative when the
// expense is overpaid.
func RemainingAmount(e *Expense) int64 {
	return e.TotalAmount - PaidAmount(e)
}

// Overpaid reports whether more than the total has been paid.
func Overpaid(e *Expense) bool {
	return RemainingAmount(e) < 0
}
