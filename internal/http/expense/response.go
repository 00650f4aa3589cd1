package expense

import (
	"time"

	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/ledger"
)

type paymentResponse struct {
	ID            string    `json:"id"`
	ContributorID string    `json:"contributorId,omitempty"`
	Amount        int64     `json:"amount"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes,omitempty"`
	GiftID        string    `json:"giftId,omitempty"`
	AllocationID  string    `json:"allocationId,omitempty"`
}

type expenseResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	TotalAmount int64             `json:"totalAmount"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	Provider    string            `json:"provider,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Payments    []paymentResponse `json:"paymentAllocations"`
	Paid        int64             `json:"paid"`
	Remaining   int64             `json:"remaining"`
	Overpaid    bool              `json:"overpaid"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type paymentResultResponse struct {
	Expense        expenseResponse  `json:"expense"`
	Payment        *paymentResponse `json:"payment,omitempty"`
	ExceedsBalance bool             `json:"exceedsBalance"`
}

func toPaymentResponse(p expense.PaymentAllocation) paymentResponse {
	return paymentResponse{
		ID:            p.ID,
		ContributorID: p.ContributorID,
		Amount:        p.Amount,
		Date:          p.Date,
		Notes:         p.Notes,
		GiftID:        p.GiftID,
		AllocationID:  p.AllocationID,
	}
}

func toResponse(v *ledger.ExpenseView) expenseResponse {
	e := v.Expense

	payments := make([]paymentResponse, len(e.PaymentAllocations))
	for i, p := range e.PaymentAllocations {
		payments[i] = toPaymentResponse(p)
	}

	return expenseResponse{
		ID:          e.ID,
		Title:       e.Title,
		Category:    e.Category,
		TotalAmount: e.TotalAmount,
		DueDate:     e.DueDate,
		Provider:    e.Provider,
		Notes:       e.Notes,
		Payments:    payments,
		Paid:        v.Paid,
		Remaining:   v.Remaining,
		Overpaid:    v.Overpaid,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
