package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/gift"
)

// ExpenseView is an expense with its direct payments and the payments derived
// from gift allocations. Expense.PaymentAllocations holds both.
type ExpenseView struct {
	Expense   *expense.Expense `json:"expense"`
	Paid      int64            `json:"paid"`
	Remaining int64            `json:"remaining"`
	Overpaid  bool             `json:"overpaid"`
}

type GiftView struct {
	Gift        *gift.Gift         `json:"gift"`
	Giver       string             `json:"giver"`
	Allocations []*gift.Allocation `json:"allocations"`
	Allocated   int64              `json:"allocated"`
	Unallocated int64              `json:"unallocated"`
}

type ContributorView struct {
	Contributor *contributor.Contributor `json:"contributor"`
	TotalGifts  int64                    `json:"totalGifts"`
	Spent       int64                    `json:"spent"`
	Available   int64                    `json:"available"`
}

type Totals struct {
	Budget      int64 `json:"budget"`
	Planned     int64 `json:"planned"`
	Paid        int64 `json:"paid"`
	Remaining   int64 `json:"remaining"`
	Gifts       int64 `json:"gifts"`
	Unallocated int64 `json:"unallocated"`
}

type Summary struct {
	Expenses     []*ExpenseView     `json:"expenses"`
	Gifts        []*GiftView        `json:"gifts"`
	Contributors []*ContributorView `json:"contributors"`
	Totals       Totals             `json:"totals"`
}

// Build derives every view from stored documents. Inputs are not modified.
// Allocations pointing at a missing gift or expense are ignored.
func Build(budget int64, expenses []*expense.Expense, contributors []*contributor.Contributor, gifts []*gift.Gift, allocations []*gift.Allocation) *Summary {
	sum := &Summary{Totals: Totals{Budget: budget}}

	giftsByID := make(map[string]*gift.Gift, len(gifts))
	for _, g := range gifts {
		giftsByID[g.ID] = g
	}

	names := make(map[string]string, len(contributors))
	for _, c := range contributors {
		names[c.ID] = c.Name
	}

	expenseViews := make(map[string]*ExpenseView, len(expenses))
	for _, e := range expenses {
		cp := *e
		cp.PaymentAllocations = make([]expense.PaymentAllocation, 0, len(e.PaymentAllocations))

		for _, p := range e.PaymentAllocations {
			if p.GiftID == "" {
				cp.PaymentAllocations = append(cp.PaymentAllocations, p)
			}
		}

		v := &ExpenseView{Expense: &cp}
		expenseViews[e.ID] = v
		sum.Expenses = append(sum.Expenses, v)
	}

	allocsByGift := make(map[string][]*gift.Allocation)

	for _, a := range allocations {
		g, ok := giftsByID[a.GiftID]
		if !ok {
			continue
		}

		allocsByGift[a.GiftID] = append(allocsByGift[a.GiftID], a)

		v, ok := expenseViews[a.ExpenseID]
		if !ok {
			continue
		}

		v.Expense.PaymentAllocations = append(v.Expense.PaymentAllocations, expense.PaymentAllocation{
			ID:            a.ID,
			ContributorID: g.ContributorID,
			Amount:        a.Amount,
			Date:          g.Date,
			Notes:         "Gift from " + giver(g, names),
			GiftID:        g.ID,
			AllocationID:  a.ID,
		})
	}

	spent := make(map[string]int64)

	for _, v := range sum.Expenses {
		v.Paid = expense.PaidAmount(v.Expense)
		v.Remaining = expense.RemainingAmount(v.Expense)
		v.Overpaid = v.Remaining < 0

		for _, p := range v.Expense.PaymentAllocations {
			if p.ContributorID != "" {
				spent[p.ContributorID] += p.Amount
			}
		}

		sum.Totals.Planned += v.Expense.TotalAmount
		sum.Totals.Paid += v.Paid

		if v.Remaining > 0 {
			sum.Totals.Remaining += v.Remaining
		}
	}

	received := make(map[string]int64)

	for _, g := range gifts {
		allocs := allocsByGift[g.ID]
		allocated := gift.Allocated(allocs)

		sum.Gifts = append(sum.Gifts, &GiftView{
			Gift:        g,
			Giver:       giver(g, names),
			Allocations: allocs,
			Allocated:   allocated,
			Unallocated: g.Amount - allocated,
		})

		sum.Totals.Gifts += g.Amount
		sum.Totals.Unallocated += g.Amount - allocated

		if g.ContributorID != "" {
			received[g.ContributorID] += g.Amount
		}
	}

	for _, c := range contributors {
		sum.Contributors = append(sum.Contributors, &ContributorView{
			Contributor: c,
			TotalGifts:  received[c.ID],
			Spent:       spent[c.ID],
			Available:   received[c.ID] - spent[c.ID],
		})
	}

	return sum
}

func giver(g *gift.Gift, names map[string]string) string {
	if name, ok := names[g.ContributorID]; ok && g.ContributorID != "" {
		return name
	}

	return g.FromName
}

// Contributor returns the view for id, or nil.
func (s *Summary) Contributor(id string) *ContributorView {
	for _, c := range s.Contributors {
		if c.Contributor.ID == id {
			return c
		}
	}

	return nil
}

// Expense returns the view for id, or nil.
func (s *Summary) Expense(id string) *ExpenseView {
	for _, e := range s.Expenses {
		if e.Expense.ID == id {
			return e
		}
	}

	return nil
}

// Upcoming lists unpaid expenses due on or before now plus windowDays,
// earliest first. Overdue expenses are included.
func (s *Summary) Upcoming(now time.Time, windowDays int) []*ExpenseView {
	y, m, d := now.Date()
	limit := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, windowDays+1)

	var out []*ExpenseView

	for _, v := range s.Expenses {
		due := v.Expense.DueDate
		if due == nil || v.Remaining <= 0 || !due.Before(limit) {
			continue
		}

		out = append(out, v)
	}

	slices.SortStableFunc(out, func(a, b *ExpenseView) int {
		if c := a.Expense.DueDate.Compare(*b.Expense.DueDate); c != 0 {
			return c
		}

		return strings.Compare(a.Expense.Title, b.Expense.Title)
	})

	return out
}

// ExceedsBalance reports whether paying amount on behalf of contributorID is
// more than the contributor's available balance. The payment itself is never
// rejected; callers surface this as a warning.
func (s *Summary) ExceedsBalance(contributorID string, amount int64) bool {
	if contributorID == "" {
		return false
	}

	c := s.Contributor(contributorID)
	if c == nil {
		return false
	}

	return amount > c.Available
}
