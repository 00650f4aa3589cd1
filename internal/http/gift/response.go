package gift

import (
	"time"

	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/importer"
	"github.com/weddingledger/planner/internal/ledger"
)

type allocationResponse struct {
	ID        string    `json:"id"`
	GiftID    string    `json:"giftId"`
	ExpenseID string    `json:"expenseId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

type giftResponse struct {
	ID            string               `json:"id"`
	ContributorID string               `json:"contributorId,omitempty"`
	FromName      string               `json:"fromName,omitempty"`
	Giver         string               `json:"giver"`
	Amount        int64                `json:"amount"`
	Date          time.Time            `json:"date"`
	Notes         string               `json:"notes,omitempty"`
	Allocations   []allocationResponse `json:"allocations"`
	Allocated     int64                `json:"allocated"`
	Unallocated   int64                `json:"unallocated"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func toResponse(g *gift.Gift, giver string, allocs []*gift.Allocation) giftResponse {
	resp := giftResponse{
		ID:            g.ID,
		ContributorID: g.ContributorID,
		FromName:      g.FromName,
		Giver:         giver,
		Amount:        g.Amount,
		Date:          g.Date,
		Notes:         g.Notes,
		Allocations:   toAllocationList(allocs),
		Allocated:     gift.Allocated(allocs),
		CreatedAt:     g.CreatedAt,
	}
	resp.Unallocated = g.Amount - resp.Allocated

	if resp.Giver == "" {
		resp.Giver = g.FromName
	}

	return resp
}

func fromView(v *ledger.GiftView) giftResponse {
	return toResponse(v.Gift, v.Giver, v.Allocations)
}

func toAllocationList(allocs []*gift.Allocation) []allocationResponse {
	resp := make([]allocationResponse, len(allocs))
	for i, a := range allocs {
		resp[i] = allocationResponse{
			ID:        a.ID,
			GiftID:    a.GiftID,
			ExpenseID: a.ExpenseID,
			Amount:    a.Amount,
			CreatedAt: a.CreatedAt,
		}
	}

	return resp
}

type contributorRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type importResponse struct {
	Gifts           []giftResponse      `json:"gifts"`
	NewContributors []contributorRef    `json:"newContributors"`
	Skipped         []importer.RowError `json:"skipped"`
}

func toImportResponse(res *importer.Result, givers map[string]string) importResponse {
	resp := importResponse{
		Gifts:           make([]giftResponse, len(res.Gifts)),
		NewContributors: make([]contributorRef, len(res.NewContributors)),
		Skipped:         res.Skipped,
	}

	for i, g := range res.Gifts {
		resp.Gifts[i] = toResponse(g, givers[g.ID], nil)
	}

	for i, c := range res.NewContributors {
		resp.NewContributors[i] = contributorRef{ID: c.ID, Name: c.Name}
	}

	if resp.Skipped == nil {
		resp.Skipped = []importer.RowError{}
	}

	return resp
}
