package ledger

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
	now func() time.Time
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type upcomingResponse struct {
	ExpenseID string    `json:"expenseId"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	DueDate   time.Time `json:"dueDate"`
	Remaining int64     `json:"remaining"`
	Overdue   bool      `json:"overdue"`
}

type summaryResponse struct {
	Currency           string             `json:"currency"`
	UpcomingWindowDays int                `json:"upcomingWindowDays"`
	Totals             ledger.Totals      `json:"totals"`
	Expenses           int                `json:"expenses"`
	Gifts              int                `json:"gifts"`
	Contributors       int                `json:"contributors"`
	Upcoming           []upcomingResponse `json:"upcoming"`
}

// summary reports workspace totals and the payments coming due within the
// configured window.
func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sum, st, err := h.svc.Summary(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	now := h.now().UTC()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	upcoming := sum.Upcoming(now, st.UpcomingWindowDays)

	resp := summaryResponse{
		Currency:           st.Currency,
		UpcomingWindowDays: st.UpcomingWindowDays,
		Totals:             sum.Totals,
		Expenses:           len(sum.Expenses),
		Gifts:              len(sum.Gifts),
		Contributors:       len(sum.Contributors),
		Upcoming:           make([]upcomingResponse, len(upcoming)),
	}

	for i, v := range upcoming {
		resp.Upcoming[i] = upcomingResponse{
			ExpenseID: v.Expense.ID,
			Title:     v.Expense.Title,
			Category:  v.Expense.Category,
			DueDate:   *v.Expense.DueDate,
			Remaining: v.Remaining,
			Overdue:   v.Expense.DueDate.Before(today),
		}
	}

	httpx.JSON(w, http.StatusOK, resp)
}
