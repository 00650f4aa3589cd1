package expense

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/ledger"
)

type Handler struct {
	svc    *expense.Service
	ledger *ledger.Service
}

func NewHandler(svc *expense.Service, ledger *ledger.Service) *Handler {
	return &Handler{svc: svc, ledger: ledger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)

	r.Route("/{expenseID}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Patch("/", h.update)
		r.Delete("/", h.delete)

		r.Post("/payments", h.addPayment)
		r.Put("/payments/{paymentID}", h.updatePayment)
		r.Delete("/payments/{paymentID}", h.removePayment)
	})
}

type createRequest struct {
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	TotalAmount httpx.Money `json:"totalAmount"`
	DueDate     *httpx.Date `json:"dueDate"`
	Provider    string      `json:"provider"`
	Notes       string      `json:"notes"`
}

type updateRequest struct {
	Title        *string      `json:"title"`
	Category     *string      `json:"category"`
	TotalAmount  *httpx.Money `json:"totalAmount"`
	DueDate      *httpx.Date  `json:"dueDate"`
	ClearDueDate bool         `json:"clearDueDate"`
	Provider     *string      `json:"provider"`
	Notes        *string      `json:"notes"`
}

type paymentRequest struct {
	ContributorID string      `json:"contributorId"`
	Amount        httpx.Money `json:"amount"`
	Date          httpx.Date  `json:"date"`
	Notes         string      `json:"notes"`
}

func (p paymentRequest) toParams() expense.PaymentParams {
	return expense.PaymentParams{
		ContributorID: strings.TrimSpace(p.ContributorID),
		Amount:        int64(p.Amount),
		Date:          p.Date.Time,
		Notes:         p.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter expense.ListFilter
	if c := q.Get("category"); c != "" {
		filter.Category = &c
	}

	var err error
	if filter.DueFrom, err = httpx.QueryDate(q.Get("dueFrom")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if filter.DueTo, err = httpx.QueryDate(q.Get("dueTo")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	wsID := httpx.WorkspaceID(r)

	expenses, err := h.svc.List(r.Context(), wsID, filter)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	sum, _, err := h.ledger.Summary(r.Context(), wsID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		if v := sum.Expense(e.ID); v != nil {
			resp = append(resp, toResponse(v))
		}
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	e, err := h.svc.Create(r.Context(), httpx.WorkspaceID(r), expense.CreateParams{
		Title:       req.Title,
		Category:    req.Category,
		TotalAmount: int64(req.TotalAmount),
		DueDate:     req.DueDate.TimePtr(),
		Provider:    req.Provider,
		Notes:       req.Notes,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(&ledger.ExpenseView{
		Expense:   e,
		Paid:      expense.PaidAmount(e),
		Remaining: expense.RemainingAmount(e),
		Overpaid:  expense.Overpaid(e),
	}))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(v))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	_, err := h.svc.Update(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "expenseID"), expense.UpdateParams{
		Title:       req.Title,
		Category:    req.Category,
		TotalAmount: req.TotalAmount.Ptr(),
		DueDate:     req.DueDate.TimePtr(),
		ClearDue:    req.ClearDueDate,
		Provider:    req.Provider,
		Notes:       req.Notes,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.get(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "expenseID")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	params := req.toParams()

	exceeds, err := h.exceedsBalance(r, params, "")
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	_, p, err := h.svc.AddPayment(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "expenseID"), params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.paymentResult(w, r, http.StatusCreated, p, exceeds)
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	params := req.toParams()
	paymentID := chi.URLParam(r, "paymentID")

	exceeds, err := h.exceedsBalance(r, params, paymentID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	e, err := h.svc.UpdatePayment(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "expenseID"), paymentID, params)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	var updated *expense.PaymentAllocation
	for i := range e.PaymentAllocations {
		if e.PaymentAllocations[i].ID == paymentID {
			updated = &e.PaymentAllocations[i]
		}
	}

	h.paymentResult(w, r, http.StatusOK, updated, exceeds)
}

func (h *Handler) removePayment(w http.ResponseWriter, r *http.Request) {
	_, err := h.svc.RemovePayment(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "expenseID"), chi.URLParam(r, "paymentID"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.get(w, r)
}

// exceedsBalance reports whether the payment is larger than the
// contributor's available balance. When replacing an existing payment of the
// same contributor, its current amount counts as available again.
func (h *Handler) exceedsBalance(r *http.Request, p expense.PaymentParams, replacing string) (bool, error) {
	if p.ContributorID == "" || p.Amount <= 0 {
		return false, nil
	}

	sum, _, err := h.ledger.Summary(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		return false, err
	}

	amount := p.Amount

	if v := sum.Expense(chi.URLParam(r, "expenseID")); v != nil && replacing != "" {
		for _, old := range v.Expense.PaymentAllocations {
			if old.ID == replacing && old.ContributorID == p.ContributorID {
				amount -= old.Amount
			}
		}
	}

	if amount <= 0 {
		return false, nil
	}

	return sum.ExceedsBalance(p.ContributorID, amount), nil
}

// view loads the ledger view of the expense in the route, writing the error
// response when it fails.
func (h *Handler) view(w http.ResponseWriter, r *http.Request) (*ledger.ExpenseView, bool) {
	v, err := h.ledger.Expense(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "expenseID"))
	if err != nil {
		httpx.Error(w, r, err)
		return nil, false
	}

	return v, true
}

func (h *Handler) paymentResult(w http.ResponseWriter, r *http.Request, status int, p *expense.PaymentAllocation, exceeds bool) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}

	resp := paymentResultResponse{Expense: toResponse(v), ExceedsBalance: exceeds}
	if p != nil {
		resp.Payment = new(toPaymentResponse(*p))
	}

	httpx.JSON(w, status, resp)
}
