package gift

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/importer"
	"github.com/weddingledger/planner/internal/ledger"
)

// maxImportSize bounds the multipart body of a gift list upload.
const maxImportSize = 5 << 20

type Handler struct {
	svc      *gift.Service
	ledger   *ledger.Service
	importer *importer.Service
}

func NewHandler(svc *gift.Service, ledger *ledger.Service, importer *importer.Service) *Handler {
	return &Handler{svc: svc, ledger: ledger, importer: importer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/import", h.importFile)

	r.Route("/{giftID}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Patch("/", h.update)
		r.Delete("/", h.delete)
		r.Put("/allocations", h.setAllocations)
	})
}

// ContributorRoutes are mounted under /contributors/{contributorID}/gifts.
func (h *Handler) ContributorRoutes(r chi.Router) {
	r.Post("/", h.createForContributor)
}

type allocationRequest struct {
	ExpenseID string      `json:"expenseId"`
	Amount    httpx.Money `json:"amount"`
}

type createRequest struct {
	ContributorID string              `json:"contributorId"`
	FromName      string              `json:"fromName"`
	Amount        httpx.Money         `json:"amount"`
	Date          httpx.Date          `json:"date"`
	Notes         string              `json:"notes"`
	Allocations   []allocationRequest `json:"allocations"`
}

func (c createRequest) toParams() gift.Params {
	return gift.Params{
		ContributorID: c.ContributorID,
		FromName:      c.FromName,
		Amount:        int64(c.Amount),
		Date:          c.Date.Time,
		Notes:         c.Notes,
	}
}

type updateRequest struct {
	FromName *string      `json:"fromName"`
	Amount   *httpx.Money `json:"amount"`
	Date     *httpx.Date  `json:"date"`
	Notes    *string      `json:"notes"`
}

type allocationsRequest struct {
	Allocations []allocationRequest `json:"allocations"`
}

func toAllocationParams(reqs []allocationRequest) []gift.AllocationParams {
	out := make([]gift.AllocationParams, len(reqs))
	for i, a := range reqs {
		out[i] = gift.AllocationParams{ExpenseID: a.ExpenseID, Amount: int64(a.Amount)}
	}

	return out
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sum, _, err := h.ledger.Summary(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]giftResponse, len(sum.Gifts))
	for i, v := range sum.Gifts {
		resp[i] = fromView(v)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	g, allocs, err := h.svc.Add(r.Context(), httpx.WorkspaceID(r), req.toParams(), toAllocationParams(req.Allocations))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.created(w, r, g, allocs)
}

func (h *Handler) createForContributor(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	g, allocs, err := h.svc.AddToContributor(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "contributorID"),
		req.toParams(), toAllocationParams(req.Allocations))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.created(w, r, g, allocs)
}

func (h *Handler) created(w http.ResponseWriter, r *http.Request, g *gift.Gift, allocs []*gift.Allocation) {
	httpx.JSON(w, http.StatusCreated, toResponse(g, h.giver(r, g), allocs))
}

// giver resolves the display name of whoever gave g. A contributor that can
// no longer be loaded falls back to the free-text name.
func (h *Handler) giver(r *http.Request, g *gift.Gift) string {
	if g.ContributorID != "" {
		if v, err := h.ledger.Balance(r.Context(), httpx.WorkspaceID(r), g.ContributorID); err == nil {
			return v.Contributor.Name
		}
	}

	return g.FromName
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	g, allocs, err := h.svc.Get(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "giftID"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(g, h.giver(r, g), allocs))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	_, err := h.svc.Update(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "giftID"), gift.UpdateParams{
		FromName: req.FromName,
		Amount:   req.Amount.Ptr(),
		Date:     req.Date.TimePtr(),
		Notes:    req.Notes,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.get(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "giftID")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setAllocations(w http.ResponseWriter, r *http.Request) {
	var req allocationsRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	allocs, err := h.svc.SetAllocations(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "giftID"), toAllocationParams(req.Allocations))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toAllocationList(allocs))
}

func (h *Handler) importFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "a CSV file is required in the \"file\" field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if name := strings.ToLower(header.Filename); name != "" && !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".txt") {
		http.Error(w, "only .csv files can be imported", http.StatusBadRequest)
		return
	}

	res, err := h.importer.Import(r.Context(), httpx.WorkspaceID(r), file)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	givers := make(map[string]string, len(res.Gifts))

	if sum, _, err := h.ledger.Summary(r.Context(), httpx.WorkspaceID(r)); err == nil {
		for _, v := range sum.Gifts {
			givers[v.Gift.ID] = v.Giver
		}
	}

	httpx.JSON(w, http.StatusCreated, toImportResponse(res, givers))
}
