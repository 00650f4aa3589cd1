package contributor

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/ledger"
)

// GiftRoutes serves the gifts recorded on behalf of one contributor.
type GiftRoutes interface {
	ContributorRoutes(r chi.Router)
}

type Handler struct {
	svc    *contributor.Service
	ledger *ledger.Service
	gifts  GiftRoutes
}

func NewHandler(svc *contributor.Service, ledger *ledger.Service, gifts GiftRoutes) *Handler {
	return &Handler{svc: svc, ledger: ledger, gifts: gifts}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)

	r.Route("/{contributorID}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Put("/", h.update)
		r.Delete("/", h.delete)

		if h.gifts != nil {
			r.Route("/gifts", h.gifts.ContributorRoutes)
		}
	})
}

type contributorRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

type contributorResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Notes      string    `json:"notes,omitempty"`
	TotalGifts int64     `json:"totalGifts"`
	Spent      int64     `json:"spent"`
	Available  int64     `json:"available"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toResponse(v *ledger.ContributorView) contributorResponse {
	return contributorResponse{
		ID:         v.Contributor.ID,
		Name:       v.Contributor.Name,
		Notes:      v.Contributor.Notes,
		TotalGifts: v.TotalGifts,
		Spent:      v.Spent,
		Available:  v.Available,
		CreatedAt:  v.Contributor.CreatedAt,
		UpdatedAt:  v.Contributor.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	sum, _, err := h.ledger.Summary(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]contributorResponse, len(sum.Contributors))
	for i, v := range sum.Contributors {
		resp[i] = toResponse(v)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req contributorRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), httpx.WorkspaceID(r), contributor.Params{Name: req.Name, Notes: req.Notes})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(&ledger.ContributorView{Contributor: c}))
}

// get returns the contributor with the balance used to warn before a payment
// larger than what they have given.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.ledger.Balance(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "contributorID"))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(v))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req contributorRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	_, err := h.svc.Update(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "contributorID"), contributor.Params{Name: req.Name, Notes: req.Notes})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	h.get(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "contributorID")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
