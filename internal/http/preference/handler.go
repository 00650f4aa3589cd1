package preference

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/preference"
)

type Handler struct {
	svc *preference.Service
}

func NewHandler(svc *preference.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type preferencesRequest struct {
	CurrentWorkspaceID *string `json:"currentWorkspaceId"`
	HasCompletedSetup  *bool   `json:"hasCompletedSetup"`
}

type preferencesResponse struct {
	CurrentWorkspaceID string     `json:"currentWorkspaceId"`
	HasCompletedSetup  bool       `json:"hasCompletedSetup"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(p *preference.Preferences) preferencesResponse {
	resp := preferencesResponse{
		CurrentWorkspaceID: p.CurrentWorkspaceID,
		HasCompletedSetup:  p.HasCompletedSetup,
	}

	if !p.UpdatedAt.IsZero() {
		resp.UpdatedAt = &p.UpdatedAt
	}

	return resp
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(p))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	p, err := h.svc.Update(r.Context(), httpx.Identity(r).UserID, preference.UpdateParams{
		CurrentWorkspaceID: req.CurrentWorkspaceID,
		HasCompletedSetup:  req.HasCompletedSetup,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(p))
}
