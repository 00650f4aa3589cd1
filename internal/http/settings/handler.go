package settings

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type settingsRequest struct {
	TotalBudget        *httpx.Money `json:"totalBudget"`
	Currency           *string      `json:"currency"`
	UpcomingWindowDays *int         `json:"upcomingWindowDays"`
}

type settingsResponse struct {
	TotalBudget        int64      `json:"totalBudget"`
	Currency           string     `json:"currency"`
	UpcomingWindowDays int        `json:"upcomingWindowDays"`
	UpdatedAt          *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(s *settings.Settings) settingsResponse {
	resp := settingsResponse{
		TotalBudget:        s.TotalBudget,
		Currency:           s.Currency,
		UpcomingWindowDays: s.UpcomingWindowDays,
	}

	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = &s.UpdatedAt
	}

	return resp
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(s))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	s, err := h.svc.Update(r.Context(), httpx.WorkspaceID(r), settings.Params{
		TotalBudget:        req.TotalBudget.Ptr(),
		Currency:           req.Currency,
		UpcomingWindowDays: req.UpcomingWindowDays,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(s))
}
