package category

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/category"
	"github.com/weddingledger/planner/internal/http/httpx"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{categoryID}", h.update)
	r.Delete("/{categoryID}", h.delete)
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Color: c.Color, CreatedAt: c.CreatedAt}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, len(list))
	for i, c := range list {
		resp[i] = toResponse(c)
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), httpx.WorkspaceID(r), category.Params{Name: req.Name, Color: req.Color})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "categoryID"), category.Params{Name: req.Name, Color: req.Color})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), httpx.WorkspaceID(r), chi.URLParam(r, "categoryID")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
