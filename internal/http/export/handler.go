package export

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/export"
	"github.com/weddingledger/planner/internal/http/httpx"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export.xlsx", h.download)
	r.Post("/export/archive", h.archive)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	f, err := h.svc.Workbook(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Data)
}

type archiveResponse struct {
	URL string `json:"url"`
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	url, err := h.svc.Archive(r.Context(), httpx.WorkspaceID(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, archiveResponse{URL: url})
}
