package migration

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/migration"
)

type Handler struct {
	svc *migration.Service
}

func NewHandler(svc *migration.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/", h.migrate)
	r.Post("/full", h.full)
}

type statusResponse struct {
	Migrated   bool       `json:"migrated"`
	MigratedAt *time.Time `json:"migratedAt,omitempty"`
	Workspaces []string   `json:"workspaces"`
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Status(r.Context(), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := statusResponse{Migrated: rec.Migrated, Workspaces: rec.Workspaces}
	if !rec.MigratedAt.IsZero() {
		resp.MigratedAt = &rec.MigratedAt
	}

	if resp.Workspaces == nil {
		resp.Workspaces = []string{}
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) migrate(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.MigrateUser(r.Context(), httpx.Identity(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}

// full re-runs the migration regardless of the migrated flag. Copies keep
// their ids, so documents already migrated are overwritten rather than
// duplicated.
func (h *Handler) full(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.RunFull(r.Context(), httpx.Identity(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, report)
}
