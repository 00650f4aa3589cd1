package notification

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/notification"
)

type Handler struct {
	svc *notification.Service
}

func NewHandler(svc *notification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/read-all", h.markAllRead)
	r.Post("/{notificationID}/read", h.markRead)
}

type notificationResponse struct {
	ID          string            `json:"id"`
	WorkspaceID string            `json:"workspaceId"`
	Type        notification.Type `json:"type"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Read        bool              `json:"read"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type listResponse struct {
	Notifications []notificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := listResponse{Notifications: make([]notificationResponse, len(list))}

	for i, n := range list {
		resp.Notifications[i] = notificationResponse{
			ID:          n.ID,
			WorkspaceID: n.WorkspaceID,
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			Read:        n.Read,
			CreatedAt:   n.CreatedAt,
		}

		if !n.Read {
			resp.Unread++
		}
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkRead(r.Context(), httpx.Identity(r).UserID, chi.URLParam(r, "notificationID")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type markAllResponse struct {
	Updated int `json:"updated"`
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context(), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, markAllResponse{Updated: n})
}
