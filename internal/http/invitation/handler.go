package invitation

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/invitation"
	"github.com/weddingledger/planner/internal/workspace"
)

type Handler struct {
	svc *invitation.Service
}

func NewHandler(svc *invitation.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes are reachable without a token so the accept page can show who
// sent the invitation before the visitor signs in.
func (h *Handler) PublicRoutes(r chi.Router) {
	r.Get("/lookup", h.lookup)
}

// Routes are the caller-scoped invitation endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/pending", h.pending)
	r.Post("/accept", h.accept)
	r.Post("/decline", h.decline)
	r.Delete("/{invitationID}", h.cancel)
}

// WorkspaceRoutes are mounted under a workspace.
func (h *Handler) WorkspaceRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.send)
}

type sendRequest struct {
	Email   string         `json:"email"`
	Role    workspace.Role `json:"role"`
	Message string         `json:"message"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	inv, err := h.svc.Send(r.Context(), httpx.Identity(r), httpx.WorkspaceID(r), invitation.SendParams{
		Email:   req.Email,
		Role:    req.Role,
		Message: req.Message,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	resp := toResponse(inv)
	resp.AcceptURL = h.svc.AcceptLink(inv)

	httpx.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListForWorkspace(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toList(list))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Lookup(r.Context(), token)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, previewResponse{
		Email:         p.Email,
		WorkspaceName: p.WorkspaceName,
		InviterName:   p.InviterName,
		Role:          p.Role,
		ExpiresAt:     p.ExpiresAt,
	})
}

func (h *Handler) pending(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListPendingForEmail(r.Context(), httpx.Identity(r).Email)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toList(list))
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Accept)
}

func (h *Handler) decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.svc.Decline)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, token string, user auth.Identity) (*invitation.Invitation, error)) {
	var req tokenRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	if req.Token == "" {
		http.Error(w, "token is required", http.StatusBadRequest)
		return
	}

	inv, err := fn(r.Context(), req.Token, httpx.Identity(r))
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "invitationID"), httpx.Identity(r).UserID); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
