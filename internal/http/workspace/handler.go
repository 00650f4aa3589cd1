package workspace

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/workspace"
)

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes registers the collection endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/events", h.events)
}

// ItemRoutes registers the endpoints of a single workspace. They are mounted
// under /{workspaceID}; the service checks the caller's role itself.
func (h *Handler) ItemRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Patch("/", h.update)
	r.Delete("/", h.delete)

	r.Get("/members", h.listMembers)
	r.Post("/members", h.addMember)
	r.Patch("/members/{userID}", h.updateMemberRole)
	r.Delete("/members/{userID}", h.removeMember)
}

type detailsRequest struct {
	Name        string     `json:"name"`
	CoupleNames string     `json:"coupleNames"`
	WeddingDate *time.Time `json:"weddingDate,omitempty"`
	Location    string     `json:"location"`
}

func (d detailsRequest) toDetails() workspace.Details {
	return workspace.Details{
		Name:        d.Name,
		CoupleNames: d.CoupleNames,
		WeddingDate: d.WeddingDate,
		Location:    d.Location,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListForUser(r.Context(), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toUserWorkspaceList(list))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	ws, err := h.svc.Create(r.Context(), httpx.Identity(r), req.toDetails())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(ws))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ws, err := h.svc.Get(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(ws))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	ws, err := h.svc.Update(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID, req.toDetails())
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(ws))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.ListMembers(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toMemberList(members))
}

type addMemberRequest struct {
	UserID      string         `json:"userId"`
	DisplayName string         `json:"displayName"`
	Email       string         `json:"email"`
	Role        workspace.Role `json:"role"`
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	if req.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	m, err := h.svc.AddMember(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID, workspace.NewMember{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        req.Role,
	})
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toMemberResponse(m))
}

type updateRoleRequest struct {
	Role workspace.Role `json:"role"`
}

func (h *Handler) updateMemberRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !httpx.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.UpdateMemberRole(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID, chi.URLParam(r, "userID"), req.Role)
	if err != nil {
		httpx.Error(w, r, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toMemberResponse(m))
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveMember(r.Context(), httpx.WorkspaceID(r), httpx.Identity(r).UserID, chi.URLParam(r, "userID")); err != nil {
		httpx.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
