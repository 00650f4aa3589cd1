package invitation

import (
	"time"

	"github.com/weddingledger/planner/internal/invitation"
	"github.com/weddingledger/planner/internal/workspace"
)

type invitationResponse struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	WorkspaceID   string            `json:"workspaceId"`
	WorkspaceName string            `json:"workspaceName"`
	InvitedBy     string            `json:"invitedBy"`
	InviterName   string            `json:"inviterName"`
	Role          workspace.Role    `json:"role"`
	Status        invitation.Status `json:"status"`
	Message       string            `json:"message,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	ExpiresAt     time.Time         `json:"expiresAt"`
	AcceptURL     string            `json:"acceptUrl,omitempty"`
}

type previewResponse struct {
	Email         string         `json:"email"`
	WorkspaceName string         `json:"workspaceName"`
	InviterName   string         `json:"inviterName"`
	Role          workspace.Role `json:"role"`
	ExpiresAt     time.Time      `json:"expiresAt"`
}

func toResponse(inv *invitation.Invitation) invitationResponse {
	return invitationResponse{
		ID:            inv.ID,
		Email:         inv.Email,
		WorkspaceID:   inv.WorkspaceID,
		WorkspaceName: inv.WorkspaceName,
		InvitedBy:     inv.InvitedBy,
		InviterName:   inv.InviterName,
		Role:          inv.Role,
		Status:        inv.Status,
		Message:       inv.Message,
		CreatedAt:     inv.CreatedAt,
		ExpiresAt:     inv.ExpiresAt,
	}
}

func toList(list []*invitation.Invitation) []invitationResponse {
	resp := make([]invitationResponse, len(list))
	for i, inv := range list {
		resp[i] = toResponse(inv)
	}

	return resp
}
