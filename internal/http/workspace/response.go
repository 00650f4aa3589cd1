package workspace

import (
	"time"

	"github.com/weddingledger/planner/internal/workspace"
)

type workspaceResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CoupleNames       string     `json:"coupleNames"`
	OwnerID           string     `json:"ownerId"`
	OwnerName         string     `json:"ownerName"`
	OwnerEmail        string     `json:"ownerEmail"`
	WeddingDate       *time.Time `json:"weddingDate,omitempty"`
	Location          string     `json:"location"`
	MembersCount      int        `json:"membersCount"`
	OriginalWeddingID string     `json:"originalWeddingId,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type memberResponse struct {
	UserID      string         `json:"userId"`
	DisplayName string         `json:"displayName"`
	Email       string         `json:"email"`
	Role        workspace.Role `json:"role"`
	JoinedAt    time.Time      `json:"joinedAt"`
}

type userWorkspaceResponse struct {
	workspaceResponse
	Role    workspace.Role   `json:"role"`
	Members []memberResponse `json:"members"`
}

func toResponse(w *workspace.Workspace) workspaceResponse {
	return workspaceResponse{
		ID:                w.ID,
		Name:              w.Name,
		CoupleNames:       w.CoupleNames,
		OwnerID:           w.OwnerID,
		OwnerName:         w.OwnerName,
		OwnerEmail:        w.OwnerEmail,
		WeddingDate:       w.WeddingDate,
		Location:          w.Location,
		MembersCount:      w.MembersCount,
		OriginalWeddingID: w.OriginalWeddingID,
		CreatedAt:         w.CreatedAt,
		UpdatedAt:         w.UpdatedAt,
	}
}

func toMemberResponse(m *workspace.Member) memberResponse {
	return memberResponse{
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
	}
}

func toMemberList(members []*workspace.Member) []memberResponse {
	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toMemberResponse(m)
	}

	return resp
}

func toUserWorkspaceList(list []*workspace.UserWorkspace) []userWorkspaceResponse {
	resp := make([]userWorkspaceResponse, len(list))
	for i, uw := range list {
		resp[i] = userWorkspaceResponse{
			workspaceResponse: toResponse(uw.Workspace),
			Role:              uw.Role,
			Members:           toMemberList(uw.Members),
		}
	}

	return resp
}
