package notification

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeWorkspaceDeleted   Type = "workspace_deleted"
	TypeInvitationAccepted Type = "invitation_accepted"
	TypeInvitationDeclined Type = "invitation_declined"
	TypeMemberRemoved      Type = "member_removed"
	TypeRoleChanged        Type = "role_changed"
)

type Notification struct {
	ID          string    `firestore:"-"`
	UserID      string    `firestore:"userId"`
	WorkspaceID string    `firestore:"workspaceId"`
	Type        Type      `firestore:"type"`
	Title       string    `firestore:"title"`
	Message     string    `firestore:"message"`
	Read        bool      `firestore:"read"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

func WorkspaceDeleted(userID, workspaceID, workspaceName string, at time.Time) *Notification {
	return &Notification{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Type:        TypeWorkspaceDeleted,
		Title:       "Workspace deleted",
		Message:     fmt.Sprintf("The workspace %q has been deleted by its owner.", workspaceName),
		CreatedAt:   at,
	}
}

func InvitationAccepted(inviterID, workspaceID, who, workspaceName string, at time.Time) *Notification {
	return &Notification{
		UserID:      inviterID,
		WorkspaceID: workspaceID,
		Type:        TypeInvitationAccepted,
		Title:       "Invitation accepted",
		Message:     fmt.Sprintf("%s joined %q.", who, workspaceName),
		CreatedAt:   at,
	}
}

func InvitationDeclined(inviterID, workspaceID, who, workspaceName string, at time.Time) *Notification {
	return &Notification{
		UserID:      inviterID,
		WorkspaceID: workspaceID,
		Type:        TypeInvitationDeclined,
		Title:       "Invitation declined",
		Message:     fmt.Sprintf("%s declined the invitation to %q.", who, workspaceName),
		CreatedAt:   at,
	}
}

func MemberRemoved(userID, workspaceID, workspaceName string, at time.Time) *Notification {
	return &Notification{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Type:        TypeMemberRemoved,
		Title:       "Removed from workspace",
		Message:     fmt.Sprintf("You no longer have access to %q.", workspaceName),
		CreatedAt:   at,
	}
}

func RoleChanged(userID, workspaceID, workspaceName, role string, at time.Time) *Notification {
	return &Notification{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Type:        TypeRoleChanged,
		Title:       "Role changed",
		Message:     fmt.Sprintf("Your role in %q is now %s.", workspaceName, role),
		CreatedAt:   at,
	}
}
