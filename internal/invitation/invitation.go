package invitation

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/weddingledger/planner/internal/workspace"
)

var (
	ErrNotFound      = errors.New("invitation not found")
	ErrForbidden     = errors.New("forbidden")
	ErrExpired       = errors.New("invitation has expired")
	ErrNotPending    = errors.New("invitation is no longer pending")
	ErrWorkspaceGone = errors.New("the workspace for this invitation no longer exists")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrInvalidRole   = errors.New("invitations can only grant editor or viewer")
	ErrAlreadyMember = errors.New("this email already belongs to a member")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
	StatusExpired  Status = "expired"
)

const DefaultTTL = 7 * 24 * time.Hour

// Actor snapshots who accepted or declined an invitation.
type Actor struct {
	UserID      string    `firestore:"userId"`
	Email       string    `firestore:"email"`
	DisplayName string    `firestore:"displayName"`
	At          time.Time `firestore:"at"`
}

type Invitation struct {
	ID            string         `firestore:"-"`
	Email         string         `firestore:"email"`
	WorkspaceID   string         `firestore:"workspaceId"`
	WorkspaceName string         `firestore:"workspaceName"`
	InvitedBy     string         `firestore:"invitedBy"`
	InviterName   string         `firestore:"inviterName"`
	Role          workspace.Role `firestore:"role"`
	Status        Status         `firestore:"status"`
	Token         string         `firestore:"token"`
	Message       string         `firestore:"message,omitempty"`
	CreatedAt     time.Time      `firestore:"createdAt"`
	UpdatedAt     time.Time      `firestore:"updatedAt"`
	ExpiresAt     time.Time      `firestore:"expiresAt"`
	AcceptedBy    *Actor         `firestore:"acceptedBy,omitempty"`
	DeclinedBy    *Actor         `firestore:"declinedBy,omitempty"`
}

// Expired reports whether the invitation's wall-clock expiry has passed.
func (i *Invitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// Preview is what an unauthenticated visitor holding the token may see.
type Preview struct {
	Email         string
	WorkspaceName string
	InviterName   string
	Role          workspace.Role
	ExpiresAt     time.Time
}

// NewToken returns an unguessable invitation token.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("reading random bytes: %w", err)
	}

	return "inv_" + hex.EncodeToString(b), nil
}
