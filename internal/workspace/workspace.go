package workspace

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("workspace not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrForbidden      = errors.New("forbidden")
	ErrOwnerImmutable = errors.New("the owner membership cannot be removed or changed")
	ErrInvalidRole    = errors.New("invalid role")
	ErrInvalidName    = errors.New("workspace name is required")
	ErrAlreadyMember  = errors.New("user is already a member")
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	return r.Rank() > 0
}

func (r Role) CanWrite() bool {
	return r == RoleOwner || r == RoleEditor
}

// Rank orders roles by privilege; unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

type Workspace struct {
	ID                string     `firestore:"-"`
	Name              string     `firestore:"name"`
	CoupleNames       string     `firestore:"coupleNames"`
	OwnerID           string     `firestore:"ownerId"`
	OwnerName         string     `firestore:"ownerName"`
	OwnerEmail        string     `firestore:"ownerEmail"`
	WeddingDate       *time.Time `firestore:"weddingDate"`
	Location          string     `firestore:"location"`
	MembersCount      int        `firestore:"membersCount"`
	OriginalWeddingID string     `firestore:"originalWeddingId,omitempty"`
	CreatedAt         time.Time  `firestore:"createdAt"`
	UpdatedAt         time.Time  `firestore:"updatedAt"`
}

type Member struct {
	ID          string    `firestore:"-"`
	WorkspaceID string    `firestore:"workspaceId"`
	UserID      string    `firestore:"userId"`
	DisplayName string    `firestore:"displayName"`
	Email       string    `firestore:"email"`
	Role        Role      `firestore:"role"`
	JoinedAt    time.Time `firestore:"joinedAt"`
}

// MemberID is the document id of the single member row for a user in a
// workspace.
func MemberID(workspaceID, userID string) string {
	return workspaceID + "_" + userID
}

type Details struct {
	Name        string
	CoupleNames string
	WeddingDate *time.Time
	Location    string
}

// UserWorkspace is a workspace as seen by one of its members.
type UserWorkspace struct {
	Workspace *Workspace
	Role      Role
	Members   []*Member
}
