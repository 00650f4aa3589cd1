// Package migration moves data from the legacy one-wedding-per-user layout
// into workspaces.
package migration

import (
	"strings"
	"time"

	"github.com/weddingledger/planner/internal/workspace"
)

// Record is stored per user in userMigrations.
type Record struct {
	UserID     string    `firestore:"-"`
	Migrated   bool      `firestore:"migrated"`
	MigratedAt time.Time `firestore:"migratedAt"`
	Workspaces []string  `firestore:"workspaces"`
}

// Wedding is a legacy weddings document.
type Wedding struct {
	ID          string
	OwnerID     string
	Name        string
	CoupleNames string
	WeddingDate *time.Time
	Location    string
	CreatedAt   time.Time
}

// LegacyMember is a legacy workspaceUsers row.
type LegacyMember struct {
	WeddingID   string
	UserID      string
	DisplayName string
	Email       string
	Role        string
}

// ContributorGifts names the report entry for gifts flattened out of
// contributor documents into the gifts collection.
const ContributorGifts = "contributors.gifts"

type CollectionResult struct {
	WorkspaceID string `json:"workspaceId"`
	Collection  string `json:"collection"`
	Copied      int    `json:"copied"`
	Error       string `json:"error,omitempty"`
}

type Report struct {
	UserID      string             `json:"userId"`
	Skipped     bool               `json:"skipped"`
	Workspaces  []string           `json:"workspaces"`
	Collections []CollectionResult `json:"collections"`
	Failed      int                `json:"failed"`
}

// MapRole translates a legacy role. Legacy owners are reported as ok=false
// because the workspace owner row is written separately.
func MapRole(legacy string) (role workspace.Role, ok bool) {
	switch strings.ToLower(strings.TrimSpace(legacy)) {
	case "owner":
		return "", false
	case "editor", "admin":
		return workspace.RoleEditor, true
	default:
		return workspace.RoleViewer, true
	}
}
