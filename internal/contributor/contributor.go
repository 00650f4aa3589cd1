package contributor

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("contributor not found")
	ErrInvalidName = errors.New("contributor name is required")
)

// Contributor is a person giving money towards the wedding. Contributors are
// not platform users.
type Contributor struct {
	ID          string    `firestore:"-"`
	WorkspaceID string    `firestore:"workspaceId"`
	Name        string    `firestore:"name"`
	Notes       string    `firestore:"notes,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}
