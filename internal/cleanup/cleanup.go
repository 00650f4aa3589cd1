// Package cleanup implements the cascade-delete outbox for workspaces. Jobs
// are written in the same transaction that deletes a workspace and are
// drained afterwards until nothing is left.
package cleanup

import (
	"time"

	"github.com/weddingledger/planner/internal/docstore"
)

type Scope string

const (
	ScopeSubcollection Scope = "subcollection"
	ScopeTopLevel      Scope = "topLevel"
)

type Job struct {
	ID          string    `firestore:"-"`
	WorkspaceID string    `firestore:"workspaceId"`
	Collection  string    `firestore:"collection"`
	Scope       Scope     `firestore:"scope"`
	Field       string    `firestore:"field,omitempty"`
	Attempts    int       `firestore:"attempts"`
	LastError   string    `firestore:"lastError,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
}

// Top-level collections keyed by a workspaceId field. Notifications are left
// alone so members can still read the deletion notice.
var topLevel = []string{
	docstore.Invitations,
}

func JobID(workspaceID, collection string) string {
	return workspaceID + "_" + collection
}

// JobsFor returns the cleanup jobs needed after workspaceID is deleted.
func JobsFor(workspaceID string, now time.Time) []*Job {
	jobs := make([]*Job, 0, len(docstore.Dependent)+len(topLevel))

	for _, c := range docstore.Dependent {
		jobs = append(jobs, &Job{
			ID:          JobID(workspaceID, c),
			WorkspaceID: workspaceID,
			Collection:  c,
			Scope:       ScopeSubcollection,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	for _, c := range topLevel {
		jobs = append(jobs, &Job{
			ID:          JobID(workspaceID, c),
			WorkspaceID: workspaceID,
			Collection:  c,
			Scope:       ScopeTopLevel,
			Field:       "workspaceId",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return jobs
}
