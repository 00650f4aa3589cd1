package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/settings"
)

// docID is the single settings document under workspaces/{id}/settings.
const docID = "general"

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) ref(workspaceID string) *firestore.DocumentRef {
	return docstore.Sub(s.client, workspaceID, docstore.Settings).Doc(docID)
}

// Get returns nil without error when the workspace has no settings yet.
func (s *Store) Get(ctx context.Context, workspaceID string) (*settings.Settings, error) {
	doc, err := s.ref(workspaceID).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting settings: %w", err)
	}

	data := doc.Data()

	st := &settings.Settings{
		WorkspaceID:        workspaceID,
		TotalBudget:        docstore.Int64(data, "totalBudget"),
		Currency:           docstore.String(data, "currency"),
		UpcomingWindowDays: int(docstore.Int64(data, "upcomingWindowDays")),
	}
	st.UpdatedAt, _ = docstore.Time(data["updatedAt"])

	return st, nil
}

func (s *Store) Save(ctx context.Context, st *settings.Settings) error {
	if _, err := s.ref(st.WorkspaceID).Set(ctx, st); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	return nil
}
