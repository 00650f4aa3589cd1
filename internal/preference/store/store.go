package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/preference"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

// Get returns nil without error when the user has never saved preferences.
func (s *Store) Get(ctx context.Context, userID string) (*preference.Preferences, error) {
	doc, err := s.client.Collection(docstore.UserPreferences).Doc(userID).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting preferences: %w", err)
	}

	var p preference.Preferences
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decoding preferences: %w", err)
	}

	p.UserID = userID

	return &p, nil
}

func (s *Store) Save(ctx context.Context, p *preference.Preferences) error {
	if _, err := s.client.Collection(docstore.UserPreferences).Doc(p.UserID).Set(ctx, p); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	return nil
}
