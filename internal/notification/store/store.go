package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/notification"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) col() *firestore.CollectionRef {
	return s.client.Collection(docstore.Notifications)
}

func (s *Store) List(ctx context.Context, userID string, limit int) ([]*notification.Notification, error) {
	q := s.col().Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc).Limit(limit)

	var out []*notification.Notification

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		n, err := decode(doc)
		if err != nil {
			return err
		}

		out = append(out, n)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (*notification.Notification, error) {
	doc, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, notification.ErrNotFound
		}

		return nil, fmt.Errorf("getting notification: %w", err)
	}

	return decode(doc)
}

func (s *Store) MarkRead(ctx context.Context, id string) error {
	_, err := s.col().Doc(id).Update(ctx, []firestore.Update{{Path: "read", Value: true}})
	if err != nil {
		if docstore.IsNotFound(err) {
			return notification.ErrNotFound
		}

		return fmt.Errorf("updating notification: %w", err)
	}

	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, userID string) (int, error) {
	q := s.col().Where("userId", "==", userID).Where("read", "==", false)
	total := 0

	for {
		docs, err := q.Limit(docstore.BatchLimit).Documents(ctx).GetAll()
		if err != nil {
			return total, fmt.Errorf("listing unread notifications: %w", err)
		}

		if len(docs) == 0 {
			return total, nil
		}

		batch := s.client.Batch()
		for _, doc := range docs {
			batch.Update(doc.Ref, []firestore.Update{{Path: "read", Value: true}})
		}

		if _, err := batch.Commit(ctx); err != nil {
			return total, fmt.Errorf("committing read batch: %w", err)
		}

		total += len(docs)
	}
}

// Add writes n inside an existing transaction.
func Add(tx *firestore.Transaction, client *firestore.Client, n *notification.Notification) error {
	ref := client.Collection(docstore.Notifications).NewDoc()
	n.ID = ref.ID

	if err := tx.Create(ref, n); err != nil {
		return fmt.Errorf("queueing %s notification: %w", n.Type, err)
	}

	return nil
}

func decode(doc *firestore.DocumentSnapshot) (*notification.Notification, error) {
	var n notification.Notification
	if err := doc.DataTo(&n); err != nil {
		return nil, fmt.Errorf("decoding notification %s: %w", doc.Ref.ID, err)
	}

	n.ID = doc.Ref.ID

	return &n, nil
}
