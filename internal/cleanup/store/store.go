package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/cleanup"
	"github.com/weddingledger/planner/internal/docstore"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) col() *firestore.CollectionRef {
	return s.client.Collection(docstore.Cleanups)
}

func (s *Store) Pending(ctx context.Context, limit int) ([]*cleanup.Job, error) {
	q := s.col().OrderBy("createdAt", firestore.Asc).Limit(limit)

	var jobs []*cleanup.Job

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		var j cleanup.Job
		if err := doc.DataTo(&j); err != nil {
			return fmt.Errorf("decoding job %s: %w", doc.Ref.ID, err)
		}

		j.ID = doc.Ref.ID
		jobs = append(jobs, &j)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("querying cleanup jobs: %w", err)
	}

	return jobs, nil
}

func (s *Store) Purge(ctx context.Context, job *cleanup.Job, batchSize int) (int, error) {
	var q firestore.Query

	switch job.Scope {
	case cleanup.ScopeSubcollection:
		q = docstore.Sub(s.client, job.WorkspaceID, job.Collection).Query
	case cleanup.ScopeTopLevel:
		q = s.client.Collection(job.Collection).Where(job.Field, "==", job.WorkspaceID)
	default:
		return 0, fmt.Errorf("unknown cleanup scope %q", job.Scope)
	}

	return docstore.DeleteQuery(ctx, s.client, q, batchSize)
}

func (s *Store) Complete(ctx context.Context, id string) error {
	if _, err := s.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}

	return nil
}

func (s *Store) Fail(ctx context.Context, id string, cause string) error {
	_, err := s.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "attempts", Value: firestore.Increment(1)},
		{Path: "lastError", Value: cause},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}

	return nil
}

// Enqueue writes jobs inside an existing transaction.
func Enqueue(tx *firestore.Transaction, client *firestore.Client, jobs []*cleanup.Job) error {
	for _, j := range jobs {
		if err := tx.Set(client.Collection(docstore.Cleanups).Doc(j.ID), j); err != nil {
			return fmt.Errorf("enqueueing cleanup of %s: %w", j.Collection, err)
		}
	}

	return nil
}
