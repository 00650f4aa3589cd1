package store

import (
	"context"
	"fmt"
	"maps"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/migration"
	"github.com/weddingledger/planner/internal/workspace"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) GetRecord(ctx context.Context, userID string) (*migration.Record, error) {
	doc, err := s.client.Collection(docstore.UserMigrations).Doc(userID).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting migration record: %w", err)
	}

	data := doc.Data()

	rec := &migration.Record{UserID: userID}
	rec.Migrated, _ = data["migrated"].(bool)
	rec.MigratedAt, _ = docstore.Time(data["migratedAt"])

	if ids, ok := data["workspaces"].([]any); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok {
				rec.Workspaces = append(rec.Workspaces, s)
			}
		}
	}

	return rec, nil
}

func (s *Store) SaveRecord(ctx context.Context, r *migration.Record) error {
	if _, err := s.client.Collection(docstore.UserMigrations).Doc(r.UserID).Set(ctx, r); err != nil {
		return fmt.Errorf("saving migration record: %w", err)
	}

	return nil
}

func (s *Store) LegacyWeddings(ctx context.Context, userID string) ([]*migration.Wedding, error) {
	var out []*migration.Wedding

	q := s.client.Collection(docstore.LegacyWeddings).Where("userId", "==", userID)

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		data := doc.Data()

		w := &migration.Wedding{
			ID:          doc.Ref.ID,
			OwnerID:     docstore.String(data, "userId"),
			Name:        docstore.String(data, "name", "title"),
			CoupleNames: docstore.String(data, "coupleNames"),
			WeddingDate: docstore.TimePtr(data["weddingDate"]),
			Location:    docstore.String(data, "location"),
		}
		w.CreatedAt, _ = docstore.Time(data["createdAt"])

		out = append(out, w)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing legacy weddings: %w", err)
	}

	return out, nil
}

func (s *Store) LegacyMembers(ctx context.Context, weddingID string) ([]*migration.LegacyMember, error) {
	var out []*migration.LegacyMember

	q := s.client.Collection(docstore.LegacyWorkspaceUsers).Where("weddingId", "==", weddingID)

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		data := doc.Data()

		out = append(out, &migration.LegacyMember{
			WeddingID:   weddingID,
			UserID:      docstore.String(data, "userId"),
			DisplayName: docstore.String(data, "displayName", "name"),
			Email:       docstore.String(data, "email"),
			Role:        docstore.String(data, "role"),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing legacy members: %w", err)
	}

	return out, nil
}

// SaveWorkspace writes the workspace and its members in one batch,
// overwriting documents left by an earlier run.
func (s *Store) SaveWorkspace(ctx context.Context, ws *workspace.Workspace, members []*workspace.Member) error {
	batch := s.client.Batch()
	batch.Set(s.client.Collection(docstore.Workspaces).Doc(ws.ID), ws)

	for _, m := range members {
		batch.Set(s.client.Collection(docstore.WorkspaceMembers).Doc(m.ID), m)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("saving migrated workspace: %w", err)
	}

	return nil
}

// CopyCollection copies legacy top-level documents tagged with weddingID into
// the workspace subcollection of the same name, keeping document ids.
func (s *Store) CopyCollection(ctx context.Context, weddingID, workspaceID, collection string) (int, error) {
	target := docstore.Sub(s.client, workspaceID, collection)
	q := s.client.Collection(collection).Where("weddingId", "==", weddingID)

	batch := s.client.Batch()
	pending, copied := 0, 0

	flush := func() error {
		if pending == 0 {
			return nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing copy batch: %w", err)
		}

		copied += pending
		pending = 0
		batch = s.client.Batch()

		return nil
	}

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		data := maps.Clone(doc.Data())
		data["workspaceId"] = workspaceID

		batch.Set(target.Doc(doc.Ref.ID), data)
		pending++

		if pending == docstore.BatchLimit {
			return flush()
		}

		return nil
	})
	if err != nil {
		return copied, fmt.Errorf("copying %s: %w", collection, err)
	}

	if err := flush(); err != nil {
		return copied, err
	}

	return copied, nil
}

// FlattenContributorGifts writes each gift embedded in the workspace's
// contributor documents to gifts/{id}, keeping the id allocations reference,
// and strips the embedded fields. It returns the number of gifts written.
func (s *Store) FlattenContributorGifts(ctx context.Context, workspaceID string) (int, error) {
	gifts := docstore.Sub(s.client, workspaceID, docstore.Gifts)
	q := docstore.Sub(s.client, workspaceID, docstore.Contributors).Query

	batch := s.client.Batch()
	writes, pending, flattened := 0, 0, 0

	flush := func() error {
		if writes == 0 {
			return nil
		}

		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("committing gift batch: %w", err)
		}

		flattened += pending
		writes, pending = 0, 0
		batch = s.client.Batch()

		return nil
	}

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		embedded := docstore.EmbeddedGifts(doc.Data())
		if len(embedded) == 0 {
			return nil
		}

		if writes+len(embedded)+1 > docstore.BatchLimit {
			if err := flush(); err != nil {
				return err
			}
		}

		for _, e := range embedded {
			batch.Set(gifts.Doc(e.ID), e.Document(workspaceID, doc.Ref.ID, ""))
		}

		batch.Update(doc.Ref, []firestore.Update{
			{Path: docstore.EmbeddedGiftsField, Value: firestore.Delete},
			{Path: docstore.TotalGiftAmountField, Value: firestore.Delete},
		})

		writes += len(embedded) + 1
		pending += len(embedded)

		return nil
	})
	if err != nil {
		return flattened, fmt.Errorf("flattening contributor gifts: %w", err)
	}

	if err := flush(); err != nil {
		return flattened, err
	}

	return flattened, nil
}

var _ migration.Repository = (*Store)(nil)
