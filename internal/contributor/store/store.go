package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/docstore"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) col(workspaceID string) *firestore.CollectionRef {
	return docstore.Sub(s.client, workspaceID, docstore.Contributors)
}

func (s *Store) Create(ctx context.Context, c *contributor.Contributor) error {
	ref := s.col(c.WorkspaceID).NewDoc()
	c.ID = ref.ID

	if _, err := ref.Create(ctx, c); err != nil {
		return fmt.Errorf("creating contributor: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, workspaceID, id string) (*contributor.Contributor, error) {
	doc, err := s.col(workspaceID).Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, contributor.ErrNotFound
		}

		return nil, fmt.Errorf("getting contributor: %w", err)
	}

	return decode(workspaceID, doc), nil
}

func (s *Store) List(ctx context.Context, workspaceID string) ([]*contributor.Contributor, error) {
	var out []*contributor.Contributor

	err := docstore.Each(ctx, s.col(workspaceID).OrderBy("name", firestore.Asc), func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decode(workspaceID, doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing contributors: %w", err)
	}

	return out, nil
}

func (s *Store) Update(ctx context.Context, c *contributor.Contributor) error {
	_, err := s.col(c.WorkspaceID).Doc(c.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: c.Name},
		{Path: "notes", Value: c.Notes},
		{Path: "updatedAt", Value: c.UpdatedAt},
	})
	if err != nil {
		if docstore.IsNotFound(err) {
			return contributor.ErrNotFound
		}

		return fmt.Errorf("updating contributor: %w", err)
	}

	return nil
}

// Delete removes the contributor and detaches their gifts in one
// transaction, keeping the name on each gift. Gifts embedded in the
// contributor document are written out as detached gifts documents.
func (s *Store) Delete(ctx context.Context, workspaceID, id string) error {
	ref := s.col(workspaceID).Doc(id)
	giftsCol := docstore.Sub(s.client, workspaceID, docstore.Gifts)
	gifts := giftsCol.Where("contributorId", "==", id)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if docstore.IsNotFound(err) {
				return contributor.ErrNotFound
			}

			return err
		}

		name := docstore.String(doc.Data(), "name")
		embedded := docstore.EmbeddedGifts(doc.Data())

		docs, err := tx.Documents(gifts).GetAll()
		if err != nil {
			return fmt.Errorf("listing gifts: %w", err)
		}

		now := time.Now().UTC()
		stored := make(map[string]bool, len(docs))

		for _, g := range docs {
			stored[g.Ref.ID] = true

			err := tx.Update(g.Ref, []firestore.Update{
				{Path: "contributorId", Value: ""},
				{Path: "fromName", Value: name},
				{Path: "updatedAt", Value: now},
			})
			if err != nil {
				return err
			}
		}

		for _, e := range embedded {
			if stored[e.ID] {
				continue
			}

			if err := tx.Set(giftsCol.Doc(e.ID), e.Document(workspaceID, "", name)); err != nil {
				return err
			}
		}

		return tx.Delete(ref)
	})
	if err != nil {
		return fmt.Errorf("deleting contributor: %w", err)
	}

	return nil
}

func decode(workspaceID string, doc *firestore.DocumentSnapshot) *contributor.Contributor {
	data := doc.Data()

	c := &contributor.Contributor{
		ID:          doc.Ref.ID,
		WorkspaceID: workspaceID,
		Name:        docstore.String(data, "name"),
		Notes:       docstore.String(data, "notes"),
	}

	c.CreatedAt, _ = docstore.Time(data["createdAt"])
	c.UpdatedAt, _ = docstore.Time(data["updatedAt"])

	return c
}

var _ contributor.Repository = (*Store)(nil)
