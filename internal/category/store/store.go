package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/category"
	"github.com/weddingledger/planner/internal/docstore"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) col(workspaceID string) *firestore.CollectionRef {
	return docstore.Sub(s.client, workspaceID, docstore.CustomCategories)
}

func (s *Store) Create(ctx context.Context, c *category.Category) error {
	ref := s.col(c.WorkspaceID).NewDoc()
	c.ID = ref.ID

	if _, err := ref.Create(ctx, c); err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context, workspaceID string) ([]*category.Category, error) {
	var out []*category.Category

	err := docstore.Each(ctx, s.col(workspaceID).OrderBy("name", firestore.Asc), func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decode(workspaceID, doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	return out, nil
}

func (s *Store) Get(ctx context.Context, workspaceID, id string) (*category.Category, error) {
	doc, err := s.col(workspaceID).Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return decode(workspaceID, doc), nil
}

func (s *Store) Update(ctx context.Context, c *category.Category) error {
	_, err := s.col(c.WorkspaceID).Doc(c.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: c.Name},
		{Path: "color", Value: c.Color},
	})
	if err != nil {
		if docstore.IsNotFound(err) {
			return category.ErrNotFound
		}

		return fmt.Errorf("updating category: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, workspaceID, id string) error {
	if _, err := s.col(workspaceID).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	return nil
}

func decode(workspaceID string, doc *firestore.DocumentSnapshot) *category.Category {
	data := doc.Data()

	c := &category.Category{
		ID:          doc.Ref.ID,
		WorkspaceID: workspaceID,
		Name:        docstore.String(data, "name", "label"),
		Color:       docstore.String(data, "color"),
	}
	c.CreatedAt, _ = docstore.Time(data["createdAt"])

	return c
}

var _ category.Repository = (*Store)(nil)
