package store

import (
	"context"
	"fmt"
	"slices"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/gift"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) gifts(workspaceID string) *firestore.CollectionRef {
	return docstore.Sub(s.client, workspaceID, docstore.Gifts)
}

func (s *Store) allocations(workspaceID string) *firestore.CollectionRef {
	return docstore.Sub(s.client, workspaceID, docstore.GiftAllocations)
}

func (s *Store) contributors(workspaceID string) *firestore.CollectionRef {
	return docstore.Sub(s.client, workspaceID, docstore.Contributors)
}

// CreateWithAllocations writes the gift and all of its allocations in one
// batch.
func (s *Store) CreateWithAllocations(ctx context.Context, g *gift.Gift, allocs []*gift.Allocation) error {
	if len(allocs)+1 > docstore.BatchLimit {
		return fmt.Errorf("%w: too many allocations", gift.ErrInvalidAllocation)
	}

	batch := s.client.Batch()

	ref := s.gifts(g.WorkspaceID).NewDoc()
	g.ID = ref.ID
	batch.Create(ref, g)

	for _, a := range allocs {
		aref := s.allocations(g.WorkspaceID).NewDoc()
		a.ID = aref.ID
		a.GiftID = g.ID
		batch.Create(aref, a)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("committing gift batch: %w", err)
	}

	return nil
}

// Get falls back to the gifts embedded in contributor documents when no
// gifts document has the id.
func (s *Store) Get(ctx context.Context, workspaceID, id string) (*gift.Gift, error) {
	doc, err := s.gifts(workspaceID).Doc(id).Get(ctx)
	if err == nil {
		return decodeGift(workspaceID, doc), nil
	}

	if !docstore.IsNotFound(err) {
		return nil, fmt.Errorf("getting gift: %w", err)
	}

	embedded, err := s.embedded(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	for _, g := range embedded {
		if g.ID == id {
			return g, nil
		}
	}

	return nil, gift.ErrNotFound
}

func (s *Store) List(ctx context.Context, workspaceID string) ([]*gift.Gift, error) {
	var out []*gift.Gift

	err := docstore.Each(ctx, s.gifts(workspaceID).OrderBy("date", firestore.Desc), func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decodeGift(workspaceID, doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing gifts: %w", err)
	}

	embedded, err := s.embedded(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	return Merge(out, embedded), nil
}

func (s *Store) embedded(ctx context.Context, workspaceID string) ([]*gift.Gift, error) {
	var out []*gift.Gift

	err := docstore.Each(ctx, s.contributors(workspaceID).Query, func(doc *firestore.DocumentSnapshot) error {
		out = append(out, FromContributor(workspaceID, doc.Ref.ID, doc.Data())...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing contributor gifts: %w", err)
	}

	return out, nil
}

// FromContributor returns the gifts kept inside a contributor document.
func FromContributor(workspaceID, contributorID string, data map[string]any) []*gift.Gift {
	embedded := docstore.EmbeddedGifts(data)

	out := make([]*gift.Gift, 0, len(embedded))
	for _, e := range embedded {
		out = append(out, &gift.Gift{
			ID:            e.ID,
			WorkspaceID:   workspaceID,
			ContributorID: contributorID,
			Amount:        e.Amount,
			Date:          e.Date,
			Notes:         e.Notes,
			CreatedAt:     e.CreatedAt,
			UpdatedAt:     e.CreatedAt,
		})
	}

	return out
}

// Merge adds the embedded gifts that have no gifts document of their own and
// orders the result newest first.
func Merge(stored, embedded []*gift.Gift) []*gift.Gift {
	seen := make(map[string]bool, len(stored))
	for _, g := range stored {
		seen[g.ID] = true
	}

	out := slices.Clone(stored)

	for _, g := range embedded {
		if !seen[g.ID] {
			seen[g.ID] = true
			out = append(out, g)
		}
	}

	slices.SortStableFunc(out, func(a, b *gift.Gift) int {
		return b.Date.Compare(a.Date)
	})

	return out
}

// materialize moves an embedded gift into the gifts collection, keeping its
// id so existing allocations still resolve. It is a no-op when the gifts
// document already exists.
func (s *Store) materialize(ctx context.Context, workspaceID, id string) error {
	ref := s.gifts(workspaceID).Doc(id)

	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err == nil {
			return nil
		} else if !docstore.IsNotFound(err) {
			return fmt.Errorf("getting gift: %w", err)
		}

		docs, err := tx.Documents(s.contributors(workspaceID)).GetAll()
		if err != nil {
			return fmt.Errorf("listing contributors: %w", err)
		}

		for _, c := range docs {
			data := c.Data()

			e, rest, ok := docstore.RemoveEmbeddedGift(data, id)
			if !ok {
				continue
			}

			if err := tx.Create(ref, e.Document(workspaceID, c.Ref.ID, "")); err != nil {
				return err
			}

			updates := []firestore.Update{{Path: docstore.EmbeddedGiftsField, Value: rest}}
			if _, ok := data[docstore.TotalGiftAmountField]; ok {
				updates = append(updates, firestore.Update{
					Path:  docstore.TotalGiftAmountField,
					Value: docstore.Int64(data, docstore.TotalGiftAmountField) - e.Amount,
				})
			}

			return tx.Update(c.Ref, updates)
		}

		return gift.ErrNotFound
	})
}

func (s *Store) ListAllocations(ctx context.Context, workspaceID string) ([]*gift.Allocation, error) {
	return s.listAllocations(ctx, workspaceID, s.allocations(workspaceID).Query)
}

func (s *Store) ListAllocationsForGift(ctx context.Context, workspaceID, giftID string) ([]*gift.Allocation, error) {
	return s.listAllocations(ctx, workspaceID, s.allocations(workspaceID).Where("giftId", "==", giftID))
}

func (s *Store) listAllocations(ctx context.Context, workspaceID string, q firestore.Query) ([]*gift.Allocation, error) {
	var out []*gift.Allocation

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decodeAllocation(workspaceID, doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}

	return out, nil
}

func (s *Store) Update(ctx context.Context, g *gift.Gift) error {
	if err := s.materialize(ctx, g.WorkspaceID, g.ID); err != nil {
		return err
	}

	_, err := s.gifts(g.WorkspaceID).Doc(g.ID).Update(ctx, []firestore.Update{
		{Path: "fromName", Value: g.FromName},
		{Path: "amount", Value: g.Amount},
		{Path: "date", Value: g.Date},
		{Path: "notes", Value: g.Notes},
		{Path: "updatedAt", Value: g.UpdatedAt},
	})
	if err != nil {
		if docstore.IsNotFound(err) {
			return gift.ErrNotFound
		}

		return fmt.Errorf("updating gift: %w", err)
	}

	return nil
}

func (s *Store) ReplaceAllocations(ctx context.Context, workspaceID, giftID string, allocs []*gift.Allocation) error {
	if err := s.materialize(ctx, workspaceID, giftID); err != nil {
		return err
	}

	existing := s.allocations(workspaceID).Where("giftId", "==", giftID)

	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(existing).GetAll()
		if err != nil {
			return fmt.Errorf("listing allocations: %w", err)
		}

		for _, d := range docs {
			if err := tx.Delete(d.Ref); err != nil {
				return err
			}
		}

		for _, a := range allocs {
			ref := s.allocations(workspaceID).NewDoc()
			a.ID = ref.ID
			a.GiftID = giftID

			if err := tx.Create(ref, a); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *Store) Delete(ctx context.Context, workspaceID, id string) error {
	if err := s.materialize(ctx, workspaceID, id); err != nil {
		return err
	}

	ref := s.gifts(workspaceID).Doc(id)
	allocs := s.allocations(workspaceID).Where("giftId", "==", id)

	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if docstore.IsNotFound(err) {
				return gift.ErrNotFound
			}

			return err
		}

		docs, err := tx.Documents(allocs).GetAll()
		if err != nil {
			return fmt.Errorf("listing allocations: %w", err)
		}

		for _, d := range docs {
			if err := tx.Delete(d.Ref); err != nil {
				return err
			}
		}

		return tx.Delete(ref)
	})
}

// decodeGift also reads the legacy `fromPerson` free-text shape. Gifts still
// embedded in contributor documents are read by FromContributor.
func decodeGift(workspaceID string, doc *firestore.DocumentSnapshot) *gift.Gift {
	data := doc.Data()

	g := &gift.Gift{
		ID:            doc.Ref.ID,
		WorkspaceID:   workspaceID,
		ContributorID: docstore.String(data, "contributorId"),
		FromName:      docstore.String(data, "fromName", "fromPerson"),
		Amount:        docstore.Int64(data, "amount"),
		Notes:         docstore.String(data, "notes"),
	}

	g.Date, _ = docstore.Time(data["date"])
	g.CreatedAt, _ = docstore.Time(data["createdAt"])
	g.UpdatedAt, _ = docstore.Time(data["updatedAt"])

	return g
}

func decodeAllocation(workspaceID string, doc *firestore.DocumentSnapshot) *gift.Allocation {
	data := doc.Data()

	a := &gift.Allocation{
		ID:          doc.Ref.ID,
		WorkspaceID: workspaceID,
		GiftID:      docstore.String(data, "giftId"),
		ExpenseID:   docstore.String(data, "expenseId"),
		Amount:      docstore.Int64(data, "amount"),
	}

	a.CreatedAt, _ = docstore.Time(data["createdAt"])

	return a
}

var _ gift.Repository = (*Store)(nil)
