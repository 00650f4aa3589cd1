package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/expense"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) col(workspaceID string) *firestore.CollectionRef {
	return docstore.Sub(s.client, workspaceID, docstore.Expenses)
}

func (s *Store) Create(ctx context.Context, e *expense.Expense) error {
	ref := s.col(e.WorkspaceID).NewDoc()
	e.ID = ref.ID

	if _, err := ref.Create(ctx, e); err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, workspaceID, id string) (*expense.Expense, error) {
	doc, err := s.col(workspaceID).Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return decode(workspaceID, doc), nil
}

func (s *Store) List(ctx context.Context, workspaceID string, filter expense.ListFilter) ([]*expense.Expense, error) {
	q := s.col(workspaceID).Query

	if filter.Category != nil {
		q = q.Where("category", "==", *filter.Category)
	}

	if filter.DueFrom != nil {
		q = q.Where("dueDate", ">=", *filter.DueFrom)
	}

	if filter.DueTo != nil {
		q = q.Where("dueDate", "<=", *filter.DueTo)
	}

	var out []*expense.Expense

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decode(workspaceID, doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return out, nil
}

// Update applies fn to the current expense inside a transaction and writes
// the result back.
func (s *Store) Update(ctx context.Context, workspaceID, id string, fn func(e *expense.Expense) error) (*expense.Expense, error) {
	ref := s.col(workspaceID).Doc(id)

	var updated *expense.Expense

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if docstore.IsNotFound(err) {
				return expense.ErrNotFound
			}

			return err
		}

		e := decode(workspaceID, doc)
		if err := fn(e); err != nil {
			return err
		}

		e.UpdatedAt = time.Now().UTC()
		updated = e

		return tx.Set(ref, e)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Store) Delete(ctx context.Context, workspaceID, id string) error {
	ref := s.col(workspaceID).Doc(id)
	allocations := docstore.Sub(s.client, workspaceID, docstore.GiftAllocations).Where("expenseId", "==", id)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if docstore.IsNotFound(err) {
				return expense.ErrNotFound
			}

			return err
		}

		docs, err := tx.Documents(allocations).GetAll()
		if err != nil {
			return fmt.Errorf("listing gift allocations: %w", err)
		}

		for _, d := range docs {
			if err := tx.Delete(d.Ref); err != nil {
				return err
			}
		}

		return tx.Delete(ref)
	})
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

// decode reads an expense leniently: migrated documents may carry numbers as
// floats and timestamps as strings.
func decode(workspaceID string, doc *firestore.DocumentSnapshot) *expense.Expense {
	data := doc.Data()

	e := &expense.Expense{
		ID:          doc.Ref.ID,
		WorkspaceID: workspaceID,
		Title:       docstore.String(data, "title", "name"),
		Category:    docstore.String(data, "category"),
		TotalAmount: docstore.Int64(data, "totalAmount"),
		DueDate:     docstore.TimePtr(data["dueDate"]),
		Provider:    docstore.String(data, "provider"),
		Notes:       docstore.String(data, "notes"),
	}

	e.CreatedAt, _ = docstore.Time(data["createdAt"])
	e.UpdatedAt, _ = docstore.Time(data["updatedAt"])

	raw, _ := data["paymentAllocations"].([]any)
	e.PaymentAllocations = make([]expense.PaymentAllocation, 0, len(raw))

	for _, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			continue
		}

		p := expense.PaymentAllocation{
			ID:            docstore.String(m, "id"),
			ContributorID: docstore.String(m, "contributorId"),
			Amount:        docstore.Int64(m, "amount"),
			Notes:         docstore.String(m, "notes"),
			GiftID:        docstore.String(m, "giftId"),
			AllocationID:  docstore.String(m, "allocationId"),
		}
		p.Date, _ = docstore.Time(m["date"])

		// Gift-derived entries written by older clients are rebuilt from
		// allocations on read.
		if p.GiftID != "" {
			continue
		}

		e.PaymentAllocations = append(e.PaymentAllocations, p)
	}

	return e
}

var _ expense.Repository = (*Store)(nil)
