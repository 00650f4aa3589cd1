// Package docstore holds the collection layout and the small helpers every
// Firestore-backed store shares.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Top-level collections.
const (
	Workspaces       = "workspaces"
	WorkspaceMembers = "workspaceMembers"
	Invitations      = "invitations"
	Notifications    = "notifications"
	UserMigrations   = "userMigrations"
	UserPreferences  = "userPreferences"
	Cleanups         = "workspaceCleanups"

	LegacyWeddings       = "weddings"
	LegacyWorkspaceUsers = "workspaceUsers"
)

// Collections nested under workspaces/{id}.
const (
	Expenses         = "expenses"
	Contributors     = "contributors"
	Gifts            = "gifts"
	GiftAllocations  = "giftAllocations"
	CustomCategories = "customCategories"
	Settings         = "settings"
)

// Dependent lists every collection nested under a workspace, including the
// legacy-only ones that migration copies over.
var Dependent = []string{
	Expenses,
	Contributors,
	Gifts,
	GiftAllocations,
	CustomCategories,
	Settings,
	"payments",
	"vendors",
	"tasks",
	"guests",
}

// BatchLimit is the maximum number of writes Firestore accepts in one batch.
const BatchLimit = 500

// Sub returns the collection named name under workspaces/{workspaceID}.
func Sub(client *firestore.Client, workspaceID, name string) *firestore.CollectionRef {
	return client.Collection(Workspaces).Doc(workspaceID).Collection(name)
}

func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// DeleteQuery deletes every document matched by q, committing at most size
// deletes per batch. It returns the number of deleted documents.
func DeleteQuery(ctx context.Context, client *firestore.Client, q firestore.Query, size int) (int, error) {
	if size <= 0 || size > BatchLimit {
		size = BatchLimit
	}

	total := 0

	for {
		docs, err := q.Limit(size).Documents(ctx).GetAll()
		if err != nil {
			return total, fmt.Errorf("listing documents: %w", err)
		}

		if len(docs) == 0 {
			return total, nil
		}

		batch := client.Batch()
		for _, doc := range docs {
			batch.Delete(doc.Ref)
		}

		if _, err := batch.Commit(ctx); err != nil {
			return total, fmt.Errorf("committing delete batch: %w", err)
		}

		total += len(docs)

		if len(docs) < size {
			return total, nil
		}
	}
}

// Each calls fn for every document of q until the iterator is exhausted.
func Each(ctx context.Context, q firestore.Query, fn func(*firestore.DocumentSnapshot) error) error {
	it := q.Documents(ctx)
	defer it.Stop()

	for {
		doc, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := fn(doc); err != nil {
			return err
		}
	}
}
