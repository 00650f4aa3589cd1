package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/cleanup"
	cleanupstore "github.com/weddingledger/planner/internal/cleanup/store"
	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/notification"
	notificationstore "github.com/weddingledger/planner/internal/notification/store"
	"github.com/weddingledger/planner/internal/workspace"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) workspaces() *firestore.CollectionRef {
	return s.client.Collection(docstore.Workspaces)
}

func (s *Store) members() *firestore.CollectionRef {
	return s.client.Collection(docstore.WorkspaceMembers)
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx workspace.Tx) error) error {
	return s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		return fn(&txn{store: s, tx: t})
	})
}

func (s *Store) Get(ctx context.Context, id string) (*workspace.Workspace, error) {
	doc, err := s.workspaces().Doc(id).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, workspace.ErrNotFound
		}

		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	return decodeWorkspace(doc), nil
}

func (s *Store) GetMember(ctx context.Context, workspaceID, userID string) (*workspace.Member, error) {
	doc, err := s.members().Doc(workspace.MemberID(workspaceID, userID)).Get(ctx)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, workspace.ErrMemberNotFound
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return decodeMember(doc), nil
}

func (s *Store) ListOwned(ctx context.Context, userID string) ([]*workspace.Workspace, error) {
	var out []*workspace.Workspace

	err := docstore.Each(ctx, s.workspaces().Where("ownerId", "==", userID), func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decodeWorkspace(doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing owned workspaces: %w", err)
	}

	return out, nil
}

func (s *Store) ListMemberships(ctx context.Context, userID string) ([]*workspace.Member, error) {
	return s.listMembers(ctx, s.members().Where("userId", "==", userID))
}

func (s *Store) ListMembers(ctx context.Context, workspaceID string) ([]*workspace.Member, error) {
	return s.listMembers(ctx, s.members().Where("workspaceId", "==", workspaceID))
}

func (s *Store) listMembers(ctx context.Context, q firestore.Query) ([]*workspace.Member, error) {
	var out []*workspace.Member

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		out = append(out, decodeMember(doc))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	return out, nil
}

// Watch listens to the user's owned workspaces and memberships and calls
// changed for every snapshot of either. It returns when ctx is done or one of
// the listeners fails.
func (s *Store) Watch(ctx context.Context, userID string, changed func()) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queries := []firestore.Query{
		s.workspaces().Where("ownerId", "==", userID),
		s.members().Where("userId", "==", userID),
	}

	errs := make(chan error, len(queries))

	for _, q := range queries {
		go func() {
			it := q.Snapshots(ctx)
			defer it.Stop()

			for {
				if _, err := it.Next(); err != nil {
					errs <- err
					return
				}

				changed()
			}
		}()
	}

	err := <-errs
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return fmt.Errorf("workspace listener: %w", err)
}

type txn struct {
	store *Store
	tx    *firestore.Transaction
}

func (t *txn) Get(id string) (*workspace.Workspace, error) {
	doc, err := t.tx.Get(t.store.workspaces().Doc(id))
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, workspace.ErrNotFound
		}

		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	return decodeWorkspace(doc), nil
}

func (t *txn) GetMember(workspaceID, userID string) (*workspace.Member, error) {
	doc, err := t.tx.Get(t.store.members().Doc(workspace.MemberID(workspaceID, userID)))
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, workspace.ErrMemberNotFound
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return decodeMember(doc), nil
}

func (t *txn) ListMembers(workspaceID string) ([]*workspace.Member, error) {
	docs, err := t.tx.Documents(t.store.members().Where("workspaceId", "==", workspaceID)).GetAll()
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	out := make([]*workspace.Member, 0, len(docs))
	for _, doc := range docs {
		out = append(out, decodeMember(doc))
	}

	return out, nil
}

func (t *txn) Create(w *workspace.Workspace) error {
	ref := t.store.workspaces().NewDoc()
	w.ID = ref.ID

	return t.tx.Create(ref, w)
}

func (t *txn) Update(id string, d workspace.Details, at time.Time) error {
	return t.tx.Update(t.store.workspaces().Doc(id), []firestore.Update{
		{Path: "name", Value: d.Name},
		{Path: "coupleNames", Value: d.CoupleNames},
		{Path: "weddingDate", Value: d.WeddingDate},
		{Path: "location", Value: d.Location},
		{Path: "updatedAt", Value: at},
	})
}

func (t *txn) Delete(id string) error {
	return t.tx.Delete(t.store.workspaces().Doc(id))
}

func (t *txn) SetMember(member *workspace.Member) error {
	member.ID = workspace.MemberID(member.WorkspaceID, member.UserID)
	return t.tx.Set(t.store.members().Doc(member.ID), member)
}

func (t *txn) DeleteMember(workspaceID, userID string) error {
	return t.tx.Delete(t.store.members().Doc(workspace.MemberID(workspaceID, userID)))
}

func (t *txn) AdjustMembersCount(workspaceID string, delta int) error {
	return t.tx.Update(t.store.workspaces().Doc(workspaceID), []firestore.Update{
		{Path: "membersCount", Value: firestore.Increment(delta)},
	})
}

func (t *txn) EnqueueCleanup(jobs []*cleanup.Job) error {
	return cleanupstore.Enqueue(t.tx, t.store.client, jobs)
}

func (t *txn) Notify(n *notification.Notification) error {
	return notificationstore.Add(t.tx, t.store.client, n)
}

func decodeWorkspace(doc *firestore.DocumentSnapshot) *workspace.Workspace {
	return DecodeWorkspace(doc.Ref.ID, doc.Data())
}

func decodeMember(doc *firestore.DocumentSnapshot) *workspace.Member {
	return DecodeMember(doc.Ref.ID, doc.Data())
}

// DecodeWorkspace reads the fields of a workspace document. Migrated
// documents may carry timestamps as strings or serialized maps, so fields are
// read leniently.
func DecodeWorkspace(id string, data map[string]any) *workspace.Workspace {
	w := &workspace.Workspace{
		ID:                id,
		Name:              docstore.String(data, "name", "coupleNames"),
		CoupleNames:       docstore.String(data, "coupleNames"),
		OwnerID:           docstore.String(data, "ownerId", "userId"),
		OwnerName:         docstore.String(data, "ownerName"),
		OwnerEmail:        docstore.String(data, "ownerEmail"),
		WeddingDate:       docstore.TimePtr(data["weddingDate"]),
		Location:          docstore.String(data, "location"),
		MembersCount:      int(docstore.Int64(data, "membersCount")),
		OriginalWeddingID: docstore.String(data, "originalWeddingId"),
	}

	w.CreatedAt, _ = docstore.Time(data["createdAt"])
	w.UpdatedAt, _ = docstore.Time(data["updatedAt"])

	return w
}

// DecodeMember is DecodeWorkspace for workspaceMembers documents.
func DecodeMember(id string, data map[string]any) *workspace.Member {
	m := &workspace.Member{
		ID:          id,
		WorkspaceID: docstore.String(data, "workspaceId"),
		UserID:      docstore.String(data, "userId"),
		DisplayName: docstore.String(data, "displayName", "name"),
		Email:       docstore.String(data, "email"),
		Role:        workspace.Role(docstore.String(data, "role")),
	}

	m.JoinedAt, _ = docstore.Time(data["joinedAt"])

	return m
}

var _ workspace.Repository = (*Store)(nil)
