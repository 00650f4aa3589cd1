package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/invitation"
	"github.com/weddingledger/planner/internal/notification"
	notificationstore "github.com/weddingledger/planner/internal/notification/store"
	"github.com/weddingledger/planner/internal/workspace"
	workspacestore "github.com/weddingledger/planner/internal/workspace/store"
)

type Store struct {
	client     *firestore.Client
	workspaces *workspacestore.Store
}

func New(client *firestore.Client) *Store {
	return &Store{client: client, workspaces: workspacestore.New(client)}
}

func (s *Store) col() *firestore.CollectionRef {
	return s.client.Collection(docstore.Invitations)
}

func (s *Store) members() *firestore.CollectionRef {
	return s.client.Collection(docstore.WorkspaceMembers)
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx invitation.Tx) error) error {
	return s.client.RunTransaction(ctx, func(_ context.Context, t *firestore.Transaction) error {
		return fn(&txn{store: s, tx: t})
	})
}

func (s *Store) GetByToken(ctx context.Context, token string) (*invitation.Invitation, error) {
	docs, err := s.col().Where("token", "==", token).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("querying invitation by token: %w", err)
	}

	if len(docs) == 0 {
		return nil, invitation.ErrNotFound
	}

	return decode(docs[0])
}

func (s *Store) GetMember(ctx context.Context, workspaceID, userID string) (*workspace.Member, error) {
	return s.workspaces.GetMember(ctx, workspaceID, userID)
}

func (s *Store) ListForWorkspace(ctx context.Context, workspaceID string) ([]*invitation.Invitation, error) {
	return s.list(ctx, s.col().Where("workspaceId", "==", workspaceID).OrderBy("createdAt", firestore.Desc))
}

func (s *Store) ListPendingForEmail(ctx context.Context, email string) ([]*invitation.Invitation, error) {
	return s.list(ctx, s.col().
		Where("email", "==", email).
		Where("status", "==", string(invitation.StatusPending)))
}

func (s *Store) list(ctx context.Context, q firestore.Query) ([]*invitation.Invitation, error) {
	var out []*invitation.Invitation

	err := docstore.Each(ctx, q, func(doc *firestore.DocumentSnapshot) error {
		inv, err := decode(doc)
		if err != nil {
			return err
		}

		out = append(out, inv)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing invitations: %w", err)
	}

	return out, nil
}

type txn struct {
	store *Store
	tx    *firestore.Transaction
}

func (t *txn) Get(id string) (*invitation.Invitation, error) {
	doc, err := t.tx.Get(t.store.col().Doc(id))
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, invitation.ErrNotFound
		}

		return nil, fmt.Errorf("getting invitation: %w", err)
	}

	return decode(doc)
}

func (t *txn) FindByToken(token string) (*invitation.Invitation, error) {
	inv, err := t.first(t.store.col().Where("token", "==", token))
	if err != nil {
		return nil, err
	}

	if inv == nil {
		return nil, invitation.ErrNotFound
	}

	return inv, nil
}

// FindPending returns nil without error when no pending invitation exists.
func (t *txn) FindPending(workspaceID, email string) (*invitation.Invitation, error) {
	return t.first(t.store.col().
		Where("workspaceId", "==", workspaceID).
		Where("email", "==", email).
		Where("status", "==", string(invitation.StatusPending)))
}

func (t *txn) first(q firestore.Query) (*invitation.Invitation, error) {
	docs, err := t.tx.Documents(q.Limit(1)).GetAll()
	if err != nil {
		return nil, fmt.Errorf("querying invitations: %w", err)
	}

	if len(docs) == 0 {
		return nil, nil
	}

	return decode(docs[0])
}

func (t *txn) Workspace(id string) (*workspace.Workspace, error) {
	doc, err := t.tx.Get(t.store.client.Collection(docstore.Workspaces).Doc(id))
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, workspace.ErrNotFound
		}

		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	return workspacestore.DecodeWorkspace(doc.Ref.ID, doc.Data()), nil
}

func (t *txn) Member(workspaceID, userID string) (*workspace.Member, error) {
	doc, err := t.tx.Get(t.store.members().Doc(workspace.MemberID(workspaceID, userID)))
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, workspace.ErrMemberNotFound
		}

		return nil, fmt.Errorf("getting member: %w", err)
	}

	return workspacestore.DecodeMember(doc.Ref.ID, doc.Data()), nil
}

// MemberByEmail returns nil without error when nobody with email belongs to
// the workspace.
func (t *txn) MemberByEmail(workspaceID, email string) (*workspace.Member, error) {
	q := t.store.members().
		Where("workspaceId", "==", workspaceID).
		Where("email", "==", email).
		Limit(1)

	docs, err := t.tx.Documents(q).GetAll()
	if err != nil {
		return nil, fmt.Errorf("querying members by email: %w", err)
	}

	if len(docs) == 0 {
		return nil, nil
	}

	return workspacestore.DecodeMember(docs[0].Ref.ID, docs[0].Data()), nil
}

func (t *txn) Save(inv *invitation.Invitation) error {
	var ref *firestore.DocumentRef
	if inv.ID == "" {
		ref = t.store.col().NewDoc()
		inv.ID = ref.ID
	} else {
		ref = t.store.col().Doc(inv.ID)
	}

	return t.tx.Set(ref, inv)
}

func (t *txn) SetMember(member *workspace.Member) error {
	member.ID = workspace.MemberID(member.WorkspaceID, member.UserID)
	return t.tx.Set(t.store.members().Doc(member.ID), member)
}

func (t *txn) AdjustMembersCount(workspaceID string, delta int) error {
	return t.tx.Update(t.store.client.Collection(docstore.Workspaces).Doc(workspaceID), []firestore.Update{
		{Path: "membersCount", Value: firestore.Increment(delta)},
	})
}

func (t *txn) Notify(n *notification.Notification) error {
	return notificationstore.Add(t.tx, t.store.client, n)
}

func decode(doc *firestore.DocumentSnapshot) (*invitation.Invitation, error) {
	var inv invitation.Invitation
	if err := doc.DataTo(&inv); err != nil {
		return nil, fmt.Errorf("decoding invitation %s: %w", doc.Ref.ID, err)
	}

	inv.ID = doc.Ref.ID

	return &inv, nil
}

var _ invitation.Repository = (*Store)(nil)
