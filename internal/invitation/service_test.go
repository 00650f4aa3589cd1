package invitation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/invitation"
	"github.com/weddingledger/planner/internal/mail"
	"github.com/weddingledger/planner/internal/notification"
	"github.com/weddingledger/planner/internal/workspace"
)

var (
	owner = auth.Identity{UserID: "owner", Email: "ana@example.com", DisplayName: "Ana"}
	bob   = auth.Identity{UserID: "bob", Email: "bob@example.com", DisplayName: "Bob"}
)

// memStore is an in-memory Repository whose transactions run serially.
type memStore struct {
	mu         sync.Mutex
	invs       map[string]*invitation.Invitation
	workspaces map[string]*workspace.Workspace
	members    map[string]*workspace.Member
	notes      []*notification.Notification
	seq        int
}

func newMemStore() *memStore {
	m := &memStore{
		invs:       map[string]*invitation.Invitation{},
		workspaces: map[string]*workspace.Workspace{"ws1": {ID: "ws1", Name: "Ana & Rui", MembersCount: 1}},
		members:    map[string]*workspace.Member{},
	}

	m.members[workspace.MemberID("ws1", "owner")] = &workspace.Member{
		WorkspaceID: "ws1", UserID: "owner", Email: "ana@example.com", Role: workspace.RoleOwner,
	}

	return m
}

func (m *memStore) WithinTx(_ context.Context, fn func(tx invitation.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(memTx{m})
}

func (m *memStore) GetByToken(_ context.Context, token string) (*invitation.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return memTx{m}.FindByToken(token)
}

func (m *memStore) GetMember(_ context.Context, workspaceID, userID string) (*workspace.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return memTx{m}.Member(workspaceID, userID)
}

func (m *memStore) ListForWorkspace(_ context.Context, workspaceID string) ([]*invitation.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*invitation.Invitation

	for _, inv := range m.invs {
		if inv.WorkspaceID == workspaceID {
			out = append(out, clone(inv))
		}
	}

	return out, nil
}

func (m *memStore) ListPendingForEmail(_ context.Context, email string) ([]*invitation.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*invitation.Invitation

	for _, inv := range m.invs {
		if inv.Email == email && inv.Status == invitation.StatusPending {
			out = append(out, clone(inv))
		}
	}

	return out, nil
}

func (m *memStore) membersOf(workspaceID string) []*workspace.Member {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*workspace.Member

	for _, mem := range m.members {
		if mem.WorkspaceID == workspaceID {
			out = append(out, mem)
		}
	}

	return out
}

type memTx struct{ m *memStore }

func clone(inv *invitation.Invitation) *invitation.Invitation {
	c := *inv
	return &c
}

func (t memTx) Get(id string) (*invitation.Invitation, error) {
	inv, ok := t.m.invs[id]
	if !ok {
		return nil, invitation.ErrNotFound
	}

	return clone(inv), nil
}

func (t memTx) FindByToken(token string) (*invitation.Invitation, error) {
	for _, inv := range t.m.invs {
		if inv.Token == token {
			return clone(inv), nil
		}
	}

	return nil, invitation.ErrNotFound
}

func (t memTx) FindPending(workspaceID, email string) (*invitation.Invitation, error) {
	for _, inv := range t.m.invs {
		if inv.WorkspaceID == workspaceID && inv.Email == email && inv.Status == invitation.StatusPending {
			return clone(inv), nil
		}
	}

	return nil, nil
}

func (t memTx) Workspace(id string) (*workspace.Workspace, error) {
	ws, ok := t.m.workspaces[id]
	if !ok {
		return nil, workspace.ErrNotFound
	}

	c := *ws

	return &c, nil
}

func (t memTx) Member(workspaceID, userID string) (*workspace.Member, error) {
	mem, ok := t.m.members[workspace.MemberID(workspaceID, userID)]
	if !ok {
		return nil, workspace.ErrMemberNotFound
	}

	c := *mem

	return &c, nil
}

func (t memTx) MemberByEmail(workspaceID, email string) (*workspace.Member, error) {
	for _, mem := range t.m.members {
		if mem.WorkspaceID == workspaceID && mem.Email == email {
			c := *mem
			return &c, nil
		}
	}

	return nil, nil
}

func (t memTx) Save(inv *invitation.Invitation) error {
	if inv.ID == "" {
		t.m.seq++
		inv.ID = fmt.Sprintf("inv%d", t.m.seq)
	}

	t.m.invs[inv.ID] = clone(inv)

	return nil
}

func (t memTx) SetMember(member *workspace.Member) error {
	member.ID = workspace.MemberID(member.WorkspaceID, member.UserID)
	c := *member
	t.m.members[member.ID] = &c

	return nil
}

func (t memTx) AdjustMembersCount(workspaceID string, delta int) error {
	t.m.workspaces[workspaceID].MembersCount += delta
	return nil
}

func (t memTx) Notify(n *notification.Notification) error {
	t.m.notes = append(t.m.notes, n)
	return nil
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Invitation
	err  error
}

func (r *recordingMailer) SendInvitation(_ context.Context, inv mail.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, inv)

	return r.err
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func sequentialTokens() func() (string, error) {
	n := 0

	return func() (string, error) {
		n++
		return fmt.Sprintf("inv_token%d", n), nil
	}
}

func setup(t *testing.T) (*invitation.Service, *memStore, *recordingMailer, *clock) {
	t.Helper()

	store := newMemStore()
	mailer := &recordingMailer{}
	clk := &clock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}

	svc := invitation.NewService(store, mailer, "https://planner.example.com/",
		invitation.WithClock(clk.Now),
		invitation.WithTokenSource(sequentialTokens()),
	)

	return svc, store, mailer, clk
}

func TestNewToken(t *testing.T) {
	a, err := invitation.NewToken()
	require.NoError(t, err)

	b, err := invitation.NewToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "inv_"))
	assert.Len(t, a, len("inv_")+64)
	assert.NotEqual(t, a, b)
}

func TestService_Send(t *testing.T) {
	svc, store, mailer, clk := setup(t)

	inv, err := svc.Send(context.Background(), owner, "ws1", invitation.SendParams{
		Email: " Bob@Example.com ", Role: workspace.RoleViewer, Message: "Join us!",
	})
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, "bob@example.com", inv.Email)
	assert.Equal(t, invitation.StatusPending, inv.Status)
	assert.Equal(t, "Ana & Rui", inv.WorkspaceName)
	assert.Equal(t, clk.now.Add(7*24*time.Hour), inv.ExpiresAt)
	assert.Len(t, store.invs, 1)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, inv.ID, mailer.sent[0].InvitationID)
	assert.Equal(t, "bob@example.com", mailer.sent[0].ToEmail)
	assert.Equal(t, "Ana", mailer.sent[0].FromName)
	assert.Equal(t, "ana@example.com", mailer.sent[0].ReplyTo)
	assert.Equal(t, "https://planner.example.com/invitation/accept?token=inv_token1&email=bob%40example.com", mailer.sent[0].Link)
}

func TestService_Send_RotatesPendingInvitation(t *testing.T) {
	svc, _, _, clk := setup(t)
	ctx := context.Background()

	first, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)

	firstToken := first.Token
	clk.now = clk.now.Add(time.Hour)

	second, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)
	svc.Wait()

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, firstToken, second.Token)
	assert.Equal(t, clk.now.Add(invitation.DefaultTTL), second.ExpiresAt)

	_, err = svc.Accept(ctx, firstToken, bob)
	assert.ErrorIs(t, err, invitation.ErrNotFound)

	_, err = svc.Accept(ctx, second.Token, bob)
	assert.NoError(t, err)
}

func TestService_Send_Rejections(t *testing.T) {
	type testCase struct {
		name    string
		inviter auth.Identity
		params  invitation.SendParams
		wantErr error
	}

	tests := []testCase{
		{name: "NotOwner", inviter: bob, params: invitation.SendParams{Email: "c@example.com", Role: workspace.RoleViewer}, wantErr: invitation.ErrForbidden},
		{name: "OwnerRole", inviter: owner, params: invitation.SendParams{Email: "c@example.com", Role: workspace.RoleOwner}, wantErr: invitation.ErrInvalidRole},
		{name: "BadEmail", inviter: owner, params: invitation.SendParams{Email: "not-an-email", Role: workspace.RoleViewer}, wantErr: invitation.ErrInvalidEmail},
		{name: "ExistingMember", inviter: owner, params: invitation.SendParams{Email: "ana@example.com", Role: workspace.RoleViewer}, wantErr: invitation.ErrAlreadyMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, mailer, _ := setup(t)

			_, err := svc.Send(context.Background(), tt.inviter, "ws1", tt.params)
			svc.Wait()

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.invs)
			assert.Empty(t, mailer.sent)
		})
	}
}

func TestService_Send_MailFailureKeepsInvitation(t *testing.T) {
	svc, store, mailer, _ := setup(t)
	mailer.err = errors.New("sendgrid down")

	inv, err := svc.Send(context.Background(), owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleEditor})
	require.NoError(t, err)
	svc.Wait()

	assert.Contains(t, store.invs, inv.ID)
}

func TestService_Accept(t *testing.T) {
	svc, store, _, clk := setup(t)
	ctx := context.Background()

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleEditor})
	require.NoError(t, err)
	svc.Wait()

	got, err := svc.Accept(ctx, inv.Token, bob)
	require.NoError(t, err)

	assert.Equal(t, invitation.StatusAccepted, got.Status)
	require.NotNil(t, got.AcceptedBy)
	assert.Equal(t, "bob", got.AcceptedBy.UserID)
	assert.Equal(t, clk.now, got.AcceptedBy.At)

	m := store.members[workspace.MemberID("ws1", "bob")]
	require.NotNil(t, m)
	assert.Equal(t, workspace.RoleEditor, m.Role)
	assert.Equal(t, 2, store.workspaces["ws1"].MembersCount)

	require.Len(t, store.notes, 1)
	assert.Equal(t, "owner", store.notes[0].UserID)
	assert.Equal(t, notification.TypeInvitationAccepted, store.notes[0].Type)

	_, err = svc.Accept(ctx, inv.Token, bob)
	assert.ErrorIs(t, err, invitation.ErrNotPending)
	assert.Len(t, store.membersOf("ws1"), 2)
}

func TestService_Accept_ExistingMemberIsIdempotent(t *testing.T) {
	svc, store, _, _ := setup(t)
	ctx := context.Background()

	store.members[workspace.MemberID("ws1", "bob")] = &workspace.Member{
		WorkspaceID: "ws1", UserID: "bob", Email: "bob@work.example.com", Role: workspace.RoleViewer,
	}
	store.workspaces["ws1"].MembersCount = 2

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleEditor})
	require.NoError(t, err)
	svc.Wait()

	_, err = svc.Accept(ctx, inv.Token, bob)
	require.NoError(t, err)

	assert.Len(t, store.membersOf("ws1"), 2)
	assert.Equal(t, 2, store.workspaces["ws1"].MembersCount)
	assert.Equal(t, workspace.RoleEditor, store.members[workspace.MemberID("ws1", "bob")].Role)
}

func TestService_Accept_OwnerKeepsRole(t *testing.T) {
	svc, store, _, _ := setup(t)
	ctx := context.Background()

	store.invs["x"] = &invitation.Invitation{
		ID: "x", WorkspaceID: "ws1", Email: "other@example.com", Role: workspace.RoleEditor,
		Status: invitation.StatusPending, Token: "inv_x", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	_, err := svc.Accept(ctx, "inv_x", owner)
	require.NoError(t, err)

	assert.Equal(t, workspace.RoleOwner, store.members[workspace.MemberID("ws1", "owner")].Role)
}

func TestService_Accept_Expired(t *testing.T) {
	svc, store, _, clk := setup(t)
	ctx := context.Background()

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)
	svc.Wait()

	clk.now = inv.ExpiresAt.Add(time.Second)

	_, err = svc.Accept(ctx, inv.Token, bob)
	assert.ErrorIs(t, err, invitation.ErrExpired)

	assert.Equal(t, invitation.StatusExpired, store.invs[inv.ID].Status)
	assert.NotContains(t, store.members, workspace.MemberID("ws1", "bob"))
	assert.Equal(t, 1, store.workspaces["ws1"].MembersCount)
	assert.Empty(t, store.notes)
}

func TestService_Accept_WorkspaceGone(t *testing.T) {
	svc, store, _, _ := setup(t)
	ctx := context.Background()

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)
	svc.Wait()

	delete(store.workspaces, "ws1")

	_, err = svc.Accept(ctx, inv.Token, bob)
	assert.ErrorIs(t, err, invitation.ErrWorkspaceGone)
	assert.Equal(t, invitation.StatusExpired, store.invs[inv.ID].Status)
	assert.NotContains(t, store.members, workspace.MemberID("ws1", "bob"))
}

func TestService_Decline(t *testing.T) {
	svc, store, _, _ := setup(t)
	ctx := context.Background()

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)
	svc.Wait()

	got, err := svc.Decline(ctx, inv.Token, bob)
	require.NoError(t, err)

	assert.Equal(t, invitation.StatusDeclined, got.Status)
	require.NotNil(t, got.DeclinedBy)
	assert.NotContains(t, store.members, workspace.MemberID("ws1", "bob"))
	require.Len(t, store.notes, 1)
	assert.Equal(t, notification.TypeInvitationDeclined, store.notes[0].Type)

	_, err = svc.Accept(ctx, inv.Token, bob)
	assert.ErrorIs(t, err, invitation.ErrNotPending)
}

func TestService_Cancel(t *testing.T) {
	svc, store, _, _ := setup(t)
	ctx := context.Background()

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)
	svc.Wait()

	assert.ErrorIs(t, svc.Cancel(ctx, inv.ID, "bob"), invitation.ErrForbidden)
	require.NoError(t, svc.Cancel(ctx, inv.ID, "owner"))
	assert.Equal(t, invitation.StatusExpired, store.invs[inv.ID].Status)
	assert.ErrorIs(t, svc.Cancel(ctx, inv.ID, "owner"), invitation.ErrNotPending)

	_, err = svc.Accept(ctx, inv.Token, bob)
	assert.ErrorIs(t, err, invitation.ErrNotPending)
}

func TestService_Lookup(t *testing.T) {
	svc, _, _, clk := setup(t)
	ctx := context.Background()

	inv, err := svc.Send(ctx, owner, "ws1", invitation.SendParams{Email: "bob@example.com", Role: workspace.RoleViewer})
	require.NoError(t, err)
	svc.Wait()

	p, err := svc.Lookup(ctx, inv.Token)
	require.NoError(t, err)
	assert.Equal(t, "Ana & Rui", p.WorkspaceName)
	assert.Equal(t, "Ana", p.InviterName)
	assert.Equal(t, workspace.RoleViewer, p.Role)

	clk.now = inv.ExpiresAt

	_, err = svc.Lookup(ctx, inv.Token)
	assert.ErrorIs(t, err, invitation.ErrExpired)

	_, err = svc.Lookup(ctx, "inv_unknown")
	assert.ErrorIs(t, err, invitation.ErrNotFound)
}

func TestService_ListPendingForEmail_SkipsExpired(t *testing.T) {
	svc, store, _, clk := setup(t)

	store.invs["a"] = &invitation.Invitation{ID: "a", Email: "bob@example.com", Status: invitation.StatusPending, ExpiresAt: clk.now.Add(time.Hour)}
	store.invs["b"] = &invitation.Invitation{ID: "b", Email: "bob@example.com", Status: invitation.StatusPending, ExpiresAt: clk.now.Add(-time.Hour)}

	got, err := svc.ListPendingForEmail(context.Background(), "BOB@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestService_ListForWorkspace(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *invitation.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Editor",
			setupMock: func(m *invitation.MockRepository) {
				m.EXPECT().GetMember(gomock.Any(), "ws1", "u1").Return(&workspace.Member{Role: workspace.RoleEditor}, nil)
				m.EXPECT().ListForWorkspace(gomock.Any(), "ws1").Return([]*invitation.Invitation{{ID: "a"}}, nil)
			},
		},
		{
			name: "Viewer",
			setupMock: func(m *invitation.MockRepository) {
				m.EXPECT().GetMember(gomock.Any(), "ws1", "u1").Return(&workspace.Member{Role: workspace.RoleViewer}, nil)
			},
			wantErr: invitation.ErrForbidden,
		},
		{
			name: "Stranger",
			setupMock: func(m *invitation.MockRepository) {
				m.EXPECT().GetMember(gomock.Any(), "ws1", "u1").Return(nil, workspace.ErrMemberNotFound)
			},
			wantErr: invitation.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invitation.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := invitation.NewService(repo, invitation.NewMockMailer(ctrl), "https://x")

			got, err := svc.ListForWorkspace(context.Background(), "ws1", "u1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, got, 1)
		})
	}
}
