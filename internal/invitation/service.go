package invitation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	netmail "net/mail"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/mail"
	"github.com/weddingledger/planner/internal/notification"
	"github.com/weddingledger/planner/internal/workspace"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invitation
type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	GetByToken(ctx context.Context, token string) (*Invitation, error)
	GetMember(ctx context.Context, workspaceID, userID string) (*workspace.Member, error)
	ListForWorkspace(ctx context.Context, workspaceID string) ([]*Invitation, error)
	ListPendingForEmail(ctx context.Context, email string) ([]*Invitation, error)
}

// Tx is a read-then-write unit of work. All reads must happen before the
// first write.
type Tx interface {
	Get(id string) (*Invitation, error)
	FindByToken(token string) (*Invitation, error)
	FindPending(workspaceID, email string) (*Invitation, error)
	Workspace(id string) (*workspace.Workspace, error)
	Member(workspaceID, userID string) (*workspace.Member, error)
	MemberByEmail(workspaceID, email string) (*workspace.Member, error)
	Save(inv *Invitation) error
	SetMember(member *workspace.Member) error
	AdjustMembersCount(workspaceID string, delta int) error
	Notify(n *notification.Notification) error
}

type Mailer interface {
	SendInvitation(ctx context.Context, inv mail.Invitation) error
}

type Service struct {
	repo     Repository
	mailer   Mailer
	baseURL  string
	ttl      time.Duration
	now      func() time.Time
	newToken func() (string, error)

	wg sync.WaitGroup
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithTokenSource(fn func() (string, error)) Option {
	return func(s *Service) { s.newToken = fn }
}

func NewService(repo Repository, mailer Mailer, baseURL string, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		mailer:   mailer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		ttl:      DefaultTTL,
		now:      func() time.Time { return time.Now().UTC() },
		newToken: NewToken,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type SendParams struct {
	Email   string
	Role    workspace.Role
	Message string
}

// Send invites an email address to a workspace. Only the owner may invite. A
// pending invitation for the same address is reused with a fresh token and
// expiry. The email goes out after the commit and its failure is only logged.
func (s *Service) Send(ctx context.Context, inviter auth.Identity, workspaceID string, p SendParams) (*Invitation, error) {
	email, err := normalizeEmail(p.Email)
	if err != nil {
		return nil, err
	}

	if p.Role != workspace.RoleEditor && p.Role != workspace.RoleViewer {
		return nil, ErrInvalidRole
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	var inv *Invitation

	err = s.repo.WithinTx(ctx, func(tx Tx) error {
		ws, err := tx.Workspace(workspaceID)
		if err != nil {
			return err
		}

		if err := requireOwner(tx, workspaceID, inviter.UserID); err != nil {
			return err
		}

		existing, err := tx.MemberByEmail(workspaceID, email)
		if err != nil {
			return err
		}

		if existing != nil {
			return ErrAlreadyMember
		}

		pending, err := tx.FindPending(workspaceID, email)
		if err != nil {
			return err
		}

		now := s.now()

		inv = pending
		if inv == nil {
			inv = &Invitation{
				Email:       email,
				WorkspaceID: workspaceID,
				Status:      StatusPending,
				CreatedAt:   now,
			}
		}

		inv.WorkspaceName = ws.Name
		inv.InvitedBy = inviter.UserID
		inv.InviterName = inviter.Name()
		inv.Role = p.Role
		inv.Message = strings.TrimSpace(p.Message)
		inv.Token = token
		inv.ExpiresAt = now.Add(s.ttl)
		inv.UpdatedAt = now

		return tx.Save(inv)
	})
	if err != nil {
		return nil, fmt.Errorf("sending invitation: %w", err)
	}

	s.dispatch(ctx, inv, inviter)

	return inv, nil
}

// AcceptLink is the URL an invitee follows to accept.
func (s *Service) AcceptLink(inv *Invitation) string {
	return s.baseURL + "/invitation/accept?token=" + url.QueryEscape(inv.Token) + "&email=" + url.QueryEscape(inv.Email)
}

func (s *Service) dispatch(ctx context.Context, inv *Invitation, inviter auth.Identity) {
	msg := mail.Invitation{
		InvitationID:  inv.ID,
		ToEmail:       inv.Email,
		FromName:      inv.InviterName,
		Link:          s.AcceptLink(inv),
		Role:          string(inv.Role),
		Message:       inv.Message,
		ReplyTo:       inviter.Email,
		WorkspaceName: inv.WorkspaceName,
	}

	ctx = context.WithoutCancel(ctx)

	s.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := s.mailer.SendInvitation(ctx, msg); err != nil {
			slog.Error("failed to send invitation email", "invitation_id", inv.ID, "to", msg.ToEmail, "error", err)
		}
	})
}

// Wait blocks until every queued invitation email has been attempted.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Accept adds user to the invitation's workspace and marks the invitation
// accepted. The status check and every write happen in one transaction, so
// a token can be accepted at most once. Expired invitations, and those whose
// workspace is gone, are marked expired and the call fails.
func (s *Service) Accept(ctx context.Context, token string, user auth.Identity) (*Invitation, error) {
	var (
		accepted *Invitation
		outcome  error
	)

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		outcome = nil

		inv, ws, err := s.claim(tx, token)
		if err != nil {
			return err
		}

		now := s.now()

		if ws == nil {
			outcome = expiryReason(inv, now)
			return expire(tx, inv, now)
		}

		existing, err := tx.Member(inv.WorkspaceID, user.UserID)
		if err != nil && !errors.Is(err, workspace.ErrMemberNotFound) {
			return err
		}

		switch {
		case existing == nil:
			if err := tx.SetMember(&workspace.Member{
				WorkspaceID: inv.WorkspaceID,
				UserID:      user.UserID,
				DisplayName: user.Name(),
				Email:       strings.ToLower(user.Email),
				Role:        inv.Role,
				JoinedAt:    now,
			}); err != nil {
				return err
			}

			if err := tx.AdjustMembersCount(inv.WorkspaceID, 1); err != nil {
				return err
			}
		case existing.Role != workspace.RoleOwner && inv.Role.Rank() > existing.Role.Rank():
			existing.Role = inv.Role
			if err := tx.SetMember(existing); err != nil {
				return err
			}
		}

		inv.Status = StatusAccepted
		inv.AcceptedBy = actor(user, now)
		inv.UpdatedAt = now

		if err := tx.Save(inv); err != nil {
			return err
		}

		accepted = inv

		return tx.Notify(notification.InvitationAccepted(inv.InvitedBy, inv.WorkspaceID, user.Name(), ws.Name, now))
	})
	if err != nil {
		return nil, fmt.Errorf("accepting invitation: %w", err)
	}

	if outcome != nil {
		return nil, outcome
	}

	return accepted, nil
}

func (s *Service) Decline(ctx context.Context, token string, user auth.Identity) (*Invitation, error) {
	var (
		declined *Invitation
		outcome  error
	)

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		outcome = nil

		inv, ws, err := s.claim(tx, token)
		if err != nil {
			return err
		}

		now := s.now()

		if ws == nil {
			outcome = expiryReason(inv, now)
			return expire(tx, inv, now)
		}

		inv.Status = StatusDeclined
		inv.DeclinedBy = actor(user, now)
		inv.UpdatedAt = now

		if err := tx.Save(inv); err != nil {
			return err
		}

		declined = inv

		return tx.Notify(notification.InvitationDeclined(inv.InvitedBy, inv.WorkspaceID, user.Name(), ws.Name, now))
	})
	if err != nil {
		return nil, fmt.Errorf("declining invitation: %w", err)
	}

	if outcome != nil {
		return nil, outcome
	}

	return declined, nil
}

// claim loads a pending invitation by token. A nil workspace means the
// invitation can no longer be used and must be expired.
func (s *Service) claim(tx Tx, token string) (*Invitation, *workspace.Workspace, error) {
	inv, err := tx.FindByToken(token)
	if err != nil {
		return nil, nil, err
	}

	if inv.Status != StatusPending {
		return nil, nil, ErrNotPending
	}

	if inv.Expired(s.now()) {
		return inv, nil, nil
	}

	ws, err := tx.Workspace(inv.WorkspaceID)
	if errors.Is(err, workspace.ErrNotFound) {
		return inv, nil, nil
	}

	if err != nil {
		return nil, nil, err
	}

	return inv, ws, nil
}

func expiryReason(inv *Invitation, now time.Time) error {
	if inv.Expired(now) {
		return ErrExpired
	}

	return ErrWorkspaceGone
}

func expire(tx Tx, inv *Invitation, now time.Time) error {
	inv.Status = StatusExpired
	inv.UpdatedAt = now

	return tx.Save(inv)
}

// Cancel withdraws a pending invitation. Only the workspace owner may cancel.
func (s *Service) Cancel(ctx context.Context, invitationID, requesterID string) error {
	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		inv, err := tx.Get(invitationID)
		if err != nil {
			return err
		}

		if err := requireOwner(tx, inv.WorkspaceID, requesterID); err != nil {
			return err
		}

		if inv.Status != StatusPending {
			return ErrNotPending
		}

		return expire(tx, inv, s.now())
	})
	if err != nil {
		return fmt.Errorf("cancelling invitation: %w", err)
	}

	return nil
}

// Lookup previews a pending invitation without changing it.
func (s *Service) Lookup(ctx context.Context, token string) (*Preview, error) {
	inv, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if inv.Status != StatusPending {
		return nil, ErrNotPending
	}

	if inv.Expired(s.now()) {
		return nil, ErrExpired
	}

	return &Preview{
		Email:         inv.Email,
		WorkspaceName: inv.WorkspaceName,
		InviterName:   inv.InviterName,
		Role:          inv.Role,
		ExpiresAt:     inv.ExpiresAt,
	}, nil
}

// ListForWorkspace is available to the owner and editors.
func (s *Service) ListForWorkspace(ctx context.Context, workspaceID, requesterID string) ([]*Invitation, error) {
	m, err := s.repo.GetMember(ctx, workspaceID, requesterID)
	if err != nil {
		if errors.Is(err, workspace.ErrMemberNotFound) {
			return nil, ErrForbidden
		}

		return nil, fmt.Errorf("loading membership: %w", err)
	}

	if !m.Role.CanWrite() {
		return nil, ErrForbidden
	}

	return s.repo.ListForWorkspace(ctx, workspaceID)
}

// ListPendingForEmail returns the invitations still open for email.
func (s *Service) ListPendingForEmail(ctx context.Context, email string) ([]*Invitation, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListPendingForEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("listing pending invitations: %w", err)
	}

	now := s.now()
	out := make([]*Invitation, 0, len(all))

	for _, inv := range all {
		if !inv.Expired(now) {
			out = append(out, inv)
		}
	}

	return out, nil
}

func requireOwner(tx Tx, workspaceID, userID string) error {
	m, err := tx.Member(workspaceID, userID)
	if err != nil {
		if errors.Is(err, workspace.ErrMemberNotFound) {
			return ErrForbidden
		}

		return err
	}

	if m.Role != workspace.RoleOwner {
		return ErrForbidden
	}

	return nil
}

func actor(user auth.Identity, at time.Time) *Actor {
	return &Actor{UserID: user.UserID, Email: user.Email, DisplayName: user.Name(), At: at}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))

	addr, err := netmail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}

	return email, nil
}
