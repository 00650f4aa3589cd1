package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/cleanup"
	"github.com/weddingledger/planner/internal/live"
	"github.com/weddingledger/planner/internal/notification"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=workspace
type Repository interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	Get(ctx context.Context, id string) (*Workspace, error)
	GetMember(ctx context.Context, workspaceID, userID string) (*Member, error)
	ListOwned(ctx context.Context, userID string) ([]*Workspace, error)
	ListMemberships(ctx context.Context, userID string) ([]*Member, error)
	ListMembers(ctx context.Context, workspaceID string) ([]*Member, error)
	Watch(ctx context.Context, userID string, changed func()) error
}

// Tx is a read-then-write unit of work. All reads must happen before the
// first write.
type Tx interface {
	Get(id string) (*Workspace, error)
	GetMember(workspaceID, userID string) (*Member, error)
	ListMembers(workspaceID string) ([]*Member, error)
	Create(w *Workspace) error
	Update(id string, d Details, at time.Time) error
	Delete(id string) error
	SetMember(member *Member) error
	DeleteMember(workspaceID, userID string) error
	AdjustMembersCount(workspaceID string, delta int) error
	EnqueueCleanup(jobs []*cleanup.Job) error
	Notify(n *notification.Notification) error
}

type Service struct {
	repo     Repository
	now      func() time.Time
	debounce time.Duration
	policy   live.Policy
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithWatch configures how Watch coalesces and recovers subscriptions.
func WithWatch(debounce time.Duration, policy live.Policy) Option {
	return func(s *Service) {
		s.debounce = debounce
		s.policy = policy
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		now:      func() time.Time { return time.Now().UTC() },
		debounce: 500 * time.Millisecond,
		policy:   live.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Create(ctx context.Context, owner auth.Identity, d Details) (*Workspace, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, ErrInvalidName
	}

	now := s.now()
	email := strings.ToLower(strings.TrimSpace(owner.Email))
	ws := &Workspace{
		Name:         d.Name,
		CoupleNames:  strings.TrimSpace(d.CoupleNames),
		OwnerID:      owner.UserID,
		OwnerName:    owner.Name(),
		OwnerEmail:   email,
		WeddingDate:  d.WeddingDate,
		Location:     strings.TrimSpace(d.Location),
		MembersCount: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		if err := tx.Create(ws); err != nil {
			return err
		}

		return tx.SetMember(&Member{
			WorkspaceID: ws.ID,
			UserID:      owner.UserID,
			DisplayName: owner.Name(),
			Email:       email,
			Role:        RoleOwner,
			JoinedAt:    now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	return ws, nil
}

// Authorize returns the caller's member row, failing with ErrForbidden when
// the caller is not a member or needs write access and only has read.
func (s *Service) Authorize(ctx context.Context, workspaceID, userID string, write bool) (*Member, error) {
	m, err := s.repo.GetMember(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrForbidden
		}

		return nil, fmt.Errorf("loading membership: %w", err)
	}

	if write && !m.Role.CanWrite() {
		return nil, ErrForbidden
	}

	return m, nil
}

func (s *Service) IsMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	_, err := s.Authorize(ctx, workspaceID, userID, false)
	if errors.Is(err, ErrForbidden) {
		return false, nil
	}

	return err == nil, err
}

func (s *Service) Get(ctx context.Context, id, userID string) (*Workspace, error) {
	if _, err := s.Authorize(ctx, id, userID, false); err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id, userID string, d Details) (*Workspace, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return nil, ErrInvalidName
	}

	now := s.now()

	var ws *Workspace

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		if err := requireRole(tx, id, userID, RoleEditor); err != nil {
			return err
		}

		current, err := tx.Get(id)
		if err != nil {
			return err
		}

		if err := tx.Update(id, d, now); err != nil {
			return err
		}

		current.Name = d.Name
		current.CoupleNames = d.CoupleNames
		current.WeddingDate = d.WeddingDate
		current.Location = d.Location
		current.UpdatedAt = now
		ws = current

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("updating workspace: %w", err)
	}

	return ws, nil
}

// Delete removes the workspace and its member rows, queues cleanup of every
// dependent collection and notifies the other members, all in one commit.
// Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	now := s.now()

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		ws, err := tx.Get(id)
		if err != nil {
			return err
		}

		if err := requireRole(tx, id, userID, RoleOwner); err != nil {
			return err
		}

		members, err := tx.ListMembers(id)
		if err != nil {
			return err
		}

		if err := tx.Delete(id); err != nil {
			return err
		}

		for _, m := range members {
			if err := tx.DeleteMember(id, m.UserID); err != nil {
				return err
			}
		}

		if err := tx.EnqueueCleanup(cleanup.JobsFor(id, now)); err != nil {
			return err
		}

		for _, m := range members {
			if m.UserID == userID || m.Role == RoleOwner {
				continue
			}

			if err := tx.Notify(notification.WorkspaceDeleted(m.UserID, id, ws.Name, now)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting workspace %s: %w", id, err)
	}

	return nil
}

type NewMember struct {
	UserID      string
	DisplayName string
	Email       string
	Role        Role
}

func (s *Service) AddMember(ctx context.Context, workspaceID, requesterID string, nm NewMember) (*Member, error) {
	if nm.Role != RoleEditor && nm.Role != RoleViewer {
		return nil, ErrInvalidRole
	}

	m := &Member{
		WorkspaceID: workspaceID,
		UserID:      nm.UserID,
		DisplayName: nm.DisplayName,
		Email:       strings.ToLower(strings.TrimSpace(nm.Email)),
		Role:        nm.Role,
		JoinedAt:    s.now(),
	}

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		if err := requireRole(tx, workspaceID, requesterID, RoleOwner); err != nil {
			return err
		}

		existing, err := tx.GetMember(workspaceID, nm.UserID)
		if err != nil && !errors.Is(err, ErrMemberNotFound) {
			return err
		}

		if existing != nil {
			return ErrAlreadyMember
		}

		if err := tx.SetMember(m); err != nil {
			return err
		}

		return tx.AdjustMembersCount(workspaceID, 1)
	})
	if err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}

	return m, nil
}

// RemoveMember removes target from the workspace. Members may remove
// themselves; removing anyone else requires the owner. The owner row can
// never be removed.
func (s *Service) RemoveMember(ctx context.Context, workspaceID, requesterID, targetID string) error {
	now := s.now()

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		target, err := tx.GetMember(workspaceID, targetID)
		if err != nil {
			return err
		}

		if target.Role == RoleOwner {
			return ErrOwnerImmutable
		}

		self := requesterID == targetID
		if !self {
			if err := requireRole(tx, workspaceID, requesterID, RoleOwner); err != nil {
				return err
			}
		}

		ws, err := tx.Get(workspaceID)
		if err != nil {
			return err
		}

		if err := tx.DeleteMember(workspaceID, targetID); err != nil {
			return err
		}

		if err := tx.AdjustMembersCount(workspaceID, -1); err != nil {
			return err
		}

		if self {
			return nil
		}

		return tx.Notify(notification.MemberRemoved(targetID, workspaceID, ws.Name, now))
	})
	if err != nil {
		return fmt.Errorf("removing member: %w", err)
	}

	return nil
}

func (s *Service) UpdateMemberRole(ctx context.Context, workspaceID, requesterID, targetID string, role Role) (*Member, error) {
	if role != RoleEditor && role != RoleViewer {
		return nil, ErrInvalidRole
	}

	now := s.now()

	var updated *Member

	err := s.repo.WithinTx(ctx, func(tx Tx) error {
		if err := requireRole(tx, workspaceID, requesterID, RoleOwner); err != nil {
			return err
		}

		target, err := tx.GetMember(workspaceID, targetID)
		if err != nil {
			return err
		}

		if target.Role == RoleOwner {
			return ErrOwnerImmutable
		}

		ws, err := tx.Get(workspaceID)
		if err != nil {
			return err
		}

		if target.Role == role {
			updated = target
			return nil
		}

		target.Role = role
		if err := tx.SetMember(target); err != nil {
			return err
		}

		updated = target

		return tx.Notify(notification.RoleChanged(targetID, workspaceID, ws.Name, string(role), now))
	})
	if err != nil {
		return nil, fmt.Errorf("updating member role: %w", err)
	}

	return updated, nil
}

func (s *Service) ListMembers(ctx context.Context, workspaceID, userID string) ([]*Member, error) {
	if _, err := s.Authorize(ctx, workspaceID, userID, false); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, workspaceID)
}

// ListForUser returns every workspace the user belongs to with the user's
// role and the full member list of each. The member row is authoritative: an
// owned workspace without one is reported and skipped.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*UserWorkspace, error) {
	owned, err := s.repo.ListOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing owned workspaces: %w", err)
	}

	memberships, err := s.repo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing memberships: %w", err)
	}

	byID := make(map[string]*Workspace, len(owned))
	for _, w := range owned {
		byID[w.ID] = w
	}

	out := make([]*UserWorkspace, 0, len(memberships))

	for _, m := range memberships {
		ws, ok := byID[m.WorkspaceID]
		if !ok {
			ws, err = s.repo.Get(ctx, m.WorkspaceID)
			if errors.Is(err, ErrNotFound) {
				continue
			}

			if err != nil {
				return nil, fmt.Errorf("loading workspace %s: %w", m.WorkspaceID, err)
			}
		}

		delete(byID, m.WorkspaceID)

		members, err := s.repo.ListMembers(ctx, m.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("listing members of %s: %w", m.WorkspaceID, err)
		}

		out = append(out, &UserWorkspace{Workspace: ws, Role: m.Role, Members: members})
	}

	for id := range byID {
		slog.Warn("owned workspace has no owner member row", "workspace_id", id, "user_id", userID)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Workspace, out[j].Workspace
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}

		return a.ID < b.ID
	})

	return out, nil
}

// Watch calls fn with a fresh ListForUser result whenever the user's owned
// workspaces or memberships change. Bursts of changes are coalesced and a
// failing subscription is re-established with backoff. Watch blocks until ctx
// is done or the subscription gives up.
func (s *Service) Watch(ctx context.Context, userID string, fn func([]*UserWorkspace), onState func(live.State)) error {
	refresh := func() {
		if ctx.Err() != nil {
			return
		}

		list, err := s.ListForUser(ctx, userID)
		if err != nil {
			slog.Warn("failed to refresh workspaces", "user_id", userID, "error", err)
			return
		}

		fn(list)
	}

	d := live.NewDebouncer(s.debounce, refresh)
	defer d.Stop()

	sup := live.NewSupervisor("workspaces:"+userID, s.policy, func(ctx context.Context) error {
		return s.repo.Watch(ctx, userID, d.Trigger)
	})

	if onState != nil {
		sup.OnStateChange(onState)
	}

	return sup.Run(ctx)
}

// requireRole fails unless userID holds at least min in the workspace.
func requireRole(tx Tx, workspaceID, userID string, min Role) error {
	m, err := tx.GetMember(workspaceID, userID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return ErrForbidden
		}

		return err
	}

	if m.Role.Rank() < min.Rank() {
		return ErrForbidden
	}

	return nil
}
