package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/workspace"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=migration
type Repository interface {
	GetRecord(ctx context.Context, userID string) (*Record, error)
	SaveRecord(ctx context.Context, r *Record) error
	LegacyWeddings(ctx context.Context, userID string) ([]*Wedding, error)
	LegacyMembers(ctx context.Context, weddingID string) ([]*LegacyMember, error)
	SaveWorkspace(ctx context.Context, ws *workspace.Workspace, members []*workspace.Member) error
	CopyCollection(ctx context.Context, weddingID, workspaceID, collection string) (int, error)
	FlattenContributorGifts(ctx context.Context, workspaceID string) (int, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Status returns the user's migration record, or an unmigrated record when
// none is stored.
func (s *Service) Status(ctx context.Context, userID string) (*Record, error) {
	rec, err := s.repo.GetRecord(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("getting migration record: %w", err)
	}

	if rec == nil {
		return &Record{UserID: userID}, nil
	}

	return rec, nil
}

// MigrateUser migrates the user's legacy weddings once. Later calls return a
// skipped report.
func (s *Service) MigrateUser(ctx context.Context, user auth.Identity) (*Report, error) {
	rec, err := s.Status(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	if rec.Migrated {
		return &Report{UserID: user.UserID, Skipped: true, Workspaces: rec.Workspaces}, nil
	}

	return s.RunFull(ctx, user)
}

// RunFull migrates every legacy wedding owned by user regardless of the
// stored flag. Workspace ids equal the legacy wedding ids and copied
// documents keep their ids, so rerunning overwrites instead of duplicating.
func (s *Service) RunFull(ctx context.Context, user auth.Identity) (*Report, error) {
	weddings, err := s.repo.LegacyWeddings(ctx, user.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing legacy weddings: %w", err)
	}

	report := &Report{UserID: user.UserID}
	now := s.now().UTC()

	for _, w := range weddings {
		if err := s.migrateWedding(ctx, user, w, now, report); err != nil {
			return report, err
		}
	}

	rec := &Record{UserID: user.UserID, Migrated: true, MigratedAt: now, Workspaces: report.Workspaces}
	if err := s.repo.SaveRecord(ctx, rec); err != nil {
		return report, fmt.Errorf("saving migration record: %w", err)
	}

	slog.Info("legacy migration finished",
		"user", user.UserID, "workspaces", len(report.Workspaces), "failed", report.Failed)

	return report, nil
}

func (s *Service) migrateWedding(ctx context.Context, user auth.Identity, w *Wedding, now time.Time, report *Report) error {
	legacy, err := s.repo.LegacyMembers(ctx, w.ID)
	if err != nil {
		return fmt.Errorf("listing legacy members of %s: %w", w.ID, err)
	}

	ws, members := buildWorkspace(user, w, legacy, now)

	if err := s.repo.SaveWorkspace(ctx, ws, members); err != nil {
		return fmt.Errorf("saving workspace for %s: %w", w.ID, err)
	}

	report.Workspaces = append(report.Workspaces, ws.ID)

	record := func(coll string, n int, err error) error {
		res := CollectionResult{WorkspaceID: ws.ID, Collection: coll, Copied: n}

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}

			slog.Error("failed to migrate collection",
				"workspace", ws.ID, "collection", coll, "error", err)

			res.Error = err.Error()
			report.Failed++
		}

		report.Collections = append(report.Collections, res)

		return nil
	}

	for _, coll := range docstore.Dependent {
		n, err := s.repo.CopyCollection(ctx, w.ID, ws.ID, coll)
		if err := record(coll, n, err); err != nil {
			return err
		}
	}

	// Contributors are copied with their embedded gifts; allocations point at
	// those gift ids.
	n, err := s.repo.FlattenContributorGifts(ctx, ws.ID)

	return record(ContributorGifts, n, err)
}

func buildWorkspace(user auth.Identity, w *Wedding, legacy []*LegacyMember, now time.Time) (*workspace.Workspace, []*workspace.Member) {
	created := w.CreatedAt
	if created.IsZero() {
		created = now
	}

	name := w.Name
	if name == "" {
		name = w.CoupleNames
	}

	if name == "" {
		name = "My Wedding"
	}

	ws := &workspace.Workspace{
		ID:                w.ID,
		Name:              name,
		CoupleNames:       w.CoupleNames,
		OwnerID:           user.UserID,
		OwnerName:         user.Name(),
		OwnerEmail:        user.Email,
		WeddingDate:       w.WeddingDate,
		Location:          w.Location,
		OriginalWeddingID: w.ID,
		CreatedAt:         created,
		UpdatedAt:         now,
	}

	members := []*workspace.Member{{
		WorkspaceID: ws.ID,
		UserID:      user.UserID,
		DisplayName: user.Name(),
		Email:       user.Email,
		Role:        workspace.RoleOwner,
		JoinedAt:    created,
	}}

	seen := map[string]bool{user.UserID: true}

	for _, lm := range legacy {
		if lm.UserID == "" || seen[lm.UserID] {
			continue
		}

		role, ok := MapRole(lm.Role)
		if !ok {
			continue
		}

		seen[lm.UserID] = true

		members = append(members, &workspace.Member{
			WorkspaceID: ws.ID,
			UserID:      lm.UserID,
			DisplayName: lm.DisplayName,
			Email:       lm.Email,
			Role:        role,
			JoinedAt:    now,
		})
	}

	for _, m := range members {
		m.ID = workspace.MemberID(ws.ID, m.UserID)
	}

	ws.MembersCount = len(members)

	return ws, members
}
