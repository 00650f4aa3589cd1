// Package preference stores per-user UI state server side. The values are
// hints for the client and are never used for authorization.
package preference

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotMember = errors.New("not a member of the selected workspace")

type Preferences struct {
	UserID             string    `firestore:"-"`
	CurrentWorkspaceID string    `firestore:"currentWorkspaceId"`
	HasCompletedSetup  bool      `firestore:"hasCompletedSetup"`
	UpdatedAt          time.Time `firestore:"updatedAt"`
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=preference
type Repository interface {
	Get(ctx context.Context, userID string) (*Preferences, error)
	Save(ctx context.Context, p *Preferences) error
}

type MemberChecker interface {
	IsMember(ctx context.Context, workspaceID, userID string) (bool, error)
}

type Service struct {
	repo    Repository
	members MemberChecker
}

func NewService(repo Repository, members MemberChecker) *Service {
	return &Service{repo: repo, members: members}
}

// Get returns the stored preferences or zero-value defaults.
func (s *Service) Get(ctx context.Context, userID string) (*Preferences, error) {
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	if p == nil {
		return &Preferences{UserID: userID}, nil
	}

	p.UserID = userID

	return p, nil
}

type UpdateParams struct {
	CurrentWorkspaceID *string
	HasCompletedSetup  *bool
}

func (s *Service) Update(ctx context.Context, userID string, params UpdateParams) (*Preferences, error) {
	p, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if params.CurrentWorkspaceID != nil {
		if id := *params.CurrentWorkspaceID; id != "" {
			ok, err := s.members.IsMember(ctx, id, userID)
			if err != nil {
				return nil, fmt.Errorf("checking membership: %w", err)
			}

			if !ok {
				return nil, ErrNotMember
			}
		}

		p.CurrentWorkspaceID = *params.CurrentWorkspaceID
	}

	if params.HasCompletedSetup != nil {
		p.HasCompletedSetup = *params.HasCompletedSetup
	}

	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("saving preferences: %w", err)
	}

	return p, nil
}
