package contributor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contributor
type Repository interface {
	Create(ctx context.Context, c *Contributor) error
	Get(ctx context.Context, workspaceID, id string) (*Contributor, error)
	List(ctx context.Context, workspaceID string) ([]*Contributor, error)
	Update(ctx context.Context, c *Contributor) error
	Delete(ctx context.Context, workspaceID, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Params struct {
	Name  string
	Notes string
}

func (s *Service) Create(ctx context.Context, workspaceID string, p Params) (*Contributor, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	now := time.Now().UTC()
	c := &Contributor{
		WorkspaceID: workspaceID,
		Name:        name,
		Notes:       strings.TrimSpace(p.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating contributor: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, workspaceID, id string) (*Contributor, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

func (s *Service) List(ctx context.Context, workspaceID string) ([]*Contributor, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *Service) Update(ctx context.Context, workspaceID, id string, p Params) (*Contributor, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	c, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	c.Notes = strings.TrimSpace(p.Notes)
	c.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating contributor: %w", err)
	}

	return c, nil
}

// Delete removes the contributor. Their gifts are kept and fall back to the
// contributor's name as free text.
func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

func (s *Service) Exists(ctx context.Context, workspaceID, id string) (bool, error) {
	_, err := s.repo.Get(ctx, workspaceID, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}

	return err == nil, err
}
