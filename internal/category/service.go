package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrInvalid   = errors.New("invalid category")
	ErrDuplicate = errors.New("a category with this name already exists")
)

// Category is a user-defined expense category.
type Category struct {
	ID          string    `firestore:"-"`
	WorkspaceID string    `firestore:"workspaceId"`
	Name        string    `firestore:"name"`
	Color       string    `firestore:"color,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context, workspaceID string) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Get(ctx context.Context, workspaceID, id string) (*Category, error)
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
	Color string
}

func (p Params) validate() (Params, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Color = strings.TrimSpace(p.Color)

	if p.Name == "" || (p.Color != "" && !colorPattern.MatchString(p.Color)) {
		return p, ErrInvalid
	}

	return p, nil
}

func (s *Service) Create(ctx context.Context, workspaceID string, p Params) (*Category, error) {
	p, err := p.validate()
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, workspaceID, "", p.Name); err != nil {
		return nil, err
	}

	c := &Category{WorkspaceID: workspaceID, Name: p.Name, Color: p.Color, CreatedAt: time.Now().UTC()}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, workspaceID string) ([]*Category, error) {
	return s.repo.List(ctx, workspaceID)
}

func (s *Service) Update(ctx context.Context, workspaceID, id string, p Params) (*Category, error) {
	p, err := p.validate()
	if err != nil {
		return nil, err
	}

	c, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, workspaceID, id, p.Name); err != nil {
		return nil, err
	}

	c.Name = p.Name
	c.Color = p.Color

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

func (s *Service) ensureUnique(ctx context.Context, workspaceID, selfID, name string) error {
	existing, err := s.repo.List(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("listing categories: %w", err)
	}

	for _, c := range existing {
		if c.ID != selfID && strings.EqualFold(c.Name, name) {
			return ErrDuplicate
		}
	}

	return nil
}
