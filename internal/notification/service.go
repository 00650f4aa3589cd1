package notification

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	List(ctx context.Context, userID string, limit int) ([]*Notification, error)
	Get(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const defaultLimit = 50

func (s *Service) List(ctx context.Context, userID string) ([]*Notification, error) {
	return s.repo.List(ctx, userID, defaultLimit)
}

// MarkRead marks one of the user's own notifications as read. Notifications
// that belong to someone else are reported as not found.
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	n, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if n.UserID != userID {
		return ErrNotFound
	}

	if n.Read {
		return nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}

	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
