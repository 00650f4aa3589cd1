package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalid = errors.New("invalid settings")

const (
	DefaultCurrency     = "EUR"
	DefaultUpcomingDays = 30
)

type Settings struct {
	WorkspaceID        string    `firestore:"-"`
	TotalBudget        int64     `firestore:"totalBudget"`
	Currency           string    `firestore:"currency"`
	UpcomingWindowDays int       `firestore:"upcomingWindowDays"`
	UpdatedAt          time.Time `firestore:"updatedAt"`
}

func Defaults(workspaceID string) *Settings {
	return &Settings{
		WorkspaceID:        workspaceID,
		Currency:           DefaultCurrency,
		UpcomingWindowDays: DefaultUpcomingDays,
	}
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=settings
type Repository interface {
	Get(ctx context.Context, workspaceID string) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings with defaults filled in for unset fields.
func (s *Service) Get(ctx context.Context, workspaceID string) (*Settings, error) {
	st, err := s.repo.Get(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if st == nil {
		return Defaults(workspaceID), nil
	}

	st.WorkspaceID = workspaceID

	if st.Currency == "" {
		st.Currency = DefaultCurrency
	}

	if st.UpcomingWindowDays <= 0 {
		st.UpcomingWindowDays = DefaultUpcomingDays
	}

	return st, nil
}

type Params struct {
	TotalBudget        *int64
	Currency           *string
	UpcomingWindowDays *int
}

func (s *Service) Update(ctx context.Context, workspaceID string, p Params) (*Settings, error) {
	st, err := s.Get(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if p.TotalBudget != nil {
		if *p.TotalBudget < 0 {
			return nil, ErrInvalid
		}

		st.TotalBudget = *p.TotalBudget
	}

	if p.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*p.Currency))
		if len(c) != 3 {
			return nil, ErrInvalid
		}

		st.Currency = c
	}

	if p.UpcomingWindowDays != nil {
		if *p.UpcomingWindowDays < 1 || *p.UpcomingWindowDays > 365 {
			return nil, ErrInvalid
		}

		st.UpcomingWindowDays = *p.UpcomingWindowDays
	}

	st.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, st); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}

	return st, nil
}
