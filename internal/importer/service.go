// Package importer turns uploaded gift lists into gifts, matching givers to
// existing contributors.
package importer

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/gift"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Contributors interface {
	List(ctx context.Context, workspaceID string) ([]*contributor.Contributor, error)
	Create(ctx context.Context, workspaceID string, p contributor.Params) (*contributor.Contributor, error)
}

type Gifts interface {
	AddToContributor(ctx context.Context, workspaceID, contributorID string, p gift.Params, allocs []gift.AllocationParams) (*gift.Gift, []*gift.Allocation, error)
}

type Service struct {
	contributors Contributors
	gifts        Gifts
	now          func() time.Time
}

func NewService(contributors Contributors, gifts Gifts) *Service {
	return &Service{contributors: contributors, gifts: gifts, now: time.Now}
}

type Result struct {
	Gifts           []*gift.Gift
	NewContributors []*contributor.Contributor
	Skipped         []RowError
}

// Import parses r and records one gift per valid line. Rows are processed in
// order; an error aborts the import leaving earlier gifts in place.
func (s *Service) Import(ctx context.Context, workspaceID string, r io.Reader) (*Result, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	rows, skipped, err := Parse(r, today)
	if err != nil {
		return nil, err
	}

	existing, err := s.contributors.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing contributors: %w", err)
	}

	m := newMatcher(existing)
	res := &Result{Skipped: skipped}

	for _, row := range rows {
		c := m.match(row.Name)
		if c == nil {
			c, err = s.contributors.Create(ctx, workspaceID, contributor.Params{Name: row.Name})
			if err != nil {
				return res, fmt.Errorf("line %d: creating contributor: %w", row.Line, err)
			}

			m.add(c)
			res.NewContributors = append(res.NewContributors, c)
		}

		g, _, err := s.gifts.AddToContributor(ctx, workspaceID, c.ID, gift.Params{
			Amount: row.Amount,
			Date:   row.Date,
			Notes:  row.Notes,
		}, nil)
		if err != nil {
			return res, fmt.Errorf("line %d: adding gift: %w", row.Line, err)
		}

		res.Gifts = append(res.Gifts, g)
	}

	return res, nil
}
