// Package export renders workspace ledgers as spreadsheets.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrArchiveDisabled = errors.New("export archiving is not configured")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=export
type SummarySource interface {
	Summary(ctx context.Context, workspaceID string) (*ledger.Summary, *settings.Settings, error)
}

type Archiver interface {
	Upload(ctx context.Context, object, contentType string, data []byte) (string, error)
}

type Service struct {
	ledger   SummarySource
	archiver Archiver
	now      func() time.Time
}

// NewService creates the export service. archiver may be nil, which disables
// Archive.
func NewService(ledger SummarySource, archiver Archiver) *Service {
	return &Service{ledger: ledger, archiver: archiver, now: time.Now}
}

// File is a rendered workbook.
type File struct {
	Name string
	Data []byte
}

func (s *Service) Workbook(ctx context.Context, workspaceID string) (*File, error) {
	sum, st, err := s.ledger.Summary(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("building ledger: %w", err)
	}

	now := s.now().UTC()

	f, err := Workbook(sum, now, st.UpcomingWindowDays)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	return &File{
		Name: fmt.Sprintf("wedding-budget-%s.xlsx", now.Format("20060102")),
		Data: buf.Bytes(),
	}, nil
}

// Archive renders the workbook and uploads it, returning the object URL.
func (s *Service) Archive(ctx context.Context, workspaceID string) (string, error) {
	if s.archiver == nil {
		return "", ErrArchiveDisabled
	}

	f, err := s.Workbook(ctx, workspaceID)
	if err != nil {
		return "", err
	}

	object := fmt.Sprintf("exports/%s/%s", workspaceID, f.Name)

	url, err := s.archiver.Upload(ctx, object, ContentType, f.Data)
	if err != nil {
		return "", fmt.Errorf("archiving export: %w", err)
	}

	return url, nil
}
