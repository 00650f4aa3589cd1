package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=cleanup
type Repository interface {
	Pending(ctx context.Context, limit int) ([]*Job, error)
	Purge(ctx context.Context, job *Job, batchSize int) (int, error)
	Complete(ctx context.Context, id string) error
	Fail(ctx context.Context, id string, cause string) error
}

type Service struct {
	repo      Repository
	batchSize int
	jobLimit  int
}

func NewService(repo Repository, batchSize int) *Service {
	return &Service{repo: repo, batchSize: batchSize, jobLimit: 50}
}

type Report struct {
	Jobs      int
	Completed int
	Failed    int
	Deleted   int
}

// Drain processes one page of pending jobs. A job that fails stays in the
// outbox with its attempt count bumped and is retried on the next drain.
func (s *Service) Drain(ctx context.Context) (*Report, error) {
	jobs, err := s.repo.Pending(ctx, s.jobLimit)
	if err != nil {
		return nil, fmt.Errorf("listing cleanup jobs: %w", err)
	}

	report := &Report{Jobs: len(jobs)}

	for _, job := range jobs {
		n, err := s.repo.Purge(ctx, job, s.batchSize)
		report.Deleted += n

		if err != nil {
			report.Failed++

			slog.Warn("cleanup job failed",
				"workspace_id", job.WorkspaceID,
				"collection", job.Collection,
				"attempts", job.Attempts+1,
				"error", err,
			)

			if ferr := s.repo.Fail(ctx, job.ID, err.Error()); ferr != nil {
				return report, fmt.Errorf("recording failure of job %s: %w", job.ID, ferr)
			}

			continue
		}

		if err := s.repo.Complete(ctx, job.ID); err != nil {
			return report, fmt.Errorf("completing job %s: %w", job.ID, err)
		}

		report.Completed++
	}

	return report, nil
}

// Run drains the outbox every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := s.Drain(ctx)
		if err != nil {
			slog.Error("failed to drain cleanup outbox", "error", err)
		} else if report.Jobs > 0 {
			slog.Info("cleanup outbox drained",
				"jobs", report.Jobs,
				"completed", report.Completed,
				"failed", report.Failed,
				"deleted", report.Deleted,
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
