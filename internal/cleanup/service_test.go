package cleanup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/cleanup"
)

func TestJobsFor(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	jobs := cleanup.JobsFor("ws1", now)
	require.NotEmpty(t, jobs)

	seen := map[string]bool{}

	for _, j := range jobs {
		assert.Equal(t, "ws1", j.WorkspaceID)
		assert.Equal(t, cleanup.JobID("ws1", j.Collection), j.ID)
		assert.Equal(t, now, j.CreatedAt)
		assert.False(t, seen[j.ID], "duplicate job %s", j.ID)
		seen[j.ID] = true

		if j.Scope == cleanup.ScopeTopLevel {
			assert.Equal(t, "workspaceId", j.Field)
		}
	}

	for _, c := range []string{"expenses", "contributors", "gifts", "giftAllocations", "customCategories", "settings", "invitations"} {
		assert.True(t, seen[cleanup.JobID("ws1", c)], "missing job for %s", c)
	}

	assert.False(t, seen[cleanup.JobID("ws1", "notifications")])
}

func TestService_Drain(t *testing.T) {
	jobA := &cleanup.Job{ID: "ws1_expenses", WorkspaceID: "ws1", Collection: "expenses", Scope: cleanup.ScopeSubcollection}
	jobB := &cleanup.Job{ID: "ws1_gifts", WorkspaceID: "ws1", Collection: "gifts", Scope: cleanup.ScopeSubcollection, Attempts: 2}

	type testCase struct {
		name      string
		setupMock func(m *cleanup.MockRepository)
		want      *cleanup.Report
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Empty",
			setupMock: func(m *cleanup.MockRepository) {
				m.EXPECT().Pending(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			want: &cleanup.Report{},
		},
		{
			name: "CompletesAndRetries",
			setupMock: func(m *cleanup.MockRepository) {
				m.EXPECT().Pending(gomock.Any(), gomock.Any()).Return([]*cleanup.Job{jobA, jobB}, nil)
				m.EXPECT().Purge(gomock.Any(), jobA, 500).Return(12, nil)
				m.EXPECT().Complete(gomock.Any(), "ws1_expenses").Return(nil)
				m.EXPECT().Purge(gomock.Any(), jobB, 500).Return(500, errors.New("deadline exceeded"))
				m.EXPECT().Fail(gomock.Any(), "ws1_gifts", "deadline exceeded").Return(nil)
			},
			want: &cleanup.Report{Jobs: 2, Completed: 1, Failed: 1, Deleted: 512},
		},
		{
			name: "PendingError",
			setupMock: func(m *cleanup.MockRepository) {
				m.EXPECT().Pending(gomock.Any(), gomock.Any()).Return(nil, errors.New("unavailable"))
			},
			wantErr: true,
		},
		{
			name: "CompleteError",
			setupMock: func(m *cleanup.MockRepository) {
				m.EXPECT().Pending(gomock.Any(), gomock.Any()).Return([]*cleanup.Job{jobA}, nil)
				m.EXPECT().Purge(gomock.Any(), jobA, 500).Return(0, nil)
				m.EXPECT().Complete(gomock.Any(), "ws1_expenses").Return(errors.New("unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := cleanup.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := cleanup.NewService(repo, 500)
			got, err := svc.Drain(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
