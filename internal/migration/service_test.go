package migration_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/docstore"
	"github.com/weddingledger/planner/internal/migration"
	"github.com/weddingledger/planner/internal/workspace"
)

var (
	fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	owner    = auth.Identity{UserID: "u1", Email: "ana@example.com", DisplayName: "Ana"}
)

func newService(repo migration.Repository) *migration.Service {
	return migration.NewService(repo, migration.WithClock(func() time.Time { return fixedNow }))
}

func TestMapRole(t *testing.T) {
	tests := []struct {
		legacy string
		want   workspace.Role
		ok     bool
	}{
		{legacy: "owner", ok: false},
		{legacy: "Editor", want: workspace.RoleEditor, ok: true},
		{legacy: "admin", want: workspace.RoleEditor, ok: true},
		{legacy: "viewer", want: workspace.RoleViewer, ok: true},
		{legacy: "", want: workspace.RoleViewer, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.legacy, func(t *testing.T) {
			got, ok := migration.MapRole(tt.legacy)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_MigrateUser_AlreadyMigrated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().GetRecord(gomock.Any(), "u1").Return(&migration.Record{UserID: "u1", Migrated: true, Workspaces: []string{"w1"}}, nil)

	report, err := newService(repo).MigrateUser(context.Background(), owner)
	require.NoError(t, err)
	assert.True(t, report.Skipped)
	assert.Equal(t, []string{"w1"}, report.Workspaces)
}

func TestService_MigrateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().GetRecord(gomock.Any(), "u1").Return(nil, nil)
	repo.EXPECT().LegacyWeddings(gomock.Any(), "u1").Return([]*migration.Wedding{{ID: "w1", CoupleNames: "Ana & Ben"}}, nil)
	repo.EXPECT().LegacyMembers(gomock.Any(), "w1").Return([]*migration.LegacyMember{
		{UserID: "u1", Role: "owner"},
		{UserID: "u2", Role: "admin", DisplayName: "Ben"},
		{UserID: "u3", Role: "owner"},
		{UserID: "u2", Role: "viewer"},
		{UserID: "u4"},
	}, nil)

	repo.EXPECT().SaveWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ws *workspace.Workspace, members []*workspace.Member) error {
			assert.Equal(t, "w1", ws.ID)
			assert.Equal(t, "w1", ws.OriginalWeddingID)
			assert.Equal(t, "Ana & Ben", ws.Name)
			assert.Equal(t, "u1", ws.OwnerID)
			assert.Equal(t, 3, ws.MembersCount)
			require.Len(t, members, 3)
			assert.Equal(t, workspace.RoleOwner, members[0].Role)
			assert.Equal(t, "w1_u1", members[0].ID)
			assert.Equal(t, workspace.RoleEditor, members[1].Role)
			assert.Equal(t, workspace.RoleViewer, members[2].Role)
			return nil
		})

	for _, coll := range docstore.Dependent {
		if coll == docstore.Gifts {
			repo.EXPECT().CopyCollection(gomock.Any(), "w1", "w1", coll).Return(3, errors.New("quota"))
			continue
		}

		repo.EXPECT().CopyCollection(gomock.Any(), "w1", "w1", coll).Return(2, nil)
	}

	repo.EXPECT().FlattenContributorGifts(gomock.Any(), "w1").Return(4, nil)

	repo.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *migration.Record) error {
		assert.True(t, r.Migrated)
		assert.Equal(t, fixedNow, r.MigratedAt)
		assert.Equal(t, []string{"w1"}, r.Workspaces)
		return nil
	})

	report, err := newService(repo).MigrateUser(context.Background(), owner)
	require.NoError(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, report.Collections, len(docstore.Dependent)+1)

	for _, c := range report.Collections {
		switch c.Collection {
		case docstore.Gifts:
			assert.Equal(t, "quota", c.Error)
			assert.Equal(t, 3, c.Copied)
		case migration.ContributorGifts:
			assert.Empty(t, c.Error)
			assert.Equal(t, 4, c.Copied)
		}
	}
}

func TestService_MigrateUser_ContributorGifts(t *testing.T) {
	tests := []struct {
		name       string
		flattenErr error
		wantErr    error
		wantFailed int
	}{
		{name: "Flattened"},
		{name: "FailureIsReported", flattenErr: errors.New("unavailable"), wantFailed: 1},
		{name: "CanceledAborts", flattenErr: context.Canceled, wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := migration.NewMockRepository(ctrl)
			repo.EXPECT().GetRecord(gomock.Any(), "u1").Return(nil, nil)
			repo.EXPECT().LegacyWeddings(gomock.Any(), "u1").Return([]*migration.Wedding{{ID: "w1"}}, nil)
			repo.EXPECT().LegacyMembers(gomock.Any(), "w1").Return(nil, nil)
			repo.EXPECT().SaveWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			copied := repo.EXPECT().CopyCollection(gomock.Any(), "w1", "w1", gomock.Any()).Return(1, nil).Times(len(docstore.Dependent))
			repo.EXPECT().FlattenContributorGifts(gomock.Any(), "w1").Return(2, tt.flattenErr).After(copied)

			if tt.wantErr == nil {
				repo.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)
			}

			report, err := newService(repo).MigrateUser(context.Background(), owner)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFailed, report.Failed)

			last := report.Collections[len(report.Collections)-1]
			assert.Equal(t, migration.ContributorGifts, last.Collection)
			assert.Equal(t, "w1", last.WorkspaceID)
			assert.Equal(t, 2, last.Copied)
		})
	}
}

func TestService_RunFull_NoLegacyData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().LegacyWeddings(gomock.Any(), "u1").Return(nil, nil)
	repo.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(nil)

	report, err := newService(repo).RunFull(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, report.Workspaces)
}

func TestService_RunFull_SaveWorkspaceFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().LegacyWeddings(gomock.Any(), "u1").Return([]*migration.Wedding{{ID: "w1"}}, nil)
	repo.EXPECT().LegacyMembers(gomock.Any(), "w1").Return(nil, nil)
	repo.EXPECT().SaveWorkspace(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("unavailable"))

	_, err := newService(repo).RunFull(context.Background(), owner)
	assert.ErrorContains(t, err, "saving workspace for w1")
}

func TestService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().GetRecord(gomock.Any(), "u9").Return(nil, nil)

	rec, err := newService(repo).Status(context.Background(), "u9")
	require.NoError(t, err)
	assert.Equal(t, &migration.Record{UserID: "u9"}, rec)
}
