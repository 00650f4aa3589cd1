package preference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/preference"
)

func TestService_Get_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := preference.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "u1").Return(nil, nil)

	p, err := preference.NewService(repo, preference.NewMockMemberChecker(ctrl)).Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &preference.Preferences{UserID: "u1"}, p)
}

func TestService_Update(t *testing.T) {
	type testCase struct {
		name      string
		params    preference.UpdateParams
		setupMock func(r *preference.MockRepository, m *preference.MockMemberChecker)
		wantWS    string
		wantSetup bool
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "SelectWorkspaceAsMember",
			params: preference.UpdateParams{CurrentWorkspaceID: new("ws1"), HasCompletedSetup: new(true)},
			setupMock: func(r *preference.MockRepository, m *preference.MockMemberChecker) {
				r.EXPECT().Get(gomock.Any(), "u1").Return(nil, nil)
				m.EXPECT().IsMember(gomock.Any(), "ws1", "u1").Return(true, nil)
				r.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantWS:    "ws1",
			wantSetup: true,
		},
		{
			name:   "SelectForeignWorkspace",
			params: preference.UpdateParams{CurrentWorkspaceID: new("ws9")},
			setupMock: func(r *preference.MockRepository, m *preference.MockMemberChecker) {
				r.EXPECT().Get(gomock.Any(), "u1").Return(&preference.Preferences{CurrentWorkspaceID: "ws1"}, nil)
				m.EXPECT().IsMember(gomock.Any(), "ws9", "u1").Return(false, nil)
			},
			wantErr: preference.ErrNotMember,
		},
		{
			name:   "ClearWorkspace",
			params: preference.UpdateParams{CurrentWorkspaceID: new("")},
			setupMock: func(r *preference.MockRepository, _ *preference.MockMemberChecker) {
				r.EXPECT().Get(gomock.Any(), "u1").Return(&preference.Preferences{CurrentWorkspaceID: "ws1", HasCompletedSetup: true}, nil)
				r.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantWS:    "",
			wantSetup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := preference.NewMockRepository(ctrl)
			members := preference.NewMockMemberChecker(ctrl)
			tt.setupMock(repo, members)

			got, err := preference.NewService(repo, members).Update(context.Background(), "u1", tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "u1", got.UserID)
			assert.Equal(t, tt.wantWS, got.CurrentWorkspaceID)
			assert.Equal(t, tt.wantSetup, got.HasCompletedSetup)
			assert.False(t, got.UpdatedAt.IsZero())
		})
	}
}
