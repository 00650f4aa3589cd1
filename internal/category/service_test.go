package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/category"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    category.Params
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: category.Params{Name: " Photography ", Color: "#AA00ff"},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().List(gomock.Any(), "ws1").Return([]*category.Category{{ID: "c1", Name: "Venue"}}, nil)
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "Duplicate",
			params: category.Params{Name: "venue"},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().List(gomock.Any(), "ws1").Return([]*category.Category{{ID: "c1", Name: "Venue"}}, nil)
			},
			wantErr: category.ErrDuplicate,
		},
		{
			name:    "BadColor",
			params:  category.Params{Name: "Music", Color: "red"},
			wantErr: category.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			c, err := category.NewService(repo).Create(context.Background(), "ws1", tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Photography", c.Name)
		})
	}
}

func TestService_Update_KeepsOwnName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "ws1", "c1").Return(&category.Category{ID: "c1", Name: "Venue"}, nil)
	repo.EXPECT().List(gomock.Any(), "ws1").Return([]*category.Category{{ID: "c1", Name: "Venue"}}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	c, err := category.NewService(repo).Update(context.Background(), "ws1", "c1", category.Params{Name: "VENUE", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "VENUE", c.Name)
}
