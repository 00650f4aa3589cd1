package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/settings"
)

func TestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settings.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "ws1").Return(nil, nil)
	repo.EXPECT().Get(gomock.Any(), "ws2").Return(&settings.Settings{TotalBudget: 100}, nil)

	svc := settings.NewService(repo)

	st, err := svc.Get(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults("ws1"), st)

	st, err = svc.Get(context.Background(), "ws2")
	require.NoError(t, err)
	assert.Equal(t, int64(100), st.TotalBudget)
	assert.Equal(t, settings.DefaultCurrency, st.Currency)
	assert.Equal(t, settings.DefaultUpcomingDays, st.UpcomingWindowDays)
}

func TestService_Update(t *testing.T) {
	tests := []struct {
		name    string
		params  settings.Params
		wantErr bool
	}{
		{name: "Budget", params: settings.Params{TotalBudget: new(int64(2500000))}},
		{name: "Currency", params: settings.Params{Currency: new(" usd ")}},
		{name: "NegativeBudget", params: settings.Params{TotalBudget: new(int64(-1))}, wantErr: true},
		{name: "BadCurrency", params: settings.Params{Currency: new("euro")}, wantErr: true},
		{name: "BadWindow", params: settings.Params{UpcomingWindowDays: new(0)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settings.NewMockRepository(ctrl)
			repo.EXPECT().Get(gomock.Any(), "ws1").Return(nil, nil)

			if !tt.wantErr {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			}

			st, err := settings.NewService(repo).Update(context.Background(), "ws1", tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, settings.ErrInvalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ws1", st.WorkspaceID)

			if tt.params.Currency != nil {
				assert.Equal(t, "USD", st.Currency)
			}
		})
	}
}
