package settings_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	handler "github.com/weddingledger/planner/internal/http/settings"
	"github.com/weddingledger/planner/internal/settings"
)

func newRouter(repo *settings.MockRepository) http.Handler {
	r := chi.NewRouter()
	r.Route("/workspaces/{workspaceID}/settings", handler.NewHandler(settings.NewService(repo)).Routes)

	return r
}

func TestHandler_Get_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settings.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), "ws1").Return(nil, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workspaces/ws1/settings/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "EUR", body["currency"])
	assert.EqualValues(t, 30, body["upcomingWindowDays"])
	assert.NotContains(t, body, "updatedAt")
}

func TestHandler_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(repo *settings.MockRepository)
		wantStatus int
		wantBudget float64
	}{
		{
			name: "decimal budget",
			body: `{"totalBudget":"25000.50","currency":"usd"}`,
			setupMock: func(repo *settings.MockRepository) {
				repo.EXPECT().Get(gomock.Any(), "ws1").Return(nil, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBudget: 2500050,
		},
		{
			name: "window out of range",
			body: `{"upcomingWindowDays":0}`,
			setupMock: func(repo *settings.MockRepository) {
				repo.EXPECT().Get(gomock.Any(), "ws1").Return(nil, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := settings.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := httptest.NewRecorder()
			newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/workspaces/ws1/settings/", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.EqualValues(t, tt.wantBudget, body["totalBudget"])
				assert.Equal(t, "USD", body["currency"])
			}
		})
	}
}
