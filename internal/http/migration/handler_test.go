package migration_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/auth"
	handler "github.com/weddingledger/planner/internal/http/migration"
	"github.com/weddingledger/planner/internal/migration"
)

func newRouter(repo *migration.MockRepository) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{UserID: "u1"})))
		})
	})
	r.Route("/migration", handler.NewHandler(migration.NewService(repo)).Routes)

	return r
}

func TestHandler_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().GetRecord(gomock.Any(), "u1").Return(nil, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/migration/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"migrated":false,"workspaces":[]}`, rec.Body.String())
}

func TestHandler_Migrate_AlreadyMigrated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := migration.NewMockRepository(ctrl)
	repo.EXPECT().GetRecord(gomock.Any(), "u1").Return(&migration.Record{
		UserID:     "u1",
		Migrated:   true,
		MigratedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Workspaces: []string{"w1"},
	}, nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/migration/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report migration.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.True(t, report.Skipped)
	assert.Equal(t, []string{"w1"}, report.Workspaces)
}
