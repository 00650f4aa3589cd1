package contributor_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/gift"
	handler "github.com/weddingledger/planner/internal/http/contributor"
	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
)

func newRouter(ctrl *gomock.Controller, repo *contributor.MockRepository) http.Handler {
	expenses := ledger.NewMockExpenseSource(ctrl)
	contributors := ledger.NewMockContributorSource(ctrl)
	gifts := ledger.NewMockGiftSource(ctrl)
	st := ledger.NewMockSettingsSource(ctrl)

	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	expenses.EXPECT().List(gomock.Any(), "ws1", gomock.Any()).Return([]*expense.Expense{{
		ID:          "e1",
		TotalAmount: 50000,
		PaymentAllocations: []expense.PaymentAllocation{
			{ID: "p1", ContributorID: "c1", Amount: 4000, Date: day},
		},
	}}, nil).AnyTimes()
	contributors.EXPECT().List(gomock.Any(), "ws1").Return([]*contributor.Contributor{
		{ID: "c1", Name: "Tia Maria"},
		{ID: "c2", Name: "Rui"},
	}, nil).AnyTimes()
	gifts.EXPECT().List(gomock.Any(), "ws1").Return([]*gift.Gift{
		{ID: "g1", ContributorID: "c1", Amount: 10000, Date: day},
	}, nil).AnyTimes()
	gifts.EXPECT().ListAllocations(gomock.Any(), "ws1").Return([]*gift.Allocation{
		{ID: "a1", GiftID: "g1", ExpenseID: "e1", Amount: 3000},
	}, nil).AnyTimes()
	st.EXPECT().Get(gomock.Any(), "ws1").Return(settings.Defaults("ws1"), nil).AnyTimes()

	h := handler.NewHandler(contributor.NewService(repo), ledger.NewService(expenses, contributors, gifts, st), nil)

	r := chi.NewRouter()
	r.Route("/workspaces/{workspaceID}/contributors", h.Routes)

	return r
}

func TestHandler_List_Balances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := httptest.NewRecorder()
	newRouter(ctrl, contributor.NewMockRepository(ctrl)).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workspaces/ws1/contributors/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 2)

	// Direct payment 4000 plus the gift-derived 3000.
	assert.EqualValues(t, 10000, body[0]["totalGifts"])
	assert.EqualValues(t, 7000, body[0]["spent"])
	assert.EqualValues(t, 3000, body[0]["available"])
	assert.EqualValues(t, 0, body[1]["available"])
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(repo *contributor.MockRepository)
		wantStatus int
	}{
		{
			name:       "create requires a name",
			method:     http.MethodPost,
			path:       "/workspaces/ws1/contributors/",
			body:       `{"name":"  "}`,
			setupMock:  func(repo *contributor.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/workspaces/ws1/contributors/",
			body:   `{"name":"Avó Rosa"}`,
			setupMock: func(repo *contributor.MockRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown contributor",
			method:     http.MethodGet,
			path:       "/workspaces/ws1/contributors/c9/",
			setupMock:  func(repo *contributor.MockRepository) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/workspaces/ws1/contributors/c2/",
			setupMock: func(repo *contributor.MockRepository) {
				repo.EXPECT().Delete(gomock.Any(), "ws1", "c2").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contributor.NewMockRepository(ctrl)
			tt.setupMock(repo)

			rec := httptest.NewRecorder()
			newRouter(ctrl, repo).ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}
