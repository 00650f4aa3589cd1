package ledger_test

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

	"github.com/weddingledger/planner/internal/expense"
	handler "github.com/weddingledger/planner/internal/http/ledger"
	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
)

func TestHandler_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Dates are relative to the wall clock the handler reads.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	overdue := today.AddDate(0, 0, -3)
	soon := today.AddDate(0, 0, 5)
	later := today.AddDate(0, 0, 60)

	expenses := ledger.NewMockExpenseSource(ctrl)
	contributors := ledger.NewMockContributorSource(ctrl)
	gifts := ledger.NewMockGiftSource(ctrl)
	st := ledger.NewMockSettingsSource(ctrl)

	expenses.EXPECT().List(gomock.Any(), "ws1", gomock.Any()).Return([]*expense.Expense{
		{ID: "e1", Title: "Cake", TotalAmount: 500, DueDate: &soon},
		{ID: "e2", Title: "Venue", TotalAmount: 10000, DueDate: &overdue},
		{ID: "e3", Title: "Band", TotalAmount: 2000, DueDate: &later},
	}, nil)
	contributors.EXPECT().List(gomock.Any(), "ws1").Return(nil, nil)
	gifts.EXPECT().List(gomock.Any(), "ws1").Return(nil, nil)
	gifts.EXPECT().ListAllocations(gomock.Any(), "ws1").Return(nil, nil)
	st.EXPECT().Get(gomock.Any(), "ws1").Return(&settings.Settings{TotalBudget: 20000, Currency: "EUR", UpcomingWindowDays: 30}, nil)

	r := chi.NewRouter()
	r.Route("/workspaces/{workspaceID}/summary", handler.NewHandler(ledger.NewService(expenses, contributors, gifts, st)).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/workspaces/ws1/summary/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Totals   ledger.Totals `json:"totals"`
		Upcoming []struct {
			ExpenseID string `json:"expenseId"`
			Overdue   bool   `json:"overdue"`
		} `json:"upcoming"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	assert.Equal(t, int64(20000), body.Totals.Budget)
	assert.Equal(t, int64(12500), body.Totals.Planned)
	require.Len(t, body.Upcoming, 2)
	assert.Equal(t, "e2", body.Upcoming[0].ExpenseID)
	assert.True(t, body.Upcoming[0].Overdue)
	assert.Equal(t, "e1", body.Upcoming[1].ExpenseID)
	assert.False(t, body.Upcoming[1].Overdue)
}
