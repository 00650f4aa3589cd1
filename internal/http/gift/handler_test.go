package gift_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/gift"
	contributorhttp "github.com/weddingledger/planner/internal/http/contributor"
	handler "github.com/weddingledger/planner/internal/http/gift"
	"github.com/weddingledger/planner/internal/importer"
	"github.com/weddingledger/planner/internal/ledger"
	"github.com/weddingledger/planner/internal/settings"
)

type fixture struct {
	repo         *gift.MockRepository
	contributors *gift.MockChecker
	expenses     *gift.MockChecker
	importC      *importer.MockContributors
	importG      *importer.MockGifts
	router       http.Handler
}

func newFixture(ctrl *gomock.Controller) *fixture {
	f := &fixture{
		repo:         gift.NewMockRepository(ctrl),
		contributors: gift.NewMockChecker(ctrl),
		expenses:     gift.NewMockChecker(ctrl),
		importC:      importer.NewMockContributors(ctrl),
		importG:      importer.NewMockGifts(ctrl),
	}

	expenseSrc := ledger.NewMockExpenseSource(ctrl)
	contributorSrc := ledger.NewMockContributorSource(ctrl)
	giftSrc := ledger.NewMockGiftSource(ctrl)
	st := ledger.NewMockSettingsSource(ctrl)

	expenseSrc.EXPECT().List(gomock.Any(), "ws1", gomock.Any()).Return(nil, nil).AnyTimes()
	contributorSrc.EXPECT().List(gomock.Any(), "ws1").Return([]*contributor.Contributor{{ID: "c1", Name: "Tia Maria"}}, nil).AnyTimes()
	giftSrc.EXPECT().List(gomock.Any(), "ws1").Return([]*gift.Gift{{ID: "g1", ContributorID: "c1", Amount: 10000}}, nil).AnyTimes()
	giftSrc.EXPECT().ListAllocations(gomock.Any(), "ws1").Return(nil, nil).AnyTimes()
	st.EXPECT().Get(gomock.Any(), "ws1").Return(settings.Defaults("ws1"), nil).AnyTimes()

	lg := ledger.NewService(expenseSrc, contributorSrc, giftSrc, st)
	h := handler.NewHandler(gift.NewService(f.repo, f.contributors, f.expenses), lg, importer.NewService(f.importC, f.importG))

	r := chi.NewRouter()
	r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
		r.Route("/gifts", h.Routes)
		r.Route("/contributors", contributorhttp.NewHandler(contributor.NewService(contributor.NewMockRepository(ctrl)), lg, h).Routes)
	})
	f.router = r

	return f
}

func serve(router http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
	}

	return rec, body
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		setupMock  func(f *fixture)
		wantStatus int
		wantGiver  string
	}{
		{
			name:       "comma decimal is not a JSON amount",
			path:       "/workspaces/ws1/gifts/",
			body:       `{"fromName":"Neighbours","amount":"50,00","date":"2026-05-01"}`,
			setupMock:  func(f *fixture) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "free text giver",
			path: "/workspaces/ws1/gifts/",
			body: `{"fromName":"Neighbours","amount":"50.00","date":"2026-05-01","allocations":[{"expenseId":"e1","amount":3000}]}`,
			setupMock: func(f *fixture) {
				f.expenses.EXPECT().Exists(gomock.Any(), "ws1", "e1").Return(true, nil)
				f.repo.EXPECT().CreateWithAllocations(gomock.Any(), gomock.Any(), gomock.Len(1)).
					DoAndReturn(func(_ context.Context, g *gift.Gift, _ []*gift.Allocation) error {
						g.ID = "g2"
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantGiver:  "Neighbours",
		},
		{
			name: "over allocated",
			path: "/workspaces/ws1/gifts/",
			body: `{"fromName":"Neighbours","amount":1000,"date":"2026-05-01","allocations":[{"expenseId":"e1","amount":600},{"expenseId":"e1","amount":600}]}`,
			setupMock: func(f *fixture) {
				f.expenses.EXPECT().Exists(gomock.Any(), "ws1", "e1").Return(true, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "on behalf of a contributor",
			path: "/workspaces/ws1/contributors/c1/gifts/",
			body: `{"fromName":"ignored","amount":2500,"date":"2026-05-01"}`,
			setupMock: func(f *fixture) {
				f.contributors.EXPECT().Exists(gomock.Any(), "ws1", "c1").Return(true, nil)
				f.repo.EXPECT().CreateWithAllocations(gomock.Any(), gomock.Any(), gomock.Len(0)).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantGiver:  "Tia Maria",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newFixture(ctrl)

			tt.setupMock(f)

			rec, body := serve(f.router, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, tt.wantGiver, body["giver"])
			}
		})
	}
}

func TestHandler_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.importC.EXPECT().List(gomock.Any(), "ws1").Return([]*contributor.Contributor{{ID: "c1", Name: "Tia Maria"}}, nil)
	f.importG.EXPECT().AddToContributor(gomock.Any(), "ws1", "c1", gomock.Any(), gomock.Nil()).
		Return(&gift.Gift{ID: "g1", ContributorID: "c1", Amount: 10000}, nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "gifts.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name;amount;date\nTia Maria;100,00;01-05-2026\n;20\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/workspaces/ws1/gifts/import", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec, body := serve(f.router, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	gifts := body["gifts"].([]any)
	require.Len(t, gifts, 1)
	assert.Equal(t, "Tia Maria", gifts[0].(map[string]any)["giver"])
	assert.Len(t, body["skipped"], 1)
	assert.Empty(t, body["newContributors"])
}

func TestHandler_Import_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	req := httptest.NewRequest(http.MethodPost, "/workspaces/ws1/gifts/import", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")

	rec, _ := serve(f.router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
