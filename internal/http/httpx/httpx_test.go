package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/invitation"
	"github.com/weddingledger/planner/internal/workspace"
)

type staticVerifier map[string]auth.Identity

func (v staticVerifier) Verify(_ context.Context, token string) (auth.Identity, error) {
	id, ok := v[token]
	if !ok {
		return auth.Identity{}, auth.ErrInvalidToken
	}

	return id, nil
}

type roles map[string]workspace.Role

func (r roles) Authorize(_ context.Context, workspaceID, userID string, write bool) (*workspace.Member, error) {
	role, ok := r[userID]
	if !ok || (write && !role.CanWrite()) {
		return nil, workspace.ErrForbidden
	}

	return &workspace.Member{WorkspaceID: workspaceID, UserID: userID, Role: role}, nil
}

func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.Authenticate(staticVerifier{
		"t-owner":  {UserID: "owner"},
		"t-viewer": {UserID: "viewer"},
		"t-other":  {UserID: "other"},
	}))

	r.Route("/workspaces/{workspaceID}", func(r chi.Router) {
		r.Use(httpx.WorkspaceAccess(roles{"owner": workspace.RoleOwner, "viewer": workspace.RoleViewer}))

		handler := func(w http.ResponseWriter, r *http.Request) {
			httpx.JSON(w, http.StatusOK, map[string]string{
				"workspace": httpx.WorkspaceID(r),
				"role":      string(httpx.Member(r).Role),
				"user":      httpx.Identity(r).UserID,
			})
		}

		r.Get("/", handler)
		r.Post("/", handler)
	})

	return r
}

func TestWorkspaceAccess(t *testing.T) {
	tests := []struct {
		name   string
		method string
		token  string
		want   int
	}{
		{name: "NoToken", method: http.MethodGet, want: http.StatusUnauthorized},
		{name: "BadToken", method: http.MethodGet, token: "nope", want: http.StatusUnauthorized},
		{name: "ViewerReads", method: http.MethodGet, token: "t-viewer", want: http.StatusOK},
		{name: "ViewerWrites", method: http.MethodPost, token: "t-viewer", want: http.StatusForbidden},
		{name: "OwnerWrites", method: http.MethodPost, token: "t-owner", want: http.StatusOK},
		{name: "Stranger", method: http.MethodGet, token: "t-other", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/workspaces/ws1/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			newRouter().ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)

			if tt.want == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, "ws1", body["workspace"])
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusGone, httpx.StatusOf(fmt.Errorf("accepting: %w", invitation.ErrExpired)))
	assert.Equal(t, http.StatusForbidden, httpx.StatusOf(workspace.ErrOwnerImmutable))
	assert.Equal(t, http.StatusConflict, httpx.StatusOf(invitation.ErrNotPending))
	assert.Equal(t, http.StatusInternalServerError, httpx.StatusOf(errors.New("boom")))
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    httpx.Money
		wantErr bool
	}{
		{in: `1500`, want: 1500},
		{in: `"15.00"`, want: 1500},
		{in: `"0.125"`, want: 13},
		{in: `"abc"`, wantErr: true},
		{in: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m httpx.Money

			err := json.Unmarshal([]byte(tt.in), &m)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}
