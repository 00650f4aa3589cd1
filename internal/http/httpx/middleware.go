package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/workspace"
)

// WorkspaceParam is the route parameter carrying the workspace id.
const WorkspaceParam = "workspaceID"

// Authenticate verifies the bearer token and stores the identity in the
// request context.
func Authenticate(v auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			id, err := v.Verify(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")

	scheme, token, ok := strings.Cut(h, " ")
	if ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), true
	}

	// EventSource cannot set headers.
	if t := r.URL.Query().Get("access_token"); t != "" && r.Header.Get("Accept") == "text/event-stream" {
		return t, true
	}

	return "", false
}

// Identity returns the caller. It must only be used behind Authenticate.
func Identity(r *http.Request) auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}

type Authorizer interface {
	Authorize(ctx context.Context, workspaceID, userID string, write bool) (*workspace.Member, error)
}

type memberKey struct{}

// WorkspaceAccess resolves the caller's membership of the workspace in the
// route. Safe methods need any role; everything else needs write access.
func WorkspaceAccess(a Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wsID := chi.URLParam(r, WorkspaceParam)
			if wsID == "" {
				http.Error(w, "missing workspace", http.StatusBadRequest)
				return
			}

			m, err := a.Authorize(r.Context(), wsID, Identity(r).UserID, !safe(r.Method))
			if err != nil {
				Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), memberKey{}, m)))
		})
	}
}

func safe(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// Member returns the membership resolved by WorkspaceAccess.
func Member(r *http.Request) *workspace.Member {
	m, _ := r.Context().Value(memberKey{}).(*workspace.Member)
	return m
}

// WorkspaceID returns the workspace id from the route.
func WorkspaceID(r *http.Request) string {
	return chi.URLParam(r, WorkspaceParam)
}
