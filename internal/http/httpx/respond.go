// Package httpx holds the response helpers and middleware shared by the API
// handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/weddingledger/planner/internal/auth"
	"github.com/weddingledger/planner/internal/category"
	"github.com/weddingledger/planner/internal/contributor"
	"github.com/weddingledger/planner/internal/expense"
	"github.com/weddingledger/planner/internal/export"
	"github.com/weddingledger/planner/internal/gift"
	"github.com/weddingledger/planner/internal/importer"
	"github.com/weddingledger/planner/internal/invitation"
	"github.com/weddingledger/planner/internal/notification"
	"github.com/weddingledger/planner/internal/preference"
	"github.com/weddingledger/planner/internal/settings"
	"github.com/weddingledger/planner/internal/workspace"
)

var statuses = []struct {
	err    error
	status int
}{
	{auth.ErrInvalidToken, http.StatusUnauthorized},

	{workspace.ErrNotFound, http.StatusNotFound},
	{workspace.ErrMemberNotFound, http.StatusNotFound},
	{invitation.ErrNotFound, http.StatusNotFound},
	{expense.ErrNotFound, http.StatusNotFound},
	{expense.ErrPaymentNotFound, http.StatusNotFound},
	{contributor.ErrNotFound, http.StatusNotFound},
	{gift.ErrNotFound, http.StatusNotFound},
	{category.ErrNotFound, http.StatusNotFound},
	{notification.ErrNotFound, http.StatusNotFound},

	{workspace.ErrForbidden, http.StatusForbidden},
	{workspace.ErrOwnerImmutable, http.StatusForbidden},
	{invitation.ErrForbidden, http.StatusForbidden},
	{preference.ErrNotMember, http.StatusForbidden},

	{workspace.ErrAlreadyMember, http.StatusConflict},
	{invitation.ErrAlreadyMember, http.StatusConflict},
	{invitation.ErrNotPending, http.StatusConflict},
	{category.ErrDuplicate, http.StatusConflict},

	{invitation.ErrExpired, http.StatusGone},
	{invitation.ErrWorkspaceGone, http.StatusGone},

	{workspace.ErrInvalidRole, http.StatusBadRequest},
	{workspace.ErrInvalidName, http.StatusBadRequest},
	{invitation.ErrInvalidEmail, http.StatusBadRequest},
	{invitation.ErrInvalidRole, http.StatusBadRequest},
	{expense.ErrInvalid, http.StatusBadRequest},
	{expense.ErrInvalidPayment, http.StatusBadRequest},
	{expense.ErrUnknownContributor, http.StatusBadRequest},
	{expense.ErrGiftPaymentReadOnly, http.StatusBadRequest},
	{contributor.ErrInvalidName, http.StatusBadRequest},
	{gift.ErrInvalid, http.StatusBadRequest},
	{gift.ErrInvalidAllocation, http.StatusBadRequest},
	{gift.ErrOverAllocated, http.StatusBadRequest},
	{gift.ErrUnknownContributor, http.StatusBadRequest},
	{gift.ErrUnknownExpense, http.StatusBadRequest},
	{category.ErrInvalid, http.StatusBadRequest},
	{settings.ErrInvalid, http.StatusBadRequest},
	{importer.ErrUnreadable, http.StatusBadRequest},

	{export.ErrArchiveDisabled, http.StatusNotImplemented},
}

// StatusOf maps a service error to an HTTP status.
func StatusOf(err error) int {
	for _, s := range statuses {
		if errors.Is(err, s.err) {
			return s.status
		}
	}

	return http.StatusInternalServerError
}

// Error writes err as a plain text response. Unknown errors are logged and
// reported as "internal error".
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON request body into v, writing a 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}
