package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/weddingledger/planner/internal/http/httpx"
	"github.com/weddingledger/planner/internal/live"
	"github.com/weddingledger/planner/internal/workspace"
)

const keepAlive = 25 * time.Second

// events streams the caller's workspace list as Server-Sent Events. A
// "workspaces" event carries the full list after every change and a
// "state" event reports the subscription state.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var (
		mu     sync.Mutex
		latest []*workspace.UserWorkspace
		states []live.State
	)

	wake := make(chan struct{}, 1)
	signal := func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	}

	done := make(chan error, 1)

	go func() {
		done <- h.svc.Watch(ctx, httpx.Identity(r).UserID,
			func(list []*workspace.UserWorkspace) {
				mu.Lock()
				latest = list
				mu.Unlock()
				signal()
			},
			func(st live.State) {
				mu.Lock()
				states = append(states, st)
				mu.Unlock()
				signal()
			})
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	flush := func() {
		mu.Lock()
		list, pending := latest, states
		latest, states = nil, nil
		mu.Unlock()

		for _, st := range pending {
			writeEvent(w, "state", st.String())
		}

		if list != nil {
			writeEvent(w, "workspaces", toUserWorkspaceList(list))
		}

		flusher.Flush()
	}

	ticker := time.NewTicker(keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()

		case err := <-done:
			// The supervisor reports the failed state before giving up.
			flush()

			if err != nil && !errors.Is(err, context.Canceled) {
				slog.Warn("workspace stream ended", "user_id", httpx.Identity(r).UserID, "error", err)
			}

			return

		case <-wake:
			flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode event", "event", name, "error", err)
		return
	}

	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
}
