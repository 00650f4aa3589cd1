package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/weddingledger/planner/internal/workspace"
	"github.com/weddingledger/planner/internal/workspace/store"
)

func TestDecodeWorkspace(t *testing.T) {
	created := time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC)
	wedding := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		data map[string]any
		want *workspace.Workspace
	}{
		{
			name: "MigratedStringDates",
			data: map[string]any{
				"coupleNames":       "Ana & Ben",
				"userId":            "u1",
				"ownerEmail":        "ana@example.com",
				"weddingDate":       "2026-09-12",
				"membersCount":      float64(2),
				"originalWeddingId": "w1",
				"createdAt":         "2025-11-02T08:00:00Z",
				"updatedAt":         map[string]any{"_seconds": float64(created.Unix())},
			},
			want: &workspace.Workspace{
				ID:                "w1",
				Name:              "Ana & Ben",
				CoupleNames:       "Ana & Ben",
				OwnerID:           "u1",
				OwnerEmail:        "ana@example.com",
				WeddingDate:       &wedding,
				MembersCount:      2,
				OriginalWeddingID: "w1",
				CreatedAt:         created,
				UpdatedAt:         created,
			},
		},
		{
			name: "NativeTimestamps",
			data: map[string]any{
				"name":         "Our Day",
				"ownerId":      "u1",
				"membersCount": int64(1),
				"createdAt":    created,
				"updatedAt":    created,
			},
			want: &workspace.Workspace{
				ID:           "w1",
				Name:         "Our Day",
				OwnerID:      "u1",
				MembersCount: 1,
				CreatedAt:    created,
				UpdatedAt:    created,
			},
		},
		{
			name: "MistypedFields",
			data: map[string]any{"name": 42, "weddingDate": "soon", "createdAt": true},
			want: &workspace.Workspace{ID: "w1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.DecodeWorkspace("w1", tt.data))
		})
	}
}

func TestDecodeMember(t *testing.T) {
	joined := time.Date(2025, 11, 2, 8, 0, 0, 0, time.UTC)

	got := store.DecodeMember("w1_u2", map[string]any{
		"workspaceId": "w1",
		"userId":      "u2",
		"name":        "Ben",
		"email":       "ben@example.com",
		"role":        "editor",
		"joinedAt":    "2025-11-02T08:00:00Z",
	})

	assert.Equal(t, &workspace.Member{
		ID:          "w1_u2",
		WorkspaceID: "w1",
		UserID:      "u2",
		DisplayName: "Ben",
		Email:       "ben@example.com",
		Role:        workspace.RoleEditor,
		JoinedAt:    joined,
	}, got)
}
