package docstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingledger/planner/internal/docstore"
)

func TestEmbeddedGifts(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		data map[string]any
		want []docstore.EmbeddedGift
	}{
		{
			name: "ClientShape",
			data: map[string]any{
				"gifts": []any{
					map[string]any{
						"id":          "CG1",
						"amount":      float64(200),
						"date":        "2026-05-01",
						"notes":       " envelope ",
						"allocations": []any{map[string]any{"expenseId": "E", "amount": int64(200)}},
					},
				},
			},
			want: []docstore.EmbeddedGift{{ID: "CG1", Amount: 200, Date: day, Notes: "envelope", CreatedAt: day}},
		},
		{
			name: "DateFallsBackToCreatedAt",
			data: map[string]any{
				"gifts": []any{map[string]any{"id": "CG2", "amount": int64(50), "createdAt": day}},
			},
			want: []docstore.EmbeddedGift{{ID: "CG2", Amount: 50, Date: day, CreatedAt: day}},
		},
		{
			name: "SkipsMalformed",
			data: map[string]any{
				"gifts": []any{"CG3", map[string]any{"amount": int64(10)}, nil},
			},
			want: []docstore.EmbeddedGift{},
		},
		{
			name: "NoArray",
			data: map[string]any{"name": "Ana"},
			want: []docstore.EmbeddedGift{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docstore.EmbeddedGifts(tt.data))
		})
	}
}

func TestRemoveEmbeddedGift(t *testing.T) {
	first := map[string]any{"id": "CG1", "amount": int64(200)}
	second := map[string]any{"id": "CG2", "amount": int64(75)}
	data := map[string]any{"gifts": []any{first, second}}

	g, rest, ok := docstore.RemoveEmbeddedGift(data, "CG2")
	require.True(t, ok)
	assert.Equal(t, "CG2", g.ID)
	assert.Equal(t, int64(75), g.Amount)
	assert.Equal(t, []any{first}, rest)
	assert.Len(t, data["gifts"], 2)

	_, _, ok = docstore.RemoveEmbeddedGift(data, "missing")
	assert.False(t, ok)
}

func TestEmbeddedGift_Document(t *testing.T) {
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	g := docstore.EmbeddedGift{ID: "CG1", Amount: 200, Date: day, CreatedAt: day}

	doc := g.Document("W", "C", "")

	assert.Equal(t, "W", doc["workspaceId"])
	assert.Equal(t, "C", doc["contributorId"])
	assert.Equal(t, int64(200), doc["amount"])
	assert.Equal(t, day, doc["date"])
	assert.NotContains(t, doc, "notes")
}
