package docstore

import "time"

// Fields of contributor documents written by clients that kept gifts inside
// the contributor instead of in the gifts collection.
const (
	EmbeddedGiftsField   = "gifts"
	TotalGiftAmountField = "totalGiftAmount"
)

// EmbeddedGift is one entry of a contributor's gifts array. Its ID is the id
// gift allocations reference.
type EmbeddedGift struct {
	ID        string
	Amount    int64
	Date      time.Time
	Notes     string
	CreatedAt time.Time
}

// EmbeddedGifts reads the gifts array of a contributor document. Entries
// without an id are skipped since nothing can reference them.
func EmbeddedGifts(data map[string]any) []EmbeddedGift {
	raw, _ := data[EmbeddedGiftsField].([]any)

	out := make([]EmbeddedGift, 0, len(raw))
	for _, v := range raw {
		if g, ok := embeddedGift(v); ok {
			out = append(out, g)
		}
	}

	return out
}

// RemoveEmbeddedGift finds the entry with id and returns it together with the
// gifts array left once it is removed.
func RemoveEmbeddedGift(data map[string]any, id string) (EmbeddedGift, []any, bool) {
	raw, _ := data[EmbeddedGiftsField].([]any)

	for i, v := range raw {
		g, ok := embeddedGift(v)
		if !ok || g.ID != id {
			continue
		}

		rest := make([]any, 0, len(raw)-1)
		rest = append(rest, raw[:i]...)
		rest = append(rest, raw[i+1:]...)

		return g, rest, true
	}

	return EmbeddedGift{}, nil, false
}

// Document returns the fields of the gifts/{g.ID} document equivalent to g.
func (g EmbeddedGift) Document(workspaceID, contributorID, fromName string) map[string]any {
	doc := map[string]any{
		"workspaceId":   workspaceID,
		"contributorId": contributorID,
		"fromName":      fromName,
		"amount":        g.Amount,
		"date":          g.Date,
		"createdAt":     g.CreatedAt,
		"updatedAt":     g.CreatedAt,
	}

	if g.Notes != "" {
		doc["notes"] = g.Notes
	}

	return doc
}

func embeddedGift(v any) (EmbeddedGift, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return EmbeddedGift{}, false
	}

	g := EmbeddedGift{
		ID:     String(m, "id"),
		Amount: Int64(m, "amount"),
		Notes:  String(m, "notes"),
	}

	if g.ID == "" {
		return EmbeddedGift{}, false
	}

	g.Date, _ = Time(m["date"])
	g.CreatedAt, _ = Time(m["createdAt"])

	if g.Date.IsZero() {
		g.Date = g.CreatedAt
	}

	if g.CreatedAt.IsZero() {
		g.CreatedAt = g.Date
	}

	return g, true
}
