package docstore

import (
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Time normalizes the timestamp shapes found in stored documents: native
// timestamps, ISO strings, serialized {seconds, nanoseconds} maps and epoch
// milliseconds. The result is always UTC.
func Time(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}

		return t.UTC(), !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}

		return time.Time{}, false
	case map[string]any:
		secs, ok := number(t["seconds"])
		if !ok {
			secs, ok = number(t["_seconds"])
		}

		if !ok {
			return time.Time{}, false
		}

		nanos, _ := number(t["nanoseconds"])
		if nanos == 0 {
			nanos, _ = number(t["_nanoseconds"])
		}

		return time.Unix(secs, nanos).UTC(), true
	default:
		ms, ok := number(v)
		if !ok || ms <= 0 {
			return time.Time{}, false
		}

		return time.UnixMilli(ms).UTC(), true
	}
}

// TimePtr is Time for optional fields.
func TimePtr(v any) *time.Time {
	t, ok := Time(v)
	if !ok {
		return nil
	}

	return &t
}

func number(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	default:
		return 0, false
	}
}

// String reads a string field, tolerating absent or mistyped values.
func String(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := data[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	return ""
}

// Int64 reads a numeric field stored as any integer or float type.
func Int64(data map[string]any, key string) int64 {
	n, _ := number(data[key])
	return n
}
