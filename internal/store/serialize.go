package store

import (
	"time"
)

// Serialize converts a stored document into its wire form: the internal
// "_id" becomes a string "id", and every timestamp value is rendered as an
// ISO-8601 UTC string. A nil document passes through unchanged.
func Serialize(doc Document) map[string]any {
	if doc == nil {
		return nil
	}

	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = normalizeValue(v)
	}

	if id, ok := doc["_id"].(string); ok && id != "" {
		out["id"] = id
	} else {
		out["id"] = nil
	}
	return out
}

// normalizeValue renders timestamps as RFC3339 UTC strings. Postgres returns
// timestamps as JSON strings while the in-memory store keeps time.Time
// values; both end up in the same wire format.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339Nano)
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed.UTC().Format(time.RFC3339Nano)
		}
		return t
	default:
		return v
	}
}
