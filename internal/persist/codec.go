package persist

import (
	"encoding/json"
	"time"
)

// SQL ports share one row layout: structured fields (content payloads,
// tags, messages, link sets) are JSON text columns, timestamps are
// RFC3339Nano text rehydrated on load.

func encodeJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func decodeJSON(s string, v any) {
	if s != "" {
		json.Unmarshal([]byte(s), v)
	}
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
