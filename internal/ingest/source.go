package ingest

import (
	"encoding/json"
	"time"
)

// IDKind selects which field serves as a source's monotonic identifier.
type IDKind int

const (
	// IDByNumber uses the numeric "id" field (most sources).
	IDByNumber IDKind = iota
	// IDByCreateTime uses createTime in Unix milliseconds; mini-game
	// sources report no numeric id.
	IDByCreateTime
)

// Source identifies one paginated endpoint and its watermark entry.
type Source struct {
	Key    string // stable key, also the blob name prefix
	URL    string // endpoint URL without query parameters
	IDKind IDKind
}

// itemProbe is the minimal view needed to order items.
type itemProbe struct {
	ID         int64     `json:"id"`
	CreateTime time.Time `json:"createTime"`
}

// itemID extracts the monotonic identifier from a raw item. Items that do
// not decode sort as 0, which is never newer than any watermark.
func itemID(raw json.RawMessage, kind IDKind) int64 {
	var probe itemProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0
	}
	if kind == IDByCreateTime {
		if probe.CreateTime.IsZero() {
			return 0
		}
		return probe.CreateTime.UnixMilli()
	}
	return probe.ID
}
