package idea

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// StorageKey is the single key the idea list is stored under.
const StorageKey = "ideas"

// Idea is a single captured note. Ideas are immutable once created.
type Idea struct {
	// ID is the creation time in epoch milliseconds, bumped past the newest
	// existing id when two ideas land in the same millisecond.
	ID int64 `json:"id"`

	// Text is the trimmed, non-empty note text
	Text string `json:"text"`

	// Date is the human-readable creation timestamp, captured once
	Date string `json:"date"`
}

// NextID returns the id for an idea created at now, given the current list
// (newest first). Ids equal the wall clock in milliseconds unless that would
// collide with or precede the newest existing id.
func NextID(now time.Time, list []Idea) int64 {
	id := int64(ulid.Timestamp(now))
	if len(list) > 0 && id <= list[0].ID {
		id = list[0].ID + 1
	}
	return id
}

// FormatDate renders t with layout in the local time zone.
func FormatDate(t time.Time, layout string) string {
	return t.Local().Format(layout)
}
