package entity

import (
	"sync"
	"time"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a unique, creation-ordered identifier derived from the given
// time's millisecond value. Two calls within the same clock tick still get
// distinct, increasing IDs.
func NewID(now time.Time) int64 {
	idMu.Lock()
	defer idMu.Unlock()

	id := now.UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}
