// Package entity defines the typed schemas persisted by the dashboard:
// tasks, habits, links, notes, and stored spreadsheet files. The JSON field
// names mirror the persisted layout exactly, so a data directory written by
// one build remains readable by the next.
package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority represents task priority levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ValidPriority reports whether p is one of the known priority values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single todo item.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Category    string     `json:"category,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Habit is a daily-trackable habit. Completions maps a day key (see DayKey)
// to the number of completions recorded that day; a missing key reads as 0.
type Habit struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Target      int            `json:"target"`
	Emoji       string         `json:"emoji,omitempty"`
	Completions map[string]int `json:"completions"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// CompletionsOn returns the completion count for the given day key.
func (h Habit) CompletionsOn(dayKey string) int {
	return h.Completions[dayKey]
}

// Link is a saved bookmark. The URL is stored as-is; it is only parsed when
// something actually needs its host (favicon lookup), never at creation.
type Link struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Category    string     `json:"category,omitempty"`
	VisitCount  int        `json:"visitCount"`
	LastVisited *time.Time `json:"lastVisited,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Note is a free-form text note. WordCount is derived from Content and is
// recomputed on every content write, never stored stale.
type Note struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsPinned   bool      `json:"isPinned"`
	Mood       string    `json:"mood,omitempty"`
	WordCount  int       `json:"wordCount"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "Untitled Note"

// CountWords counts whitespace-delimited non-empty tokens.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// SpreadsheetFile is an uploaded spreadsheet kept around so it can be
// reopened without re-upload. FileData holds the original binary content.
type SpreadsheetFile struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
	LastOpened time.Time `json:"lastOpened"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	FileData   ByteData  `json:"fileData"`
}

// ByteData is binary content that serializes as a JSON array of byte values
// (0-255) rather than base64, matching the persisted file layout.
type ByteData []byte

// MarshalJSON implements json.Marshaler.
func (b ByteData) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	vals := make([]int16, len(b))
	for i, v := range b {
		vals[i] = int16(v)
	}
	return json.Marshal(vals)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *ByteData) UnmarshalJSON(data []byte) error {
	var vals []int
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("file data: %w", err)
	}
	out := make([]byte, len(vals))
	for i, v := range vals {
		if v < 0 || v > 255 {
			return fmt.Errorf("file data: byte value %d out of range at index %d", v, i)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}
