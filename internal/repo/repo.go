// Package repo provides one typed repository per entity kind, each bound to
// a fixed storage key. Every mutation is a whole-collection read-modify-write
// through the store; there is no partial-update primitive, and the last write
// from this process wins.
package repo

import (
	"encoding/json"
	"errors"
	"fmt"

	"mynotion/internal/store"
)

// Storage keys, one collection per key. These names are part of the persisted
// layout and must not change.
const (
	KeyTasks  = "todoTasks"
	KeyHabits = "habits"
	KeyLinks  = "importantLinks"
	KeyNotes  = "notes"
	KeyFiles  = "excelFiles"
)

// CollectionKeys lists every collection key in display order.
var CollectionKeys = []string{KeyTasks, KeyHabits, KeyLinks, KeyNotes, KeyFiles}

// ErrNotFound is returned when an update targets an ID that is not in the
// collection.
var ErrNotFound = errors.New("not found")

// Set bundles the full repository family over one store.
type Set struct {
	Store  *store.Store
	Tasks  *Tasks
	Habits *Habits
	Links  *Links
	Notes  *Notes
	Files  *Files
}

// NewSet creates repositories for every entity kind over s.
func NewSet(s *store.Store) *Set {
	return &Set{
		Store:  s,
		Tasks:  NewTasks(s),
		Habits: NewHabits(s),
		Links:  NewLinks(s),
		Notes:  NewNotes(s),
		Files:  NewFiles(s),
	}
}

// collection is the shared load/save plumbing all repositories ride on.
type collection[T any] struct {
	s   *store.Store
	key string
}

// all reads and decodes the collection. An absent key or a document of the
// wrong shape both come back as an empty slice, never nil and never an error.
func (c collection[T]) all() ([]T, error) {
	data, ok, err := c.s.Read(c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// replaceAll serializes the whole collection and writes it back.
func (c collection[T]) replaceAll(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", c.key, err)
	}
	return c.s.Write(c.key, data)
}
