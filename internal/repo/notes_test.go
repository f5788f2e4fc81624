package repo

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"mynotion/internal/entity"
)

func TestNoteCreateDefaults(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{Content: "hello world again"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if note.Title != entity.DefaultNoteTitle {
		t.Errorf("Title = %q, want default", note.Title)
	}
	if note.WordCount != 3 {
		t.Errorf("WordCount = %d, want 3", note.WordCount)
	}
	if note.Tags == nil {
		t.Error("Tags = nil, want empty slice")
	}
	if !note.ModifiedAt.Equal(note.CreatedAt) {
		t.Errorf("ModifiedAt = %v, want CreatedAt %v", note.ModifiedAt, note.CreatedAt)
	}
}

func TestNoteCreateNormalizesTags(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{
		Title: "tags",
		Tags:  []string{" work ", "", "ideas", "work"},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	want := []string{"work", "ideas"}
	if !reflect.DeepEqual(note.Tags, want) {
		t.Errorf("Tags = %v, want %v", note.Tags, want)
	}
}

func TestNoteUpdateContentRecomputesWordCount(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.Local)
	s.SetNowFunc(func() time.Time { return created })
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{Title: "wc", Content: "one two"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	modified := created.Add(2 * time.Hour)
	s.SetNowFunc(func() time.Time { return modified })

	content := "one two three four"
	updated, err := r.Update(note.ID, NotePatch{Content: &content})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.WordCount != 4 {
		t.Errorf("WordCount = %d, want 4", updated.WordCount)
	}
	if !updated.ModifiedAt.Equal(modified) {
		t.Errorf("ModifiedAt = %v, want %v", updated.ModifiedAt, modified)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want unchanged %v", updated.CreatedAt, created)
	}
}

func TestNoteUpdateBlankTitleFallsBack(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{Title: "named"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	blank := "   "
	updated, err := r.Update(note.ID, NotePatch{Title: &blank})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Title != entity.DefaultNoteTitle {
		t.Errorf("Title = %q, want default", updated.Title)
	}
}

func TestNoteTogglePin(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{Title: "pin me"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	pinned, err := r.TogglePin(note.ID)
	if err != nil {
		t.Fatalf("TogglePin() error: %v", err)
	}
	if !pinned.IsPinned {
		t.Error("IsPinned = false after toggle")
	}

	unpinned, err := r.TogglePin(note.ID)
	if err != nil {
		t.Fatalf("second TogglePin() error: %v", err)
	}
	if unpinned.IsPinned {
		t.Error("IsPinned = true after second toggle")
	}
}

func TestNoteAddRemoveTag(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{Title: "t", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	withB, err := r.AddTag(note.ID, "b")
	if err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
	if !reflect.DeepEqual(withB.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", withB.Tags)
	}

	// Duplicate add is a no-op on the set.
	again, err := r.AddTag(note.ID, "a")
	if err != nil {
		t.Fatalf("AddTag() duplicate error: %v", err)
	}
	if !reflect.DeepEqual(again.Tags, []string{"a", "b"}) {
		t.Errorf("Tags = %v, want [a b]", again.Tags)
	}

	removed, err := r.RemoveTag(note.ID, "a")
	if err != nil {
		t.Fatalf("RemoveTag() error: %v", err)
	}
	if !reflect.DeepEqual(removed.Tags, []string{"b"}) {
		t.Errorf("Tags = %v, want [b]", removed.Tags)
	}

	if _, err := r.AddTag(note.ID, "  "); err == nil {
		t.Error("blank tag accepted")
	}
}

func TestNoteUpdateMissing(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	title := "x"
	if _, err := r.Update(123, NotePatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if _, err := r.TogglePin(123); !errors.Is(err, ErrNotFound) {
		t.Errorf("TogglePin() error = %v, want ErrNotFound", err)
	}
}

func TestNoteDelete(t *testing.T) {
	s := newTestStore(t)
	r := NewNotes(s)

	note, err := r.Create(NoteDraft{Title: "bye"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if err := r.Delete(note.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if all, _ := r.All(); len(all) != 0 {
		t.Errorf("All() = %v, want empty", all)
	}
}
