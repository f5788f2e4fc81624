package repo

import (
	"fmt"
	"strings"

	"mynotion/internal/entity"
	"mynotion/internal/store"
)

// Notes is the repository for free-form notes.
type Notes struct {
	c collection[entity.Note]
}

// NewNotes creates the note repository.
func NewNotes(s *store.Store) *Notes {
	return &Notes{c: collection[entity.Note]{s: s, key: KeyNotes}}
}

// All returns every stored note in creation order.
func (r *Notes) All() ([]entity.Note, error) {
	return r.c.all()
}

// ReplaceAll overwrites the stored collection.
func (r *Notes) ReplaceAll(notes []entity.Note) error {
	return r.c.replaceAll(notes)
}

// NoteDraft holds the caller-supplied fields for a new note. A blank title
// falls back to the default note title.
type NoteDraft struct {
	Title   string
	Content string
	Tags    []string
	Mood    string
}

// Create assigns ID, defaults, and derived fields, appends, and persists.
func (r *Notes) Create(d NoteDraft) (entity.Note, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		d.Title = entity.DefaultNoteTitle
	}

	notes, err := r.All()
	if err != nil {
		return entity.Note{}, err
	}

	now := r.c.s.Now()
	note := entity.Note{
		ID:         entity.NewID(now),
		Title:      d.Title,
		Content:    d.Content,
		Tags:       normalizeTags(d.Tags),
		Mood:       strings.TrimSpace(d.Mood),
		WordCount:  entity.CountWords(d.Content),
		CreatedAt:  now,
		ModifiedAt: now,
	}

	notes = append(notes, note)
	if err := r.ReplaceAll(notes); err != nil {
		return entity.Note{}, err
	}
	return note, nil
}

// NotePatch selects the fields Update applies. Nil fields are untouched.
// A Mood of empty string clears the mood.
type NotePatch struct {
	Title    *string
	Content  *string
	Tags     *[]string
	IsPinned *bool
	Mood     *string
}

// Update merges the patch over the stored note. Every applied patch stamps
// ModifiedAt, and a content change recomputes WordCount so it can never go
// stale.
func (r *Notes) Update(id int64, p NotePatch) (entity.Note, error) {
	notes, err := r.All()
	if err != nil {
		return entity.Note{}, err
	}

	for i := range notes {
		if notes[i].ID != id {
			continue
		}
		n := &notes[i]
		if p.Title != nil {
			title := strings.TrimSpace(*p.Title)
			if title == "" {
				title = entity.DefaultNoteTitle
			}
			n.Title = title
		}
		if p.Content != nil {
			n.Content = *p.Content
			n.WordCount = entity.CountWords(*p.Content)
		}
		if p.Tags != nil {
			n.Tags = normalizeTags(*p.Tags)
		}
		if p.IsPinned != nil {
			n.IsPinned = *p.IsPinned
		}
		if p.Mood != nil {
			n.Mood = strings.TrimSpace(*p.Mood)
		}
		n.ModifiedAt = r.c.s.Now()
		if err := r.ReplaceAll(notes); err != nil {
			return entity.Note{}, err
		}
		return *n, nil
	}

	return entity.Note{}, fmt.Errorf("note %d: %w", id, ErrNotFound)
}

// AddTag appends a tag to the note's tag set. Adding a tag the note already
// has changes nothing but still stamps ModifiedAt.
func (r *Notes) AddTag(id int64, tag string) (entity.Note, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return entity.Note{}, entity.Invalid("tag", "required")
	}
	return r.withTags(id, func(tags []string) []string {
		return append(tags, tag)
	})
}

// RemoveTag drops a tag from the note's tag set.
func (r *Notes) RemoveTag(id int64, tag string) (entity.Note, error) {
	return r.withTags(id, func(tags []string) []string {
		kept := tags[:0]
		for _, t := range tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		return kept
	})
}

func (r *Notes) withTags(id int64, fn func([]string) []string) (entity.Note, error) {
	notes, err := r.All()
	if err != nil {
		return entity.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			tags := fn(append([]string(nil), n.Tags...))
			return r.Update(id, NotePatch{Tags: &tags})
		}
	}
	return entity.Note{}, fmt.Errorf("note %d: %w", id, ErrNotFound)
}

// TogglePin flips the note's pinned flag.
func (r *Notes) TogglePin(id int64) (entity.Note, error) {
	notes, err := r.All()
	if err != nil {
		return entity.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			pinned := !n.IsPinned
			return r.Update(id, NotePatch{IsPinned: &pinned})
		}
	}
	return entity.Note{}, fmt.Errorf("note %d: %w", id, ErrNotFound)
}

// Delete removes the note with the given ID, idempotently.
func (r *Notes) Delete(id int64) error {
	notes, err := r.All()
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	return r.ReplaceAll(kept)
}

// normalizeTags trims, drops empties, and dedupes while keeping first-seen
// order. Tag order is presentational only; the set is what matters.
func normalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
