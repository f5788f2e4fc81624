package repo

import (
	"fmt"
	"strings"

	"mynotion/internal/entity"
	"mynotion/internal/store"
)

// Links is the repository for saved bookmarks.
type Links struct {
	c collection[entity.Link]
}

// NewLinks creates the link repository.
func NewLinks(s *store.Store) *Links {
	return &Links{c: collection[entity.Link]{s: s, key: KeyLinks}}
}

// All returns every stored link in creation order.
func (r *Links) All() ([]entity.Link, error) {
	return r.c.all()
}

// ReplaceAll overwrites the stored collection.
func (r *Links) ReplaceAll(links []entity.Link) error {
	return r.c.replaceAll(links)
}

// LinkDraft holds the caller-supplied fields for a new link. The URL is
// stored verbatim; it is not parsed until a favicon lookup needs its host.
type LinkDraft struct {
	Title    string
	URL      string
	Category string
}

// Create validates the draft, assigns ID and defaults, appends, and persists.
func (r *Links) Create(d LinkDraft) (entity.Link, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.URL = strings.TrimSpace(d.URL)
	d.Category = strings.TrimSpace(d.Category)

	if d.Title == "" {
		return entity.Link{}, entity.Invalid("title", "required")
	}
	if d.URL == "" {
		return entity.Link{}, entity.Invalid("url", "required")
	}

	links, err := r.All()
	if err != nil {
		return entity.Link{}, err
	}

	now := r.c.s.Now()
	link := entity.Link{
		ID:        entity.NewID(now),
		Title:     d.Title,
		URL:       d.URL,
		Category:  d.Category,
		CreatedAt: now,
	}

	links = append(links, link)
	if err := r.ReplaceAll(links); err != nil {
		return entity.Link{}, err
	}
	return link, nil
}

// LinkPatch selects the fields Update applies. Nil fields are untouched.
type LinkPatch struct {
	Title    *string
	URL      *string
	Category *string
}

// Update merges the patch over the stored link.
func (r *Links) Update(id int64, p LinkPatch) (entity.Link, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return entity.Link{}, entity.Invalid("title", "required")
		}
		p.Title = &title
	}
	if p.URL != nil {
		url := strings.TrimSpace(*p.URL)
		if url == "" {
			return entity.Link{}, entity.Invalid("url", "required")
		}
		p.URL = &url
	}

	links, err := r.All()
	if err != nil {
		return entity.Link{}, err
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		l := &links[i]
		if p.Title != nil {
			l.Title = *p.Title
		}
		if p.URL != nil {
			l.URL = *p.URL
		}
		if p.Category != nil {
			l.Category = strings.TrimSpace(*p.Category)
		}
		if err := r.ReplaceAll(links); err != nil {
			return entity.Link{}, err
		}
		return *l, nil
	}

	return entity.Link{}, fmt.Errorf("link %d: %w", id, ErrNotFound)
}

// RecordVisit increments the visit counter and stamps LastVisited. Call it
// once per user-initiated open, never on display.
func (r *Links) RecordVisit(id int64) (entity.Link, error) {
	links, err := r.All()
	if err != nil {
		return entity.Link{}, err
	}

	for i := range links {
		if links[i].ID != id {
			continue
		}
		now := r.c.s.Now()
		links[i].VisitCount++
		links[i].LastVisited = &now
		if err := r.ReplaceAll(links); err != nil {
			return entity.Link{}, err
		}
		return links[i], nil
	}

	return entity.Link{}, fmt.Errorf("link %d: %w", id, ErrNotFound)
}

// Delete removes the link with the given ID, idempotently.
func (r *Links) Delete(id int64) error {
	links, err := r.All()
	if err != nil {
		return err
	}

	kept := links[:0]
	for _, l := range links {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	return r.ReplaceAll(kept)
}
