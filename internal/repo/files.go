package repo

import (
	"fmt"
	"strings"

	"mynotion/internal/entity"
	"mynotion/internal/store"
)

// Files is the repository for stored spreadsheet files. FileData is opaque
// bytes; parsing it belongs to a spreadsheet codec, not the data layer.
type Files struct {
	c collection[entity.SpreadsheetFile]
}

// NewFiles creates the spreadsheet file repository.
func NewFiles(s *store.Store) *Files {
	return &Files{c: collection[entity.SpreadsheetFile]{s: s, key: KeyFiles}}
}

// All returns every stored file in the order they were added.
func (r *Files) All() ([]entity.SpreadsheetFile, error) {
	return r.c.all()
}

// ReplaceAll overwrites the stored collection.
func (r *Files) ReplaceAll(files []entity.SpreadsheetFile) error {
	return r.c.replaceAll(files)
}

// FileDraft holds the caller-supplied fields for a newly added file.
type FileDraft struct {
	Name     string
	Path     string
	Size     int64
	Type     string
	FileData []byte
}

// Add validates the draft and persists the file so it can be reopened later
// without re-upload.
func (r *Files) Add(d FileDraft) (entity.SpreadsheetFile, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return entity.SpreadsheetFile{}, entity.Invalid("name", "required")
	}
	if d.Path == "" {
		d.Path = d.Name
	}
	if d.Type == "" {
		d.Type = "xlsx"
	}
	if d.Size == 0 {
		d.Size = int64(len(d.FileData))
	}

	files, err := r.All()
	if err != nil {
		return entity.SpreadsheetFile{}, err
	}

	now := r.c.s.Now()
	file := entity.SpreadsheetFile{
		ID:         entity.NewID(now),
		Name:       d.Name,
		Path:       d.Path,
		AddedAt:    now,
		LastOpened: now,
		Size:       d.Size,
		Type:       d.Type,
		FileData:   entity.ByteData(d.FileData),
	}

	files = append(files, file)
	if err := r.ReplaceAll(files); err != nil {
		return entity.SpreadsheetFile{}, err
	}
	return file, nil
}

// Touch stamps LastOpened on the file with the given ID.
func (r *Files) Touch(id int64) (entity.SpreadsheetFile, error) {
	files, err := r.All()
	if err != nil {
		return entity.SpreadsheetFile{}, err
	}

	for i := range files {
		if files[i].ID != id {
			continue
		}
		files[i].LastOpened = r.c.s.Now()
		if err := r.ReplaceAll(files); err != nil {
			return entity.SpreadsheetFile{}, err
		}
		return files[i], nil
	}

	return entity.SpreadsheetFile{}, fmt.Errorf("file %d: %w", id, ErrNotFound)
}

// Delete removes the file with the given ID, idempotently.
func (r *Files) Delete(id int64) error {
	files, err := r.All()
	if err != nil {
		return err
	}

	kept := files[:0]
	for _, f := range files {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return r.ReplaceAll(kept)
}
