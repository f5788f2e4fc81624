// Package transfer implements the export/import bundle: a single JSON object
// carrying the dashboard's collections, suitable for download, backup, and
// re-import on another machine.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
)

// Bundle is the export file layout.
type Bundle struct {
	TodoTasks      []entity.Task  `json:"todoTasks"`
	Habits         []entity.Habit `json:"habits"`
	ImportantLinks []entity.Link  `json:"importantLinks"`
	Notes          []entity.Note  `json:"notes"`
	ExportDate     time.Time      `json:"exportDate"`
}

// Filename returns the default download name for an export taken at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("mynotion-export-%s.json", t.Format("2006-01-02"))
}

// Export collects the task, habit, link, and note collections into a
// pretty-printed bundle. Spreadsheet files are deliberately excluded: their
// binary payloads dominate the quota and are tied to the machine they were
// uploaded on.
func Export(repos *repo.Set) ([]byte, error) {
	b := Bundle{ExportDate: repos.Store.Now()}

	var err error
	if b.TodoTasks, err = repos.Tasks.All(); err != nil {
		return nil, err
	}
	if b.Habits, err = repos.Habits.All(); err != nil {
		return nil, err
	}
	if b.ImportantLinks, err = repos.Links.All(); err != nil {
		return nil, err
	}
	if b.Notes, err = repos.Notes.All(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize export: %w", err)
	}
	return data, nil
}

// Result reports what an import wrote.
type Result struct {
	Counts map[string]int // collection key -> entities written
}

// Import reads a bundle that may contain any subset of the five collection
// keys and replaces exactly the collections present, leaving the others
// untouched. A file that fails to parse or contains a malformed collection
// is rejected whole; nothing is written.
func Import(repos *repo.Set, raw []byte) (Result, error) {
	var top map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&top); err != nil {
		return Result{}, fmt.Errorf("parse import file: %w", err)
	}

	// Decode everything before writing anything, so a malformed collection
	// can never leave a half-applied import behind.
	var (
		tasks  []entity.Task
		habits []entity.Habit
		links  []entity.Link
		notes  []entity.Note
		files  []entity.SpreadsheetFile
	)
	if err := decodeIfPresent(top, repo.KeyTasks, &tasks); err != nil {
		return Result{}, err
	}
	if err := decodeIfPresent(top, repo.KeyHabits, &habits); err != nil {
		return Result{}, err
	}
	if err := decodeIfPresent(top, repo.KeyLinks, &links); err != nil {
		return Result{}, err
	}
	if err := decodeIfPresent(top, repo.KeyNotes, &notes); err != nil {
		return Result{}, err
	}
	if err := decodeIfPresent(top, repo.KeyFiles, &files); err != nil {
		return Result{}, err
	}

	res := Result{Counts: map[string]int{}}
	if _, ok := top[repo.KeyTasks]; ok {
		if err := repos.Tasks.ReplaceAll(tasks); err != nil {
			return res, err
		}
		res.Counts[repo.KeyTasks] = len(tasks)
	}
	if _, ok := top[repo.KeyHabits]; ok {
		if err := repos.Habits.ReplaceAll(habits); err != nil {
			return res, err
		}
		res.Counts[repo.KeyHabits] = len(habits)
	}
	if _, ok := top[repo.KeyLinks]; ok {
		if err := repos.Links.ReplaceAll(links); err != nil {
			return res, err
		}
		res.Counts[repo.KeyLinks] = len(links)
	}
	if _, ok := top[repo.KeyNotes]; ok {
		if err := repos.Notes.ReplaceAll(notes); err != nil {
			return res, err
		}
		res.Counts[repo.KeyNotes] = len(notes)
	}
	if _, ok := top[repo.KeyFiles]; ok {
		if err := repos.Files.ReplaceAll(files); err != nil {
			return res, err
		}
		res.Counts[repo.KeyFiles] = len(files)
	}
	return res, nil
}

func decodeIfPresent[T any](top map[string]json.RawMessage, key string, dst *[]T) error {
	raw, ok := top[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("parse import file: %s: %w", key, err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}
