package repo

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func TestFileAddDefaults(t *testing.T) {
	s := newTestStore(t)
	r := NewFiles(s)

	data := []byte{0x50, 0x4b, 0x03, 0x04}
	file, err := r.Add(FileDraft{Name: "budget.xlsx", FileData: data})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if file.Path != "budget.xlsx" {
		t.Errorf("Path = %q, want name fallback", file.Path)
	}
	if file.Type != "xlsx" {
		t.Errorf("Type = %q, want xlsx default", file.Type)
	}
	if file.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", file.Size, len(data))
	}
	if !file.LastOpened.Equal(file.AddedAt) {
		t.Errorf("LastOpened = %v, want AddedAt %v", file.LastOpened, file.AddedAt)
	}
}

func TestFileDataSurvivesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	r := NewFiles(s)

	data := []byte{0, 1, 127, 128, 255}
	file, err := r.Add(FileDraft{Name: "bin.xlsx", FileData: data})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	all, err := r.All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1", len(all))
	}
	if !bytes.Equal([]byte(all[0].FileData), data) {
		t.Errorf("FileData = %v, want %v", all[0].FileData, data)
	}
	if all[0].ID != file.ID {
		t.Errorf("ID = %d, want %d", all[0].ID, file.ID)
	}
}

func TestFileAddRequiresName(t *testing.T) {
	s := newTestStore(t)
	r := NewFiles(s)

	if _, err := r.Add(FileDraft{Name: "  "}); err == nil {
		t.Error("blank name accepted")
	}
}

func TestFileTouch(t *testing.T) {
	s := newTestStore(t)
	added := time.Date(2026, time.September, 1, 8, 0, 0, 0, time.Local)
	s.SetNowFunc(func() time.Time { return added })
	r := NewFiles(s)

	file, err := r.Add(FileDraft{Name: "sheet.xlsx"})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	opened := added.Add(3 * time.Hour)
	s.SetNowFunc(func() time.Time { return opened })

	touched, err := r.Touch(file.ID)
	if err != nil {
		t.Fatalf("Touch() error: %v", err)
	}
	if !touched.LastOpened.Equal(opened) {
		t.Errorf("LastOpened = %v, want %v", touched.LastOpened, opened)
	}
	if !touched.AddedAt.Equal(added) {
		t.Errorf("AddedAt = %v, want unchanged %v", touched.AddedAt, added)
	}
}

func TestFileTouchMissing(t *testing.T) {
	s := newTestStore(t)
	r := NewFiles(s)

	if _, err := r.Touch(9); !errors.Is(err, ErrNotFound) {
		t.Errorf("Touch() error = %v, want ErrNotFound", err)
	}
}

func TestFileDelete(t *testing.T) {
	s := newTestStore(t)
	r := NewFiles(s)

	file, err := r.Add(FileDraft{Name: "bye.xlsx"})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	if err := r.Delete(file.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if all, _ := r.All(); len(all) != 0 {
		t.Errorf("All() = %v, want empty", all)
	}
}
