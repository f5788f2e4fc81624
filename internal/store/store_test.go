package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := []byte(`{"hello":"world"}`)
	if err := s.Write("todoTasks", want); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, ok, err := s.Read("todoTasks")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !ok {
		t.Fatal("Read() ok = false, want true")
	}
	if string(got) != string(want) {
		t.Errorf("Read() = %s, want %s", got, want)
	}
}

func TestReadMissingKey(t *testing.T) {
	s := newTestStore(t)

	data, ok, err := s.Read("habits")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if ok || data != nil {
		t.Errorf("Read() = (%v, %v), want (nil, false)", data, ok)
	}
}

func TestRemoveIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.Write("notes", []byte(`[]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := s.Remove("notes"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, ok, _ := s.Read("notes"); ok {
		t.Error("key still present after Remove")
	}
	// Removing again must not fail.
	if err := s.Remove("notes"); err != nil {
		t.Errorf("second Remove() error: %v", err)
	}
}

func TestCorruptFileRecoveredFromBackup(t *testing.T) {
	s := newTestStore(t)

	good := []byte(`{"v":1}`)
	if err := s.Write("habits", good); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	// Second write leaves the first value in the .bak copy.
	if err := s.Write("habits", []byte(`{"v":2}`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	path := filepath.Join(s.Dir(), "habits.json")
	if err := os.WriteFile(path, []byte(`{"v":2`), 0600); err != nil {
		t.Fatalf("corrupt write error: %v", err)
	}

	got, ok, err := s.Read("habits")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !ok {
		t.Fatal("Read() ok = false after backup recovery")
	}
	if string(got) != string(good) {
		t.Errorf("Read() = %s, want recovered backup %s", got, good)
	}

	// The restored file is back in place and the broken bytes were moved
	// aside exactly once.
	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("restored file missing: %v", err)
	}
	if string(onDisk) != string(good) {
		t.Errorf("restored file = %s, want %s", onDisk, good)
	}
	quarantined, err := filepath.Glob(path + ".corrupt.*")
	if err != nil {
		t.Fatal(err)
	}
	if len(quarantined) != 1 {
		t.Fatalf("quarantine files = %v, want exactly one", quarantined)
	}
	saved, err := os.ReadFile(quarantined[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != `{"v":2` {
		t.Errorf("quarantined contents = %q", saved)
	}
}

func TestCorruptFileWithoutBackupQuarantined(t *testing.T) {
	s := newTestStore(t)
	s.SetNowFunc(func() time.Time {
		return time.Date(2026, time.September, 1, 10, 30, 0, 0, time.UTC)
	})

	path := filepath.Join(s.Dir(), "importantLinks.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0600); err != nil {
		t.Fatalf("write error: %v", err)
	}

	data, ok, err := s.Read("importantLinks")
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if ok || data != nil {
		t.Errorf("Read() = (%s, %v), want absent", data, ok)
	}

	// The broken bytes survive under a timestamped quarantine name.
	quarantined := path + ".corrupt.20260901-103000"
	saved, err := os.ReadFile(quarantined)
	if err != nil {
		t.Fatalf("quarantine file missing: %v", err)
	}
	if string(saved) != "not json at all" {
		t.Errorf("quarantined contents = %q", saved)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt file was not moved aside")
	}
}

func TestWriteQuotaExceeded(t *testing.T) {
	s := newTestStore(t)

	big := make([]byte, MaxBytes+1)
	for i := range big {
		big[i] = 'a'
	}
	big[0] = '"'
	big[len(big)-1] = '"'

	err := s.Write("notes", big)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("Write() error = %v, want ErrQuotaExceeded", err)
	}
	if _, ok, _ := s.Read("notes"); ok {
		t.Error("failed write left a value behind")
	}
}

func TestWriteQuotaCountsOtherKeys(t *testing.T) {
	s := newTestStore(t)

	half := strings.Repeat("a", int(MaxBytes/2))
	if err := s.Write("excelFiles", []byte(`"`+half+`"`)); err != nil {
		t.Fatalf("first Write() error: %v", err)
	}
	err := s.Write("notes", []byte(`"`+half+`"`))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("second Write() error = %v, want ErrQuotaExceeded", err)
	}

	// The first key is untouched and an in-budget write still succeeds.
	if _, ok, _ := s.Read("excelFiles"); !ok {
		t.Error("existing key lost after rejected write")
	}
	if err := s.Write("notes", []byte(`[]`)); err != nil {
		t.Errorf("small Write() error: %v", err)
	}
}

func TestOverwriteWithinQuotaReplacesOwnFootprint(t *testing.T) {
	s := newTestStore(t)

	large := `"` + strings.Repeat("a", int(MaxBytes)-100) + `"`
	if err := s.Write("notes", []byte(large)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	// Rewriting the same key compares against the namespace minus its own
	// current size, so a same-sized replacement fits.
	if err := s.Write("notes", []byte(large)); err != nil {
		t.Errorf("overwrite error: %v", err)
	}
}

func TestUsageBreakdown(t *testing.T) {
	s := newTestStore(t)

	if err := s.Write("habits", []byte(`[1,2,3]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := s.Write("todoTasks", []byte(`[1,2,3,4,5,6,7,8]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	u, err := s.Usage()
	if err != nil {
		t.Fatalf("Usage() error: %v", err)
	}

	wantTasks := int64(len("todoTasks") + len(`[1,2,3,4,5,6,7,8]`))
	wantHabits := int64(len("habits") + len(`[1,2,3]`))
	if u.UsedBytes != wantTasks+wantHabits {
		t.Errorf("UsedBytes = %d, want %d", u.UsedBytes, wantTasks+wantHabits)
	}
	if len(u.Keys) != 2 {
		t.Fatalf("Keys = %v, want 2 entries", u.Keys)
	}
	// Largest first.
	if u.Keys[0].Key != "todoTasks" || u.Keys[0].Bytes != wantTasks {
		t.Errorf("Keys[0] = %+v", u.Keys[0])
	}
	if u.Keys[1].Key != "habits" || u.Keys[1].Bytes != wantHabits {
		t.Errorf("Keys[1] = %+v", u.Keys[1])
	}
	if u.Percent <= 0 || u.Percent >= 1 {
		t.Errorf("Percent = %f, want a small positive fraction", u.Percent)
	}
}

func TestUsageIgnoresBackupsAndQuarantine(t *testing.T) {
	s := newTestStore(t)

	if err := s.Write("notes", []byte(`[]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	for _, name := range []string{"notes.json.bak", "notes.json.corrupt.20260101-000000", "notes.json.tmp1"} {
		if err := os.WriteFile(filepath.Join(s.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	u, err := s.Usage()
	if err != nil {
		t.Fatalf("Usage() error: %v", err)
	}
	if len(u.Keys) != 1 || u.Keys[0].Key != "notes" {
		t.Errorf("Keys = %v, want only notes", u.Keys)
	}
}

func TestOnWriteCallback(t *testing.T) {
	s := newTestStore(t)

	var keys []string
	s.SetOnWrite(func(key string) { keys = append(keys, key) })

	if err := s.Write("habits", []byte(`[]`)); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if err := s.Remove("habits"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	if len(keys) != 2 || keys[0] != "habits" || keys[1] != "habits" {
		t.Errorf("callback keys = %v, want [habits habits]", keys)
	}
}
