// Package store implements the persistent key-value layer backing every
// collection in the dashboard. Each key holds one JSON document in its own
// file under the data directory. The namespace has a fixed 5 MiB capacity
// ceiling so the data dir stays small enough to back up and git-sync whole.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"mynotion/internal/fsutil"
)

const (
	// MaxBytes is the capacity ceiling for the whole namespace: the summed
	// byte length of every key name and value.
	MaxBytes int64 = 5 << 20

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// ErrQuotaExceeded is returned by Write when the new value would push the
// namespace past MaxBytes. The previous value is left intact.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store is a namespaced key-value store over a data directory. All methods
// are safe for concurrent use within one process; across processes the last
// write wins.
type Store struct {
	mu      sync.Mutex
	dir     string
	logger  *slog.Logger
	now     func() time.Time
	onWrite func(key string)
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

// SetNowFunc overrides the clock used for quarantine naming and by callers
// that share the store's notion of time. Passing nil resets it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// Now returns the current time according to the store clock.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	now := s.now
	s.mu.Unlock()
	return now()
}

// SetOnWrite registers a callback invoked after every successful Write or
// Remove with the affected key. The change watcher uses it to tell its own
// writes apart from those of another process.
func (s *Store) SetOnWrite(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onWrite = fn
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read returns the value stored under key. A missing key yields (nil, false,
// nil). Bytes that are not valid JSON are treated the same way: the store
// tries the best-effort .bak copy first, otherwise quarantines the broken
// file and reports the key as absent. Corruption never surfaces as an error.
func (s *Store) Read(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	if validJSON(data) {
		return data, true, nil
	}
	return s.recoverCorrupt(key, path)
}

// recoverCorrupt handles a key whose file failed JSON validation. Caller
// holds the lock.
func (s *Store) recoverCorrupt(key, path string) ([]byte, bool, error) {
	s.quarantine(key, path)

	if bak, err := os.ReadFile(path + ".bak"); err == nil && validJSON(bak) {
		if werr := fsutil.WriteFileAtomic(path, bak, dataFilePerm); werr != nil {
			s.logger.Warn("failed to restore backup", "key", key, "error", werr)
		} else {
			s.logger.Warn("recovered corrupt collection from backup", "key", key)
			return bak, true, nil
		}
	}

	s.logger.Warn("corrupt collection treated as empty", "key", key)
	return nil, false, nil
}

// quarantine moves a broken file aside so its contents survive for manual
// inspection. Caller holds the lock.
func (s *Store) quarantine(key, path string) {
	corrupt := fmt.Sprintf("%s.corrupt.%s", path, s.now().Format("20060102-150405"))
	if err := os.Rename(path, corrupt); err != nil {
		s.logger.Warn("quarantine failed", "key", key, "error", err)
		return
	}
	s.logger.Warn("quarantined corrupt file", "key", key, "path", corrupt)
}

// Write stores value under key atomically, keeping a best-effort backup of
// the previous contents. It fails with ErrQuotaExceeded when the write would
// exceed MaxBytes, leaving the stored value untouched.
func (s *Store) Write(key string, value []byte) error {
	s.mu.Lock()

	other, err := s.usedBytesLocked(key)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if other+entryBytes(key, int64(len(value))) > MaxBytes {
		s.mu.Unlock()
		return fmt.Errorf("write %s (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}

	path := s.path(key)
	fsutil.BestEffortBackup(path, dataFilePerm)
	if err := fsutil.WriteFileAtomic(path, value, dataFilePerm); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("write %s: %w", key, err)
	}

	onWrite := s.onWrite
	s.mu.Unlock()
	if onWrite != nil {
		onWrite(key)
	}
	return nil
}

// Remove deletes the value stored under key. Removing an absent key is a
// no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.mu.Unlock()
		return fmt.Errorf("remove %s: %w", key, err)
	}

	onWrite := s.onWrite
	s.mu.Unlock()
	if onWrite != nil {
		onWrite(key)
	}
	return nil
}

// KeyUsage is the storage footprint of one key.
type KeyUsage struct {
	Key   string
	Bytes int64
}

// Usage is a storage accounting snapshot for the namespace.
type Usage struct {
	UsedBytes int64
	Percent   float64 // of MaxBytes, clamped to 100
	Keys      []KeyUsage
}

// Usage reports the summed byte length of every key name and value in the
// namespace, with a per-key breakdown sorted largest first.
func (s *Store) Usage() (Usage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return Usage{}, fmt.Errorf("read data directory: %w", err)
	}

	var u Usage
	for _, e := range entries {
		key, ok := keyForFileName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		n := entryBytes(key, info.Size())
		u.UsedBytes += n
		u.Keys = append(u.Keys, KeyUsage{Key: key, Bytes: n})
	}

	sort.Slice(u.Keys, func(i, j int) bool {
		if u.Keys[i].Bytes != u.Keys[j].Bytes {
			return u.Keys[i].Bytes > u.Keys[j].Bytes
		}
		return u.Keys[i].Key < u.Keys[j].Key
	})

	u.Percent = float64(u.UsedBytes) / float64(MaxBytes) * 100
	if u.Percent > 100 {
		u.Percent = 100
	}
	return u, nil
}

// usedBytesLocked sums the namespace footprint, excluding one key.
func (s *Store) usedBytesLocked(exclude string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read data directory: %w", err)
	}

	var total int64
	for _, e := range entries {
		key, ok := keyForFileName(e.Name())
		if !ok || key == exclude {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += entryBytes(key, info.Size())
	}
	return total, nil
}

func entryBytes(key string, valueLen int64) int64 {
	return int64(len(key)) + valueLen
}

// keyForFileName maps a data directory file name back to its storage key.
// Backups, quarantined files, and temp files do not count as keys.
func keyForFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, ".json") {
		return "", false
	}
	key := strings.TrimSuffix(name, ".json")
	if key == "" || strings.Contains(key, ".") {
		return "", false
	}
	return key, true
}

func validJSON(data []byte) bool {
	return len(bytes.TrimSpace(data)) > 0 && json.Valid(data)
}
