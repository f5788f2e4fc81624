// Package watch propagates storage mutations made by another process (a
// second dashboard instance, a sync tool, a manual edit) to the running
// views. It watches the data directory and reports the storage key behind
// each changed collection file; the view re-reads the collection on receipt.
// There is no merging: whichever write lands last in the store wins.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// debounce coalesces the burst of events an atomic write produces.
	debounce = 100 * time.Millisecond

	// suppressWindow is how long after our own write we ignore events for
	// the same key, so a process does not notify itself.
	suppressWindow = 500 * time.Millisecond
)

// Notifier watches a data directory and emits the storage keys whose
// collection files were changed by someone else.
type Notifier struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	events  chan string
	now     func() time.Time

	mu        sync.Mutex
	ownWrites map[string]time.Time
	pending   map[string]*time.Timer
}

// New creates a Notifier watching dataDir.
func New(dataDir string, logger *slog.Logger) (*Notifier, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dataDir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dataDir, err)
	}

	return &Notifier{
		watcher:   w,
		logger:    logger,
		events:    make(chan string, 16),
		now:       time.Now,
		ownWrites: make(map[string]time.Time),
		pending:   make(map[string]*time.Timer),
	}, nil
}

// Suppress marks a key as just written by this process. Wire it to the
// store's write hook so local mutations do not bounce back as change events.
func (n *Notifier) Suppress(key string) {
	n.mu.Lock()
	n.ownWrites[key] = n.now()
	n.mu.Unlock()
}

// Events returns the channel of changed storage keys.
func (n *Notifier) Events() <-chan string {
	return n.events
}

// Start processes file system events until ctx is cancelled.
func (n *Notifier) Start(ctx context.Context) error {
	defer n.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-n.watcher.Events:
			if !ok {
				return nil
			}
			n.handle(ev)
		case err, ok := <-n.watcher.Errors:
			if !ok {
				return nil
			}
			n.logger.Warn("watch error", "error", err)
		}
	}
}

// Close stops the watcher and releases its resources.
func (n *Notifier) Close() error {
	n.mu.Lock()
	for _, t := range n.pending {
		t.Stop()
	}
	n.pending = make(map[string]*time.Timer)
	n.mu.Unlock()
	return n.watcher.Close()
}

func (n *Notifier) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}
	key, ok := KeyForPath(ev.Name)
	if !ok {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if written, ok := n.ownWrites[key]; ok && n.now().Sub(written) < suppressWindow {
		return
	}

	// Atomic writes surface as a create plus renames; fold the burst into
	// one notification per key.
	if t, ok := n.pending[key]; ok {
		t.Reset(debounce)
		return
	}
	n.pending[key] = time.AfterFunc(debounce, func() {
		n.deliver(key)
	})
}

func (n *Notifier) deliver(key string) {
	n.mu.Lock()
	delete(n.pending, key)
	n.mu.Unlock()

	select {
	case n.events <- key:
	default:
		n.logger.Warn("dropping change notification", "key", key)
	}
}

// KeyForPath maps a data directory file path to its storage key. Backups,
// quarantined files, and temp files are not keys.
func KeyForPath(path string) (string, bool) {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if !strings.HasSuffix(name, ".json") {
		return "", false
	}
	key := strings.TrimSuffix(name, ".json")
	if key == "" || strings.Contains(key, ".") {
		return "", false
	}
	return key, true
}
