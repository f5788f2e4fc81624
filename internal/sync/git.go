// Package sync provides git synchronization for the data directory. It
// handles automatic commits, pull, and push operations.
package sync

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"mynotion/internal/fsutil"
	"mynotion/internal/repo"
)

// Config holds git sync configuration.
type Config struct {
	Enabled       bool   `yaml:"enabled"`
	AutoCommit    bool   `yaml:"auto_commit"`
	AutoPush      bool   `yaml:"auto_push"`
	CommitMessage string `yaml:"commit_message"` // "auto" or a fixed message
}

// DefaultConfig returns the default sync configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:       false,
		AutoCommit:    true,
		AutoPush:      false,
		CommitMessage: "auto",
	}
}

// Status represents the current git status of the data directory.
type Status struct {
	IsRepo       bool
	HasRemote    bool
	RemoteName   string
	RemoteURL    string
	Branch       string
	Ahead        int
	Behind       int
	HasChanges   bool
	LastCommitAt *time.Time
}

// GitSync manages git operations for the data directory.
type GitSync struct {
	dataDir string
	config  *Config

	// Debouncing for auto-commit
	pendingKeys map[string]bool
	commitTimer *time.Timer
	mu          gosync.Mutex

	// Serializes git operations to avoid index/lock conflicts.
	opMu gosync.Mutex

	// Debounce duration (configurable for testing)
	debounceDuration time.Duration
}

// New creates a new GitSync instance.
func New(dataDir string, cfg *Config) *GitSync {
	return &GitSync{
		dataDir:          dataDir,
		config:           cfg,
		pendingKeys:      make(map[string]bool),
		debounceDuration: 2 * time.Second,
	}
}

// IsGitInstalled checks if git is available on the system.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo checks if the data directory is a git repository.
func (g *GitSync) IsRepo() bool {
	gitDir := filepath.Join(g.dataDir, ".git")
	info, err := os.Stat(gitDir)
	return err == nil && info.IsDir()
}

const (
	defaultGitTimeout  = 10 * time.Second
	pullPushGitTimeout = 60 * time.Second
	commitGitTimeout   = 15 * time.Second
)

// Init initializes a git repository in the data directory.
func (g *GitSync) Init() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !IsGitInstalled() {
		return fmt.Errorf("git is not installed")
	}

	if _, err := g.runGitTimeout(commitGitTimeout, "init"); err != nil {
		return fmt.Errorf("failed to initialize git repository: %w", err)
	}

	// Working files that should never end up in history.
	gitignoreContent := `backups/
*.bak
*.corrupt.*
*.tmp
*.log
`
	gitignorePath := filepath.Join(g.dataDir, ".gitignore")
	if err := fsutil.WriteFileAtomic(gitignorePath, []byte(gitignoreContent), 0600); err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	if _, err := g.runGitTimeout(defaultGitTimeout, "add", ".gitignore"); err != nil {
		return fmt.Errorf("failed to stage .gitignore: %w", err)
	}

	if _, err := g.runGitTimeout(commitGitTimeout, "-c", "commit.gpgsign=false", "commit", "-m", "Initialize data repository"); err != nil {
		if !isGitNothingToCommit(err) {
			return fmt.Errorf("failed to create initial commit: %w", err)
		}
	}

	return nil
}

// Status returns the current git status.
func (g *GitSync) Status() (*Status, error) {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	status := &Status{
		IsRepo: g.IsRepo(),
	}

	if !status.IsRepo {
		return status, nil
	}

	branch, err := g.runGitTimeout(defaultGitTimeout, "rev-parse", "--abbrev-ref", "HEAD")
	if err == nil {
		status.Branch = trimOutput(branch)
	}

	remotes, err := g.runGitTimeout(defaultGitTimeout, "remote", "-v")
	if err == nil && trimOutput(remotes) != "" {
		status.HasRemote = true
		// First line looks like "origin\tgit@...\t(fetch)".
		lines := bytes.Split([]byte(remotes), []byte("\n"))
		if len(lines) > 0 {
			parts := bytes.Fields(lines[0])
			if len(parts) >= 2 {
				status.RemoteName = string(parts[0])
				status.RemoteURL = string(parts[1])
			}
		}
	}

	statusOutput, err := g.runGitTimeout(defaultGitTimeout, "status", "--porcelain")
	if err == nil {
		status.HasChanges = trimOutput(statusOutput) != ""
	}

	if status.HasRemote && status.Branch != "" {
		remote := status.RemoteName + "/" + status.Branch
		revList, err := g.runGitTimeout(defaultGitTimeout, "rev-list", "--left-right", "--count", status.Branch+"..."+remote)
		if err == nil {
			var ahead, behind int
			fmt.Sscanf(trimOutput(revList), "%d\t%d", &ahead, &behind)
			status.Ahead = ahead
			status.Behind = behind
		}
	}

	lastCommit, err := g.runGitTimeout(defaultGitTimeout, "log", "-1", "--format=%ci")
	if err == nil && trimOutput(lastCommit) != "" {
		t, err := time.Parse("2006-01-02 15:04:05 -0700", trimOutput(lastCommit))
		if err == nil {
			status.LastCommitAt = &t
		}
	}

	return status, nil
}

// CommitAll stages and commits all changes in the data directory.
func (g *GitSync) CommitAll() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()
	return g.commitAllLocked("Update dashboard data")
}

func (g *GitSync) commitAllLocked(message string) error {
	if !g.IsRepo() {
		return fmt.Errorf("not a git repository - run 'mynotion sync --init' first")
	}

	if _, err := g.runGitTimeout(defaultGitTimeout, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage files: %w", err)
	}

	staged, err := g.runGitTimeout(defaultGitTimeout, "diff", "--cached", "--name-only")
	if err != nil {
		return fmt.Errorf("failed to check staged changes: %w", err)
	}
	if trimOutput(staged) == "" {
		return nil
	}

	if _, err := g.runGitTimeout(commitGitTimeout, "-c", "commit.gpgsign=false", "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	if g.config.AutoPush {
		if err := g.pushLocked(); err != nil {
			// Data is safely committed locally either way.
			return fmt.Errorf("committed locally, but push failed: %w", err)
		}
	}

	return nil
}

// Pull fetches and merges changes from the remote.
func (g *GitSync) Pull() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !g.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	remotes, err := g.runGitTimeout(defaultGitTimeout, "remote")
	if err != nil || trimOutput(remotes) == "" {
		return fmt.Errorf("no remote configured")
	}

	// Rebase keeps the single-user history linear.
	if _, err := g.runGitTimeout(pullPushGitTimeout, "pull", "--rebase"); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	return nil
}

// Push pushes local commits to the remote.
func (g *GitSync) Push() error {
	g.opMu.Lock()
	defer g.opMu.Unlock()
	return g.pushLocked()
}

func (g *GitSync) pushLocked() error {
	if !g.IsRepo() {
		return fmt.Errorf("not a git repository")
	}

	remotes, err := g.runGitTimeout(defaultGitTimeout, "remote")
	if err != nil || trimOutput(remotes) == "" {
		return fmt.Errorf("no remote configured - add one with 'mynotion sync --remote <url>'")
	}

	if _, err := g.runGitTimeout(pullPushGitTimeout, "push"); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	return nil
}

// AddRemote adds a git remote with the given name and URL. An existing
// remote with the same name is updated.
func (g *GitSync) AddRemote(name, url string) error {
	g.opMu.Lock()
	defer g.opMu.Unlock()

	if !g.IsRepo() {
		return fmt.Errorf("not a git repository - run 'mynotion sync --init' first")
	}

	if name == "" {
		return fmt.Errorf("remote name is required")
	}
	if url == "" {
		return fmt.Errorf("remote URL is required")
	}

	remotes, _ := g.runGitTimeout(defaultGitTimeout, "remote")
	hasRemote := false
	for _, line := range strings.Split(trimOutput(remotes), "\n") {
		if strings.TrimSpace(line) == name {
			hasRemote = true
			break
		}
	}

	if hasRemote {
		if _, err := g.runGitTimeout(defaultGitTimeout, "remote", "set-url", name, url); err != nil {
			return fmt.Errorf("failed to update remote: %w", err)
		}
	} else {
		if _, err := g.runGitTimeout(defaultGitTimeout, "remote", "add", name, url); err != nil {
			return fmt.Errorf("failed to add remote: %w", err)
		}
	}

	return nil
}

// OnKeySaved queues a storage key for auto-commit with debouncing. Wire
// this alongside the watcher's own-write suppression.
func (g *GitSync) OnKeySaved(key string) {
	if !g.config.Enabled || !g.config.AutoCommit {
		return
	}

	if !g.IsRepo() {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pendingKeys[key] = true

	// Reset timer - commit after debounce duration of no changes
	if g.commitTimer != nil {
		g.commitTimer.Stop()
	}
	g.commitTimer = time.AfterFunc(g.debounceDuration, g.flushCommit)
}

// Flush immediately commits pending changes without waiting for debounce.
func (g *GitSync) Flush() {
	g.mu.Lock()
	if g.commitTimer != nil {
		g.commitTimer.Stop()
		g.commitTimer = nil
	}
	g.mu.Unlock()

	g.flushCommit()
}

func (g *GitSync) flushCommit() {
	g.mu.Lock()
	keys := make([]string, 0, len(g.pendingKeys))
	for k := range g.pendingKeys {
		keys = append(keys, k)
	}
	g.pendingKeys = make(map[string]bool)
	g.mu.Unlock()

	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	g.opMu.Lock()
	defer g.opMu.Unlock()
	// Auto-commit failures are non-fatal; the next save retries.
	_ = g.commitAllLocked(g.commitMessage(keys))
}

// commitMessage names the collections that changed, e.g. "Update tasks"
// or "Update habits, links".
func (g *GitSync) commitMessage(keys []string) string {
	if g.config.CommitMessage != "" && g.config.CommitMessage != "auto" {
		return g.config.CommitMessage
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, collectionName(key))
	}
	return "Update " + strings.Join(names, ", ")
}

func collectionName(key string) string {
	switch key {
	case repo.KeyTasks:
		return "tasks"
	case repo.KeyHabits:
		return "habits"
	case repo.KeyLinks:
		return "links"
	case repo.KeyNotes:
		return "notes"
	case repo.KeyFiles:
		return "files"
	default:
		return key
	}
}

func (g *GitSync) runGitTimeout(timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dataDir
	cmd.Env = envWithOverrides(os.Environ(), map[string]string{
		"GIT_TERMINAL_PROMPT": "0",
		"GIT_ASKPASS":         "",
		"SSH_ASKPASS":         "",
	})
	cmd.Stdin = bytes.NewReader(nil)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("git %s timed out after %s", strings.Join(args, " "), timeout)
		}

		errMsg := stderr.String()
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", fmt.Errorf("%s", trimOutput(errMsg))
	}
	return stdout.String(), nil
}

func envWithOverrides(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(overrides))
	seen := make(map[string]bool, len(overrides))
	for _, kv := range base {
		k, _, ok := strings.Cut(kv, "=")
		if !ok {
			out = append(out, kv)
			continue
		}
		if v, ok := overrides[k]; ok {
			out = append(out, k+"="+v)
			seen[k] = true
			continue
		}
		out = append(out, kv)
	}
	for k, v := range overrides {
		if !seen[k] {
			out = append(out, k+"="+v)
		}
	}
	return out
}

func isGitNothingToCommit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nothing to commit") ||
		strings.Contains(msg, "nothing added to commit") ||
		strings.Contains(msg, "no changes added to commit")
}

// trimOutput removes leading/trailing whitespace from command output.
func trimOutput(s string) string {
	return string(bytes.TrimSpace([]byte(s)))
}
