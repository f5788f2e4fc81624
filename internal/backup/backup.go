// Package backup manages timestamped snapshots of the data directory. A
// backup is a directory holding a copy of every collection file plus a
// manifest with per-collection entity counts.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"mynotion/internal/fsutil"
	"mynotion/internal/repo"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// backupFiles lists the data files included in a backup.
func backupFiles() []string {
	files := make([]string, 0, len(repo.CollectionKeys)+1)
	for _, key := range repo.CollectionKeys {
		files = append(files, key+".json")
	}
	return append(files, repo.SettingsKey+".json")
}

// Manager handles backup and restore operations over one data directory.
type Manager struct {
	dataDir    string
	backupDir  string
	appVersion string
}

// Manifest describes one backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Counts     map[string]int `json:"counts"` // collection key -> entities
}

// Info is summary information about a backup.
type Info struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Counts    map[string]int
}

// NewManager creates a backup manager rooted at dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots every collection file into a new timestamped backup and
// returns the backup name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)
	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	var copied []string
	counts := make(map[string]int)

	for _, filename := range backupFiles() {
		srcPath := filepath.Join(m.dataDir, filename)
		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}

		if err := copyFileAtomic(srcPath, filepath.Join(backupPath, filename)); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("copy %s: %w", filename, err)
		}
		copied = append(copied, filename)

		key := strings.TrimSuffix(filename, ".json")
		if n, err := countEntities(srcPath); err == nil {
			counts[key] = n
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copied,
		Counts:     counts,
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		backupPath := filepath.Join(m.backupDir, entry.Name())
		var manifest Manifest
		if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
			createdAt, parseErr := parseName(entry.Name())
			if parseErr != nil {
				continue
			}
			manifest.CreatedAt = createdAt
			manifest.Counts = make(map[string]int)
		}

		backups = append(backups, Info{
			Name:      entry.Name(),
			Path:      backupPath,
			CreatedAt: manifest.CreatedAt,
			Counts:    manifest.Counts,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore copies a backup's files back into the data directory, taking a
// safety backup of the current state first.
func (m *Manager) Restore(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		manifest.Files = backupFiles()
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("create safety backup: %w", err)
	}

	for _, filename := range manifest.Files {
		srcPath := filepath.Join(backupPath, filename)
		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}
		if err := copyFileAtomic(srcPath, filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	for _, filename := range manifest.Files {
		if err := validateJSON(filepath.Join(m.dataDir, filename)); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", filename, safetyName, err)
		}
	}
	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}
	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping the keepCount most recent. It returns
// how many were deleted.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

// parseName parses a backup directory name (2006-01-02_150405_XXX) into its
// timestamp.
func parseName(name string) (time.Time, error) {
	if len(name) != 21 || name[17] != '_' {
		return time.Time{}, fmt.Errorf("invalid backup name format")
	}
	base, err := time.Parse("2006-01-02_150405", name[:17])
	if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.Atoi(name[18:])
	if err != nil || ms < 0 || ms > 999 {
		return time.Time{}, fmt.Errorf("invalid milliseconds")
	}
	return base.Add(time.Duration(ms) * time.Millisecond), nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var v any
	return json.Unmarshal(data, &v)
}

// countEntities counts the elements of a collection file. The settings file
// is an object, not an array, and counts as zero.
func countEntities(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, nil
	}
	return len(items), nil
}
