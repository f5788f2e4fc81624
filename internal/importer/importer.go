// Package importer provides import functionality for migrating tasks from
// other productivity tools like Todoist and Taskwarrior.
package importer

import (
	"io"
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int      // Number of successfully imported tasks
	Skipped  int      // Number of skipped items (deleted tasks, notes, etc.)
	Errors   []string // Error messages for failed imports
}

// PreviewTask represents a task preview before import.
type PreviewTask struct {
	Title    string
	Category string
	Priority entity.Priority
	DueDate  *time.Time
	Done     bool
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads tasks from the reader and adds them to the repository.
	Import(reader io.Reader, repos *repo.Set) (*ImportResult, error)

	// Preview reads tasks from the reader without importing.
	Preview(reader io.Reader) ([]PreviewTask, error)

	// Name returns the importer name (e.g., "todoist", "taskwarrior").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "todoist":
		return &TodoistImporter{}
	case "taskwarrior":
		return &TaskwarriorImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"todoist", "taskwarrior"}
}

// importPreviews adds parsed tasks through the repository, toggling ones
// that arrived already completed.
func importPreviews(tasks []PreviewTask, repos *repo.Set) *ImportResult {
	result := &ImportResult{}

	for _, task := range tasks {
		created, err := repos.Tasks.Create(repo.TaskDraft{
			Title:    task.Title,
			Category: task.Category,
			Priority: task.Priority,
			DueDate:  task.DueDate,
		})
		if err != nil {
			result.Errors = append(result.Errors, task.Title+": "+err.Error())
			continue
		}
		if task.Done {
			if _, err := repos.Tasks.Toggle(created.ID); err != nil {
				result.Errors = append(result.Errors, "failed to mark "+task.Title+" as complete: "+err.Error())
			}
		}
		result.Imported++
	}

	return result
}
