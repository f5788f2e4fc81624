package repo

import (
	"fmt"
	"strings"
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/store"
)

const maxTaskTitleLen = 200

// Tasks is the repository for todo tasks.
type Tasks struct {
	c collection[entity.Task]
}

// NewTasks creates the task repository.
func NewTasks(s *store.Store) *Tasks {
	return &Tasks{c: collection[entity.Task]{s: s, key: KeyTasks}}
}

// All returns every stored task in creation order.
func (r *Tasks) All() ([]entity.Task, error) {
	return r.c.all()
}

// ReplaceAll overwrites the stored collection.
func (r *Tasks) ReplaceAll(tasks []entity.Task) error {
	return r.c.replaceAll(tasks)
}

// TaskDraft holds the caller-supplied fields for a new task.
type TaskDraft struct {
	Title       string
	Description string
	Priority    entity.Priority
	Category    string
	DueDate     *time.Time
}

// Create validates the draft, assigns ID and defaults, appends, and persists.
func (r *Tasks) Create(d TaskDraft) (entity.Task, error) {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)

	if d.Title == "" {
		return entity.Task{}, entity.Invalid("title", "required")
	}
	if len(d.Title) > maxTaskTitleLen {
		return entity.Task{}, entity.Invalid("title", fmt.Sprintf("too long (max %d)", maxTaskTitleLen))
	}
	if d.Priority == "" {
		d.Priority = entity.PriorityMedium
	}
	if !entity.ValidPriority(d.Priority) {
		return entity.Task{}, entity.Invalid("priority", "must be low, medium, or high")
	}

	tasks, err := r.All()
	if err != nil {
		return entity.Task{}, err
	}

	now := r.c.s.Now()
	task := entity.Task{
		ID:          entity.NewID(now),
		Title:       d.Title,
		Description: d.Description,
		Priority:    d.Priority,
		Category:    d.Category,
		DueDate:     d.DueDate,
		CreatedAt:   now,
	}

	tasks = append(tasks, task)
	if err := r.ReplaceAll(tasks); err != nil {
		return entity.Task{}, err
	}
	return task, nil
}

// TaskPatch selects the fields Update applies. Nil fields are untouched.
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *entity.Priority
	Category     *string
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

// Update merges the patch over the stored task. Marking a task completed
// records CompletedAt; unmarking clears it.
func (r *Tasks) Update(id int64, p TaskPatch) (entity.Task, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return entity.Task{}, entity.Invalid("title", "required")
		}
		if len(title) > maxTaskTitleLen {
			return entity.Task{}, entity.Invalid("title", fmt.Sprintf("too long (max %d)", maxTaskTitleLen))
		}
		p.Title = &title
	}
	if p.Priority != nil && !entity.ValidPriority(*p.Priority) {
		return entity.Task{}, entity.Invalid("priority", "must be low, medium, or high")
	}

	tasks, err := r.All()
	if err != nil {
		return entity.Task{}, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		t := &tasks[i]
		if p.Title != nil {
			t.Title = *p.Title
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Priority != nil {
			t.Priority = *p.Priority
		}
		if p.Category != nil {
			t.Category = strings.TrimSpace(*p.Category)
		}
		if p.DueDate != nil {
			t.DueDate = p.DueDate
		} else if p.ClearDueDate {
			t.DueDate = nil
		}
		if p.Completed != nil && *p.Completed != t.Completed {
			r.setCompleted(t, *p.Completed)
		}
		if err := r.ReplaceAll(tasks); err != nil {
			return entity.Task{}, err
		}
		return *t, nil
	}

	return entity.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

// Toggle flips a task's completion state.
func (r *Tasks) Toggle(id int64) (entity.Task, error) {
	tasks, err := r.All()
	if err != nil {
		return entity.Task{}, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		r.setCompleted(&tasks[i], !tasks[i].Completed)
		if err := r.ReplaceAll(tasks); err != nil {
			return entity.Task{}, err
		}
		return tasks[i], nil
	}

	return entity.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
}

func (r *Tasks) setCompleted(t *entity.Task, done bool) {
	t.Completed = done
	if done {
		now := r.c.s.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
}

// Delete removes the task with the given ID. Deleting an absent ID persists
// the unchanged collection and reports success.
func (r *Tasks) Delete(id int64) error {
	tasks, err := r.All()
	if err != nil {
		return err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return r.ReplaceAll(kept)
}
