package repo

import (
	"fmt"
	"strings"

	"mynotion/internal/entity"
	"mynotion/internal/store"
)

const (
	maxHabitNameLen  = 60
	maxHabitEmojiLen = 12
)

// Habits is the repository for tracked habits.
type Habits struct {
	c collection[entity.Habit]
}

// NewHabits creates the habit repository.
func NewHabits(s *store.Store) *Habits {
	return &Habits{c: collection[entity.Habit]{s: s, key: KeyHabits}}
}

// All returns every stored habit in creation order.
func (r *Habits) All() ([]entity.Habit, error) {
	return r.c.all()
}

// ReplaceAll overwrites the stored collection.
func (r *Habits) ReplaceAll(habits []entity.Habit) error {
	return r.c.replaceAll(habits)
}

// HabitDraft holds the caller-supplied fields for a new habit.
type HabitDraft struct {
	Name   string
	Target int // completions required per day; 0 means the default of 1
	Emoji  string
}

// Create validates the draft, assigns ID and defaults, appends, and persists.
func (r *Habits) Create(d HabitDraft) (entity.Habit, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Emoji = strings.TrimSpace(d.Emoji)

	if d.Name == "" {
		return entity.Habit{}, entity.Invalid("name", "required")
	}
	if len(d.Name) > maxHabitNameLen {
		return entity.Habit{}, entity.Invalid("name", fmt.Sprintf("too long (max %d)", maxHabitNameLen))
	}
	if len(d.Emoji) > maxHabitEmojiLen {
		return entity.Habit{}, entity.Invalid("emoji", fmt.Sprintf("too long (max %d)", maxHabitEmojiLen))
	}
	if d.Target < 0 {
		return entity.Habit{}, entity.Invalid("target", "must be positive")
	}
	if d.Target == 0 {
		d.Target = 1
	}

	habits, err := r.All()
	if err != nil {
		return entity.Habit{}, err
	}

	now := r.c.s.Now()
	habit := entity.Habit{
		ID:          entity.NewID(now),
		Name:        d.Name,
		Target:      d.Target,
		Emoji:       d.Emoji,
		Completions: map[string]int{},
		CreatedAt:   now,
	}

	habits = append(habits, habit)
	if err := r.ReplaceAll(habits); err != nil {
		return entity.Habit{}, err
	}
	return habit, nil
}

// HabitPatch selects the fields Update applies. Nil fields are untouched.
type HabitPatch struct {
	Name   *string
	Target *int
	Emoji  *string
}

// Update merges the patch over the stored habit.
func (r *Habits) Update(id int64, p HabitPatch) (entity.Habit, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return entity.Habit{}, entity.Invalid("name", "required")
		}
		if len(name) > maxHabitNameLen {
			return entity.Habit{}, entity.Invalid("name", fmt.Sprintf("too long (max %d)", maxHabitNameLen))
		}
		p.Name = &name
	}
	if p.Target != nil && *p.Target < 1 {
		return entity.Habit{}, entity.Invalid("target", "must be positive")
	}

	habits, err := r.All()
	if err != nil {
		return entity.Habit{}, err
	}

	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		h := &habits[i]
		if p.Name != nil {
			h.Name = *p.Name
		}
		if p.Target != nil {
			h.Target = *p.Target
		}
		if p.Emoji != nil {
			h.Emoji = strings.TrimSpace(*p.Emoji)
		}
		if err := r.ReplaceAll(habits); err != nil {
			return entity.Habit{}, err
		}
		return *h, nil
	}

	return entity.Habit{}, fmt.Errorf("habit %d: %w", id, ErrNotFound)
}

// ToggleCompletion advances a habit's completion count for the given day.
// Below target the count increments; at or above target it wraps back to 0,
// so one extra "complete" past the target cycles the day to zero rather than
// counting beyond it.
func (r *Habits) ToggleCompletion(id int64, dayKey string) (entity.Habit, error) {
	if _, err := entity.ParseDayKey(dayKey); err != nil {
		return entity.Habit{}, entity.Invalid("day", fmt.Sprintf("%q is not a canonical day key", dayKey))
	}

	habits, err := r.All()
	if err != nil {
		return entity.Habit{}, err
	}

	for i := range habits {
		if habits[i].ID != id {
			continue
		}
		h := &habits[i]
		if h.Completions == nil {
			h.Completions = map[string]int{}
		}
		if count := h.Completions[dayKey]; count < h.Target {
			h.Completions[dayKey] = count + 1
		} else {
			h.Completions[dayKey] = 0
		}
		if err := r.ReplaceAll(habits); err != nil {
			return entity.Habit{}, err
		}
		return *h, nil
	}

	return entity.Habit{}, fmt.Errorf("habit %d: %w", id, ErrNotFound)
}

// Delete removes the habit with the given ID, idempotently.
func (r *Habits) Delete(id int64) error {
	habits, err := r.All()
	if err != nil {
		return err
	}

	kept := habits[:0]
	for _, h := range habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	return r.ReplaceAll(kept)
}
