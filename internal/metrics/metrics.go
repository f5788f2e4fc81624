// Package metrics computes derived analytics from repository snapshots:
// streaks, completion rates, weekly grids, category breakdowns, and the
// 7-day productivity trend. Everything here is a pure function; nothing is
// mutated and nothing is persisted.
package metrics

import (
	"math"
	"sort"
	"time"

	"mynotion/internal/entity"
)

// Streak returns the length of the unbroken run of fulfilled days ending at
// asOf. A day is fulfilled when its completion count reaches the habit's
// target. The walk is anchored at asOf: if asOf itself is unfulfilled the
// streak is 0, no matter how long yesterday's run was.
func Streak(h entity.Habit, asOf time.Time) int {
	target := h.Target
	if target < 1 {
		// A non-positive target would make every day fulfilled and the
		// walk unbounded.
		target = 1
	}

	streak := 0
	day := entity.StartOfDay(asOf)
	for h.CompletionsOn(entity.DayKey(day)) >= target {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// DayCell is one day of a habit's weekly grid.
type DayCell struct {
	Label      string // short weekday name, e.g. "Mon"
	DayOfMonth int
	Completed  bool
}

// WeeklyGrid returns the 7 calendar days ending at asOf inclusive, oldest
// first, each marked fulfilled or not.
func WeeklyGrid(h entity.Habit, asOf time.Time) []DayCell {
	target := h.Target
	if target < 1 {
		target = 1
	}

	grid := make([]DayCell, 0, 7)
	for i := 6; i >= 0; i-- {
		day := entity.StartOfDay(asOf).AddDate(0, 0, -i)
		grid = append(grid, DayCell{
			Label:      day.Format("Mon"),
			DayOfMonth: day.Day(),
			Completed:  h.CompletionsOn(entity.DayKey(day)) >= target,
		})
	}
	return grid
}

// TaskStats summarizes a task collection.
type TaskStats struct {
	Total        int
	Completed    int
	HighPriority int
	Overdue      int
}

// ComputeTaskStats counts totals over tasks. A task is overdue when it has a
// due date in the past and is not completed.
func ComputeTaskStats(tasks []entity.Task, now time.Time) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		if t.Priority == entity.PriorityHigh {
			s.HighPriority++
		}
		if t.DueDate != nil && t.DueDate.Before(now) && !t.Completed {
			s.Overdue++
		}
	}
	return s
}

// CompletionRate returns the percentage of completed tasks, rounded to the
// nearest integer; 0 for an empty collection.
func CompletionRate(tasks []entity.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(tasks)) * 100))
}

// HabitStats summarizes a habit collection as of a date.
type HabitStats struct {
	Total          int
	CompletedToday int
	AverageStreak  int
}

// ComputeHabitStats counts habits fulfilled on asOf's day and the mean
// streak, integer-rounded. An empty collection yields all zeroes.
func ComputeHabitStats(habits []entity.Habit, asOf time.Time) HabitStats {
	s := HabitStats{Total: len(habits)}
	if len(habits) == 0 {
		return s
	}

	dayKey := entity.DayKey(asOf)
	totalStreak := 0
	for _, h := range habits {
		target := h.Target
		if target < 1 {
			target = 1
		}
		if h.CompletionsOn(dayKey) >= target {
			s.CompletedToday++
		}
		totalStreak += Streak(h, asOf)
	}

	s.AverageStreak = int(math.Round(float64(totalStreak) / float64(len(habits))))
	return s
}

// TrendDay is one day of the productivity trend.
type TrendDay struct {
	Label      string
	DayOfMonth int
	Tasks      int // tasks completed that day
	Habits     int // habits fulfilled that day
}

// Total returns the combined activity for the day.
func (d TrendDay) Total() int {
	return d.Tasks + d.Habits
}

// ProductivityTrend returns the 7 calendar days ending at asOf inclusive,
// oldest first, with per-day completed-task and fulfilled-habit counts. A
// task counts on the day of its CompletedAt stamp; tasks persisted before
// completion times were recorded fall back to their creation day.
func ProductivityTrend(tasks []entity.Task, habits []entity.Habit, asOf time.Time) []TrendDay {
	trend := make([]TrendDay, 0, 7)
	for i := 6; i >= 0; i-- {
		day := entity.StartOfDay(asOf).AddDate(0, 0, -i)
		dayKey := entity.DayKey(day)

		td := TrendDay{Label: day.Format("Mon"), DayOfMonth: day.Day()}
		for _, t := range tasks {
			if !t.Completed {
				continue
			}
			when := t.CreatedAt
			if t.CompletedAt != nil {
				when = *t.CompletedAt
			}
			if entity.DayKey(when) == dayKey {
				td.Tasks++
			}
		}
		for _, h := range habits {
			target := h.Target
			if target < 1 {
				target = 1
			}
			if h.CompletionsOn(dayKey) >= target {
				td.Habits++
			}
		}
		trend = append(trend, td)
	}
	return trend
}

// CategoryStat is one category group of the task breakdown.
type CategoryStat struct {
	Category   string
	Total      int
	Completed  int
	Percentage int // completed/total, rounded
}

// Uncategorized is the group name for tasks without a category.
const Uncategorized = "Uncategorized"

// CategoryBreakdown groups tasks by category in first-seen order. Tasks with
// an empty category land in the Uncategorized group. An empty input yields
// an empty slice.
func CategoryBreakdown(tasks []entity.Task) []CategoryStat {
	var order []string
	byName := map[string]*CategoryStat{}

	for _, t := range tasks {
		name := t.Category
		if name == "" {
			name = Uncategorized
		}
		stat, ok := byName[name]
		if !ok {
			stat = &CategoryStat{Category: name}
			byName[name] = stat
			order = append(order, name)
		}
		stat.Total++
		if t.Completed {
			stat.Completed++
		}
	}

	out := make([]CategoryStat, 0, len(order))
	for _, name := range order {
		stat := byName[name]
		if stat.Total > 0 {
			stat.Percentage = int(math.Round(float64(stat.Completed) / float64(stat.Total) * 100))
		}
		out = append(out, *stat)
	}
	return out
}

// MostVisited returns the links with at least one visit, ordered by visit
// count descending. limit <= 0 means no limit.
func MostVisited(links []entity.Link, limit int) []entity.Link {
	visited := make([]entity.Link, 0, len(links))
	for _, l := range links {
		if l.VisitCount > 0 {
			visited = append(visited, l)
		}
	}
	sort.SliceStable(visited, func(i, j int) bool {
		return visited[i].VisitCount > visited[j].VisitCount
	})
	if limit > 0 && len(visited) > limit {
		visited = visited[:limit]
	}
	return visited
}
