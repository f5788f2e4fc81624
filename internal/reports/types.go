// Package reports provides daily and weekly report generation. Reports
// aggregate tasks, habits, links, and notes into a summary document.
package reports

import (
	"time"

	"mynotion/internal/entity"
)

// DailyReport contains aggregated data for a single day.
type DailyReport struct {
	Date        time.Time    `json:"date"`
	Tasks       TaskSummary  `json:"tasks"`
	Habits      HabitSummary `json:"habits"`
	Notes       NoteSummary  `json:"notes"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// TaskSummary contains task statistics for a period.
type TaskSummary struct {
	Completed      []entity.Task   `json:"completed"`
	Pending        []entity.Task   `json:"pending"`
	CompletedCount int             `json:"completed_count"`
	PendingCount   int             `json:"pending_count"`
	AddedCount     int             `json:"added_count"`
	ByCategory     []CategoryCount `json:"by_category"`
}

// CategoryCount represents completed tasks grouped by category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// HabitSummary contains habit statistics for a day.
type HabitSummary struct {
	Habits         []HabitStatus `json:"habits"`
	CompletedCount int           `json:"completed_count"`
	TotalCount     int           `json:"total_count"`
	CompletionRate float64       `json:"completion_rate"`
}

// HabitStatus represents one habit and its fulfillment on the report day.
type HabitStatus struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
	Done   bool   `json:"done"`
	Count  int    `json:"count"`
	Target int    `json:"target"`
	Streak int    `json:"streak"`
}

// NoteSummary counts notes touched on the report day.
type NoteSummary struct {
	Created  int `json:"created"`
	Modified int `json:"modified"`
	Words    int `json:"words"` // total word count of notes created that day
}

// WeeklyReport contains aggregated data for the 7 days ending at its end
// date.
type WeeklyReport struct {
	StartDate      time.Time           `json:"start_date"`
	EndDate        time.Time           `json:"end_date"`
	TasksCompleted int                 `json:"tasks_completed"`
	TasksAdded     int                 `json:"tasks_added"`
	Habits         []WeeklyHabitStatus `json:"habits"`
	DailyBreakdown []DailySummary      `json:"daily_breakdown"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// WeeklyHabitStatus represents a habit's fulfillment over a week.
type WeeklyHabitStatus struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Emoji          string  `json:"emoji"`
	DaysCompleted  []bool  `json:"days_completed"` // one per day, oldest first
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"`
	Streak         int     `json:"streak"`
}

// DailySummary provides a quick overview of one day within a week.
type DailySummary struct {
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	TasksCompleted int    `json:"tasks_completed"`
	HabitsComplete int    `json:"habits_complete"`
	HabitsTotal    int    `json:"habits_total"`
}
