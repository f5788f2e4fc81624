package reports

import (
	"sort"
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/metrics"
	"mynotion/internal/repo"
)

// Generator creates reports from repository data.
type Generator struct {
	repos *repo.Set
}

// NewGenerator creates a new report generator.
func NewGenerator(repos *repo.Set) *Generator {
	return &Generator{repos: repos}
}

// GenerateDaily generates a report for a specific date.
func (g *Generator) GenerateDaily(date time.Time) (*DailyReport, error) {
	date = entity.StartOfDay(date)
	end := date.AddDate(0, 0, 1)

	tasks, err := g.taskSummary(date, end)
	if err != nil {
		return nil, err
	}

	habits, err := g.habitSummary(date)
	if err != nil {
		return nil, err
	}

	notes, err := g.noteSummary(date, end)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		Date:        date,
		Tasks:       tasks,
		Habits:      habits,
		Notes:       notes,
		GeneratedAt: time.Now(),
	}, nil
}

// GenerateWeekly generates a report for the 7 days ending at date
// inclusive.
func (g *Generator) GenerateWeekly(date time.Time) (*WeeklyReport, error) {
	end := entity.StartOfDay(date).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -7)

	tasks, err := g.repos.Tasks.All()
	if err != nil {
		return nil, err
	}
	habits, err := g.repos.Habits.All()
	if err != nil {
		return nil, err
	}

	report := &WeeklyReport{
		StartDate:   start,
		EndDate:     end.Add(-time.Second),
		GeneratedAt: time.Now(),
	}

	for _, t := range tasks {
		if !t.CreatedAt.Before(start) && t.CreatedAt.Before(end) {
			report.TasksAdded++
		}
		if done := completionTime(t); done != nil && !done.Before(start) && done.Before(end) {
			report.TasksCompleted++
		}
	}

	for _, h := range habits {
		status := WeeklyHabitStatus{
			ID:            h.ID,
			Name:          h.Name,
			Emoji:         h.Emoji,
			DaysCompleted: make([]bool, 7),
			Streak:        metrics.Streak(h, date),
		}
		target := h.Target
		if target < 1 {
			target = 1
		}
		for i := 0; i < 7; i++ {
			day := start.AddDate(0, 0, i)
			if h.CompletionsOn(entity.DayKey(day)) >= target {
				status.DaysCompleted[i] = true
				status.CompletedCount++
			}
		}
		status.CompletionRate = float64(status.CompletedCount) / 7 * 100
		report.Habits = append(report.Habits, status)
	}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		dayEnd := day.AddDate(0, 0, 1)
		summary := DailySummary{
			Date:        day.Format("2006-01-02"),
			DayOfWeek:   day.Format("Monday"),
			HabitsTotal: len(habits),
		}
		for _, t := range tasks {
			if done := completionTime(t); done != nil && !done.Before(day) && done.Before(dayEnd) {
				summary.TasksCompleted++
			}
		}
		for _, s := range report.Habits {
			if s.DaysCompleted[i] {
				summary.HabitsComplete++
			}
		}
		report.DailyBreakdown = append(report.DailyBreakdown, summary)
	}

	return report, nil
}

func (g *Generator) taskSummary(start, end time.Time) (TaskSummary, error) {
	tasks, err := g.repos.Tasks.All()
	if err != nil {
		return TaskSummary{}, err
	}

	var summary TaskSummary
	categoryCounts := make(map[string]int)

	for _, t := range tasks {
		if !t.CreatedAt.Before(start) && t.CreatedAt.Before(end) {
			summary.AddedCount++
		}

		if done := completionTime(t); done != nil {
			if !done.Before(start) && done.Before(end) {
				summary.Completed = append(summary.Completed, t)
				category := t.Category
				if category == "" {
					category = metrics.Uncategorized
				}
				categoryCounts[category]++
			}
		} else if !t.Completed {
			summary.Pending = append(summary.Pending, t)
		}
	}

	summary.CompletedCount = len(summary.Completed)
	summary.PendingCount = len(summary.Pending)

	summary.ByCategory = make([]CategoryCount, 0, len(categoryCounts))
	for category, count := range categoryCounts {
		summary.ByCategory = append(summary.ByCategory, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if summary.ByCategory[i].Count != summary.ByCategory[j].Count {
			return summary.ByCategory[i].Count > summary.ByCategory[j].Count
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary, nil
}

func (g *Generator) habitSummary(date time.Time) (HabitSummary, error) {
	habits, err := g.repos.Habits.All()
	if err != nil {
		return HabitSummary{}, err
	}

	summary := HabitSummary{TotalCount: len(habits)}
	dayKey := entity.DayKey(date)

	for _, h := range habits {
		target := h.Target
		if target < 1 {
			target = 1
		}
		count := h.CompletionsOn(dayKey)
		done := count >= target
		if done {
			summary.CompletedCount++
		}
		summary.Habits = append(summary.Habits, HabitStatus{
			ID:     h.ID,
			Name:   h.Name,
			Emoji:  h.Emoji,
			Done:   done,
			Count:  count,
			Target: target,
			Streak: metrics.Streak(h, date),
		})
	}

	if summary.TotalCount > 0 {
		summary.CompletionRate = float64(summary.CompletedCount) / float64(summary.TotalCount) * 100
	}
	return summary, nil
}

func (g *Generator) noteSummary(start, end time.Time) (NoteSummary, error) {
	notes, err := g.repos.Notes.All()
	if err != nil {
		return NoteSummary{}, err
	}

	var summary NoteSummary
	for _, n := range notes {
		if !n.CreatedAt.Before(start) && n.CreatedAt.Before(end) {
			summary.Created++
			summary.Words += n.WordCount
		} else if !n.ModifiedAt.Before(start) && n.ModifiedAt.Before(end) {
			summary.Modified++
		}
	}
	return summary, nil
}

// completionTime returns when a task was completed, falling back to its
// creation time for records persisted before completion stamps existed.
func completionTime(t entity.Task) *time.Time {
	if !t.Completed {
		return nil
	}
	if t.CompletedAt != nil {
		return t.CompletedAt
	}
	return &t.CreatedAt
}
