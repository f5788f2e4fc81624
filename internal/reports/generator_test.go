package reports

import (
	"strings"
	"testing"
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
	"mynotion/internal/store"
)

var reportDay = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)

func newTestRepos(t *testing.T) *repo.Set {
	t.Helper()
	s, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.New() error: %v", err)
	}
	return repo.NewSet(s)
}

func seedTasks(t *testing.T, repos *repo.Set, tasks []entity.Task) {
	t.Helper()
	if err := repos.Tasks.ReplaceAll(tasks); err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}
}

func TestGenerateDailyTaskWindows(t *testing.T) {
	repos := newTestRepos(t)

	doneToday := reportDay.Add(-time.Hour)
	doneYesterday := reportDay.AddDate(0, 0, -1)
	seedTasks(t, repos, []entity.Task{
		{ID: 1, Title: "done today", Completed: true, CompletedAt: &doneToday, CreatedAt: doneYesterday, Category: "work"},
		{ID: 2, Title: "done yesterday", Completed: true, CompletedAt: &doneYesterday, CreatedAt: doneYesterday},
		{ID: 3, Title: "still open", CreatedAt: doneToday},
		{ID: 4, Title: "added today", CreatedAt: reportDay},
	})

	report, err := NewGenerator(repos).GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily() error: %v", err)
	}

	if report.Tasks.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", report.Tasks.CompletedCount)
	}
	if len(report.Tasks.Completed) != 1 || report.Tasks.Completed[0].Title != "done today" {
		t.Errorf("Completed = %v", report.Tasks.Completed)
	}
	// Pending counts open tasks regardless of age.
	if report.Tasks.PendingCount != 2 {
		t.Errorf("PendingCount = %d, want 2", report.Tasks.PendingCount)
	}
	if report.Tasks.AddedCount != 2 {
		t.Errorf("AddedCount = %d, want 2 (created today)", report.Tasks.AddedCount)
	}
	if len(report.Tasks.ByCategory) != 1 || report.Tasks.ByCategory[0].Category != "work" {
		t.Errorf("ByCategory = %v", report.Tasks.ByCategory)
	}
}

func TestGenerateDailyHabits(t *testing.T) {
	repos := newTestRepos(t)

	today := entity.DayKey(reportDay)
	yesterday := entity.DayKey(reportDay.AddDate(0, 0, -1))
	habits := []entity.Habit{
		{ID: 1, Name: "run", Target: 1, Completions: map[string]int{today: 1, yesterday: 1}},
		{ID: 2, Name: "read", Target: 2, Completions: map[string]int{today: 1}},
	}
	if err := repos.Habits.ReplaceAll(habits); err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}

	report, err := NewGenerator(repos).GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily() error: %v", err)
	}

	h := report.Habits
	if h.TotalCount != 2 || h.CompletedCount != 1 {
		t.Errorf("counts = %d/%d, want 1 of 2", h.CompletedCount, h.TotalCount)
	}
	if h.CompletionRate != 50 {
		t.Errorf("CompletionRate = %f, want 50", h.CompletionRate)
	}
	if !h.Habits[0].Done || h.Habits[0].Streak != 2 {
		t.Errorf("habit run = %+v, want done with streak 2", h.Habits[0])
	}
	// Below target is not done, but its raw count still shows.
	if h.Habits[1].Done || h.Habits[1].Count != 1 {
		t.Errorf("habit read = %+v", h.Habits[1])
	}
}

func TestGenerateDailyNotes(t *testing.T) {
	repos := newTestRepos(t)

	old := reportDay.AddDate(0, 0, -3)
	notes := []entity.Note{
		{ID: 1, Title: "fresh", WordCount: 10, CreatedAt: reportDay, ModifiedAt: reportDay},
		{ID: 2, Title: "edited", WordCount: 99, CreatedAt: old, ModifiedAt: reportDay},
		{ID: 3, Title: "stale", WordCount: 7, CreatedAt: old, ModifiedAt: old},
	}
	if err := repos.Notes.ReplaceAll(notes); err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}

	report, err := NewGenerator(repos).GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily() error: %v", err)
	}

	n := report.Notes
	if n.Created != 1 || n.Modified != 1 {
		t.Errorf("notes = %+v, want 1 created, 1 modified", n)
	}
	// Word totals cover notes created in the window only.
	if n.Words != 10 {
		t.Errorf("Words = %d, want 10", n.Words)
	}
}

func TestGenerateDailyEmpty(t *testing.T) {
	repos := newTestRepos(t)

	report, err := NewGenerator(repos).GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily() error: %v", err)
	}
	if report.Tasks.CompletedCount != 0 || report.Habits.TotalCount != 0 || report.Notes.Created != 0 {
		t.Errorf("empty report = %+v", report)
	}
	if !report.Date.Equal(entity.StartOfDay(reportDay)) {
		t.Errorf("Date = %v, want start of day", report.Date)
	}
}

func TestGenerateWeekly(t *testing.T) {
	repos := newTestRepos(t)

	inWeek := reportDay.AddDate(0, 0, -2)
	beforeWeek := reportDay.AddDate(0, 0, -10)
	seedTasks(t, repos, []entity.Task{
		{ID: 1, Title: "recent", Completed: true, CompletedAt: &inWeek, CreatedAt: inWeek},
		{ID: 2, Title: "ancient", Completed: true, CompletedAt: &beforeWeek, CreatedAt: beforeWeek},
		{ID: 3, Title: "open", CreatedAt: inWeek},
	})

	dayKeys := map[string]int{}
	for i := 0; i < 3; i++ {
		dayKeys[entity.DayKey(reportDay.AddDate(0, 0, -i))] = 1
	}
	if err := repos.Habits.ReplaceAll([]entity.Habit{
		{ID: 1, Name: "walk", Target: 1, Completions: dayKeys},
	}); err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}

	report, err := NewGenerator(repos).GenerateWeekly(reportDay)
	if err != nil {
		t.Fatalf("GenerateWeekly() error: %v", err)
	}

	if report.TasksCompleted != 1 {
		t.Errorf("TasksCompleted = %d, want 1 (outside week excluded)", report.TasksCompleted)
	}
	if report.TasksAdded != 2 {
		t.Errorf("TasksAdded = %d, want 2", report.TasksAdded)
	}
	if len(report.DailyBreakdown) != 7 {
		t.Fatalf("DailyBreakdown = %d days, want 7", len(report.DailyBreakdown))
	}
	if len(report.Habits) != 1 {
		t.Fatalf("Habits = %v", report.Habits)
	}

	h := report.Habits[0]
	if h.CompletedCount != 3 || h.Streak != 3 {
		t.Errorf("habit = %+v, want 3 completions, streak 3", h)
	}
	// Oldest day first; the last three days are the fulfilled ones.
	want := []bool{false, false, false, false, true, true, true}
	for i, done := range h.DaysCompleted {
		if done != want[i] {
			t.Errorf("DaysCompleted[%d] = %v, want %v", i, done, want[i])
		}
	}

	last := report.DailyBreakdown[6]
	if last.HabitsComplete != 1 || last.HabitsTotal != 1 {
		t.Errorf("last day = %+v", last)
	}
	if report.DailyBreakdown[4].TasksCompleted != 1 {
		t.Errorf("breakdown[4] = %+v, want the completed task", report.DailyBreakdown[4])
	}
}

func TestFormatDailyMarkdown(t *testing.T) {
	repos := newTestRepos(t)
	done := reportDay.Add(-time.Hour)
	seedTasks(t, repos, []entity.Task{
		{ID: 1, Title: "ship release", Completed: true, CompletedAt: &done, CreatedAt: done},
		{ID: 2, Title: "file taxes", CreatedAt: done},
	})

	report, err := NewGenerator(repos).GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily() error: %v", err)
	}

	md := FormatDailyMarkdown(report)
	for _, want := range []string{"# Daily Report", "- [x] ship release", "### Pending", "- [ ] file taxes"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatDailyJSON(t *testing.T) {
	repos := newTestRepos(t)

	report, err := NewGenerator(repos).GenerateDaily(reportDay)
	if err != nil {
		t.Fatalf("GenerateDaily() error: %v", err)
	}

	data, err := FormatDailyJSON(report)
	if err != nil {
		t.Fatalf("FormatDailyJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"completed_count"`) {
		t.Errorf("JSON missing expected fields:\n%s", data)
	}
}

func TestFormatWeeklyMarkdown(t *testing.T) {
	repos := newTestRepos(t)
	if err := repos.Habits.ReplaceAll([]entity.Habit{
		{ID: 1, Name: "meditate", Target: 1, Completions: map[string]int{entity.DayKey(reportDay): 1}},
	}); err != nil {
		t.Fatalf("ReplaceAll() error: %v", err)
	}

	report, err := NewGenerator(repos).GenerateWeekly(reportDay)
	if err != nil {
		t.Fatalf("GenerateWeekly() error: %v", err)
	}

	md := FormatWeeklyMarkdown(report)
	for _, want := range []string{"# Weekly Report", "meditate"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
