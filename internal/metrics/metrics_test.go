package metrics

import (
	"testing"
	"time"

	"mynotion/internal/entity"
)

var asOf = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.Local)

// habitWithRun builds a habit fulfilled on the given day offsets relative to
// asOf (0 is asOf, -1 is yesterday).
func habitWithRun(target int, offsets ...int) entity.Habit {
	h := entity.Habit{Name: "test", Target: target, Completions: map[string]int{}}
	for _, off := range offsets {
		day := entity.StartOfDay(asOf).AddDate(0, 0, off)
		h.Completions[entity.DayKey(day)] = target
	}
	return h
}

func TestStreakAnchoredAtAsOf(t *testing.T) {
	tests := []struct {
		name  string
		habit entity.Habit
		want  int
	}{
		{"no completions", habitWithRun(1), 0},
		{"today only", habitWithRun(1, 0), 1},
		{"three day run", habitWithRun(1, 0, -1, -2), 3},
		{"today missed breaks run", habitWithRun(1, -1, -2, -3), 0},
		{"gap stops the walk", habitWithRun(1, 0, -1, -3, -4), 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Streak(tc.habit, asOf); got != tc.want {
				t.Errorf("Streak() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStreakRespectsTarget(t *testing.T) {
	h := entity.Habit{Target: 3, Completions: map[string]int{
		entity.DayKey(asOf):                   3,
		entity.DayKey(asOf.AddDate(0, 0, -1)): 2, // below target, not fulfilled
	}}
	if got := Streak(h, asOf); got != 1 {
		t.Errorf("Streak() = %d, want 1", got)
	}
}

func TestStreakZeroTargetTerminates(t *testing.T) {
	// A target of 0 must not turn every empty day into a fulfilled one.
	h := entity.Habit{Target: 0, Completions: map[string]int{
		entity.DayKey(asOf): 1,
	}}
	if got := Streak(h, asOf); got != 1 {
		t.Errorf("Streak() = %d, want 1", got)
	}
}

func TestWeeklyGrid(t *testing.T) {
	h := habitWithRun(1, 0, -2)
	grid := WeeklyGrid(h, asOf)

	if len(grid) != 7 {
		t.Fatalf("len = %d, want 7", len(grid))
	}
	// Oldest first: index 6 is asOf itself.
	if grid[6].Label != "Tue" || grid[6].DayOfMonth != 1 {
		t.Errorf("grid[6] = %+v, want Tue 1", grid[6])
	}
	if grid[0].Label != "Wed" || grid[0].DayOfMonth != 26 {
		t.Errorf("grid[0] = %+v, want Wed 26", grid[0])
	}
	wantDone := []bool{false, false, false, false, true, false, true}
	for i, cell := range grid {
		if cell.Completed != wantDone[i] {
			t.Errorf("grid[%d].Completed = %v, want %v", i, cell.Completed, wantDone[i])
		}
	}
}

func TestComputeTaskStats(t *testing.T) {
	past := asOf.AddDate(0, 0, -1)
	future := asOf.AddDate(0, 0, 1)
	tasks := []entity.Task{
		{Title: "a", Completed: true, Priority: entity.PriorityHigh},
		{Title: "b", DueDate: &past},                   // overdue
		{Title: "c", DueDate: &past, Completed: true},  // past due but done
		{Title: "d", DueDate: &future},                 // not due yet
		{Title: "e", Priority: entity.PriorityHigh},
	}

	got := ComputeTaskStats(tasks, asOf)
	want := TaskStats{Total: 5, Completed: 2, HighPriority: 2, Overdue: 1}
	if got != want {
		t.Errorf("ComputeTaskStats() = %+v, want %+v", got, want)
	}
}

func TestComputeTaskStatsEmpty(t *testing.T) {
	if got := ComputeTaskStats(nil, asOf); got != (TaskStats{}) {
		t.Errorf("ComputeTaskStats(nil) = %+v, want zeroes", got)
	}
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty", 0, 0, 0},
		{"none done", 0, 4, 0},
		{"all done", 4, 4, 100},
		{"one of three rounds", 1, 3, 33},
		{"two of three rounds", 2, 3, 67},
		{"half", 1, 2, 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks := make([]entity.Task, tc.total)
			for i := 0; i < tc.completed; i++ {
				tasks[i].Completed = true
			}
			if got := CompletionRate(tasks); got != tc.want {
				t.Errorf("CompletionRate() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeHabitStats(t *testing.T) {
	habits := []entity.Habit{
		habitWithRun(1, 0, -1, -2), // streak 3, done today
		habitWithRun(1, -1),        // streak 0, not today
	}

	got := ComputeHabitStats(habits, asOf)
	if got.Total != 2 {
		t.Errorf("Total = %d, want 2", got.Total)
	}
	if got.CompletedToday != 1 {
		t.Errorf("CompletedToday = %d, want 1", got.CompletedToday)
	}
	// Mean of 3 and 0, rounded.
	if got.AverageStreak != 2 {
		t.Errorf("AverageStreak = %d, want 2", got.AverageStreak)
	}
}

func TestComputeHabitStatsEmpty(t *testing.T) {
	if got := ComputeHabitStats(nil, asOf); got != (HabitStats{}) {
		t.Errorf("ComputeHabitStats(nil) = %+v, want zeroes", got)
	}
}

func TestProductivityTrend(t *testing.T) {
	yesterday := asOf.AddDate(0, 0, -1)
	tasks := []entity.Task{
		{Title: "a", Completed: true, CompletedAt: &asOf},
		{Title: "b", Completed: true, CompletedAt: &yesterday},
		{Title: "c", Completed: false, CreatedAt: asOf}, // pending, never counted
	}
	habits := []entity.Habit{habitWithRun(1, 0)}

	trend := ProductivityTrend(tasks, habits, asOf)
	if len(trend) != 7 {
		t.Fatalf("len = %d, want 7", len(trend))
	}
	today := trend[6]
	if today.Tasks != 1 || today.Habits != 1 || today.Total() != 2 {
		t.Errorf("today = %+v, want 1 task, 1 habit", today)
	}
	if trend[5].Tasks != 1 || trend[5].Habits != 0 {
		t.Errorf("yesterday = %+v, want 1 task, 0 habits", trend[5])
	}
	if trend[0].Total() != 0 {
		t.Errorf("oldest day = %+v, want empty", trend[0])
	}
}

func TestProductivityTrendCreatedAtFallback(t *testing.T) {
	// Completed tasks persisted before completion stamps existed count on
	// their creation day.
	created := asOf.AddDate(0, 0, -2)
	tasks := []entity.Task{{Title: "old", Completed: true, CreatedAt: created}}

	trend := ProductivityTrend(tasks, nil, asOf)
	if trend[4].Tasks != 1 {
		t.Errorf("trend[4].Tasks = %d, want 1", trend[4].Tasks)
	}
	if trend[6].Tasks != 0 {
		t.Errorf("trend[6].Tasks = %d, want 0", trend[6].Tasks)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	tasks := []entity.Task{
		{Title: "a", Category: "work", Completed: true},
		{Title: "b", Category: "home"},
		{Title: "c", Category: "work"},
		{Title: "d"}, // no category
	}

	got := CategoryBreakdown(tasks)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// First-seen order.
	if got[0].Category != "work" || got[1].Category != "home" || got[2].Category != Uncategorized {
		t.Errorf("order = %v", got)
	}
	if got[0].Total != 2 || got[0].Completed != 1 || got[0].Percentage != 50 {
		t.Errorf("work = %+v", got[0])
	}
	if got[2].Total != 1 || got[2].Percentage != 0 {
		t.Errorf("uncategorized = %+v", got[2])
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Errorf("CategoryBreakdown(nil) = %v, want empty", got)
	}
}

func TestMostVisited(t *testing.T) {
	links := []entity.Link{
		{Title: "never", VisitCount: 0},
		{Title: "rare", VisitCount: 1},
		{Title: "daily", VisitCount: 9},
		{Title: "weekly", VisitCount: 3},
	}

	got := MostVisited(links, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "daily" || got[1].Title != "weekly" {
		t.Errorf("MostVisited() = %v", got)
	}

	all := MostVisited(links, 0)
	if len(all) != 3 {
		t.Errorf("no-limit len = %d, want 3 (unvisited excluded)", len(all))
	}
}

func TestMostVisitedStableForTies(t *testing.T) {
	links := []entity.Link{
		{Title: "first", VisitCount: 2},
		{Title: "second", VisitCount: 2},
	}
	got := MostVisited(links, 0)
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Errorf("tie order = %v, want input order", got)
	}
}
