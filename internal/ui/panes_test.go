package ui

import (
	"strings"
	"testing"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
)

func TestTasksPaneCursorNavigation(t *testing.T) {
	a := newTestApp(t)
	p := a.tasks
	p.Update(tasksLoadedMsg{tasks: []entity.Task{
		{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 3, Title: "three"},
	}})

	p.Update(keyMsg("j"))
	p.Update(keyMsg("j"))
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want 2", p.cursor)
	}
	// Bottom of the list pins.
	p.Update(keyMsg("j"))
	if p.cursor != 2 {
		t.Errorf("cursor = %d, want clamped at 2", p.cursor)
	}
	p.Update(keyMsg("k"))
	if p.cursor != 1 {
		t.Errorf("cursor = %d, want 1", p.cursor)
	}
}

func TestTasksPaneCursorClampsOnShrink(t *testing.T) {
	a := newTestApp(t)
	p := a.tasks
	p.Update(tasksLoadedMsg{tasks: []entity.Task{
		{ID: 1, Title: "one"}, {ID: 2, Title: "two"}, {ID: 3, Title: "three"},
	}})
	p.Update(keyMsg("j"))
	p.Update(keyMsg("j"))

	p.Update(tasksLoadedMsg{tasks: []entity.Task{{ID: 1, Title: "one"}}})
	if p.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", p.cursor)
	}
}

func TestTasksPaneViewMarksState(t *testing.T) {
	a := newTestApp(t)
	p := a.tasks

	overdue := testTime.AddDate(0, 0, -2)
	p.Update(tasksLoadedMsg{tasks: []entity.Task{
		{ID: 1, Title: "pending task", Priority: entity.PriorityHigh},
		{ID: 2, Title: "finished task", Completed: true},
		{ID: 3, Title: "late task", DueDate: &overdue},
	}})

	view := p.View(true)
	if !strings.Contains(view, "Tasks 1/3") {
		t.Errorf("view missing counter:\n%s", view)
	}
	for _, want := range []string{"pending task", "finished task", "late task"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	// Overdue badge carries the bang prefix.
	if !strings.Contains(view, "!"+overdue.Format("Jan 2")) {
		t.Errorf("view missing overdue badge:\n%s", view)
	}
}

func TestTasksPaneEmptyHint(t *testing.T) {
	a := newTestApp(t)
	if !strings.Contains(a.tasks.View(true), "press a to add") {
		t.Error("empty pane missing add hint")
	}
}

func TestHabitsPaneTwoStepAdd(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("tab")) // focus habits
	p := a.habits

	a.Update(keyMsg("a"))
	if !p.Adding() {
		t.Fatal("a did not open the add input")
	}

	for _, r := range "meditate" {
		a.Update(keyMsg(string(r)))
	}
	a.Update(keyMsg("enter")) // name entered, emoji step next
	if !p.Adding() {
		t.Fatal("input closed before the emoji step")
	}

	_, cmd := a.Update(keyMsg("enter")) // empty emoji is fine
	drain(t, a, cmd)

	habits, err := a.repos.Habits.All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "meditate" {
		t.Errorf("stored habits = %v", habits)
	}
}

func TestHabitsPaneToggleToday(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("tab"))

	created, err := a.repos.Habits.Create(repo.HabitDraft{Name: "drink water"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	a.Update(habitsLoadedMsg{habits: []entity.Habit{created}})

	_, cmd := a.Update(keyMsg("space"))
	drain(t, a, cmd)

	habits, _ := a.repos.Habits.All()
	today := entity.DayKey(testTime)
	if habits[0].CompletionsOn(today) != 1 {
		t.Errorf("completions today = %d, want 1", habits[0].CompletionsOn(today))
	}
}

func TestNotesSortPinnedFirst(t *testing.T) {
	notes := []entity.Note{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "b", IsPinned: true},
		{ID: 3, Title: "c"},
		{ID: 4, Title: "d", IsPinned: true},
	}

	sorted := sortNotes(notes)
	wantOrder := []int64{2, 4, 1, 3}
	for i, want := range wantOrder {
		if sorted[i].ID != want {
			t.Errorf("sorted[%d].ID = %d, want %d", i, sorted[i].ID, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars here", 10, "exactly t…"},
		{"héllo wörld", 8, "héllo w…"},
		{"abc", 2, "abc"}, // floor keeps tiny widths readable
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 << 20, "5.0 MB"},
	}
	for _, tc := range tests {
		if got := formatBytes(tc.in); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatsViewRendersSections(t *testing.T) {
	a := newTestApp(t)

	done := testTime
	a.stats.SetData(
		[]entity.Task{{ID: 1, Title: "t", Completed: true, CompletedAt: &done, Category: "work"}},
		[]entity.Habit{{ID: 1, Name: "h", Target: 1}},
		[]entity.Link{{ID: 1, Title: "top link", VisitCount: 4}},
	)

	view := a.stats.View()
	for _, want := range []string{"Statistics", "Tasks", "Habits", "Last 7 days", "work", "top link", "Storage"} {
		if !strings.Contains(view, want) {
			t.Errorf("stats view missing %q", want)
		}
	}
}
