package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mynotion/internal/config"
	"mynotion/internal/entity"
	"mynotion/internal/repo"
	"mynotion/internal/store"
)

func TestAppPaneFocusCycle(t *testing.T) {
	a := newTestApp(t)

	if a.focus != paneTasks {
		t.Fatalf("initial focus = %d, want tasks", a.focus)
	}

	order := []paneID{paneHabits, paneLinks, paneNotes, paneTasks}
	for _, want := range order {
		a.Update(keyMsg("tab"))
		if a.focus != want {
			t.Fatalf("focus = %d, want %d", a.focus, want)
		}
	}

	a.Update(keyMsg("shift+tab"))
	if a.focus != paneNotes {
		t.Errorf("focus after shift+tab = %d, want notes", a.focus)
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestAppAddTaskFlow(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("a"))
	if !a.tasks.Adding() {
		t.Fatal("a did not open the add input")
	}

	for _, r := range "water the plants" {
		a.Update(keyMsg(string(r)))
	}
	_, cmd := a.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("confirm produced no command")
	}
	drain(t, a, cmd)

	if a.tasks.Adding() {
		t.Error("input still open after confirm")
	}
	tasks, err := a.repos.Tasks.All()
	if err != nil {
		t.Fatalf("All() error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "water the plants" {
		t.Errorf("stored tasks = %v", tasks)
	}
	// The reload round trip put the new task on screen.
	if len(a.tasks.tasks) != 1 {
		t.Errorf("pane shows %d tasks, want 1", len(a.tasks.tasks))
	}
}

func TestAppAddCancelled(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("a"))
	a.Update(keyMsg("x"))
	_, cmd := a.Update(keyMsg("esc"))
	if cmd != nil {
		drain(t, a, cmd)
	}

	if a.tasks.Adding() {
		t.Error("esc did not close the input")
	}
	if tasks, _ := a.repos.Tasks.All(); len(tasks) != 0 {
		t.Errorf("cancelled add persisted: %v", tasks)
	}
}

func TestAppToggleTask(t *testing.T) {
	a := newTestApp(t)

	created, err := a.repos.Tasks.Create(repo.TaskDraft{Title: "toggle me"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	a.Update(tasksLoadedMsg{tasks: []entity.Task{created}})

	_, cmd := a.Update(keyMsg("space"))
	drain(t, a, cmd)

	tasks, _ := a.repos.Tasks.All()
	if len(tasks) != 1 || !tasks[0].Completed {
		t.Errorf("tasks = %v, want completed", tasks)
	}
}

func TestAppStatsOverlay(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(keyMsg("s"))
	drain(t, a, cmd)
	if !a.showStats {
		t.Fatal("s did not open stats")
	}
	if !strings.Contains(a.View(), "Statistics") {
		t.Error("stats view missing heading")
	}

	a.Update(keyMsg("esc"))
	if a.showStats {
		t.Error("esc did not close stats")
	}
}

func TestAppStorageChangedReloads(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.repos.Tasks.Create(repo.TaskDraft{Title: "external"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, cmd := a.Update(storageChangedMsg{key: repo.KeyTasks})
	drain(t, a, cmd)

	if len(a.tasks.tasks) != 1 {
		t.Errorf("pane shows %d tasks after change event, want 1", len(a.tasks.tasks))
	}
	if !strings.Contains(a.status, repo.KeyTasks) {
		t.Errorf("status = %q, want reload notice", a.status)
	}
}

func TestAppMutationErrorSurfaces(t *testing.T) {
	a := newTestApp(t)

	_, cmd := a.Update(mutationDoneMsg{key: repo.KeyTasks, err: entity.Invalid("title", "required")})
	if cmd != nil {
		t.Error("failed mutation should not trigger a reload")
	}
	if !a.statusErr || a.status == "" {
		t.Errorf("status = %q (err=%v), want error text", a.status, a.statusErr)
	}
}

func TestAppDailyGoalNotification(t *testing.T) {
	a := newTestApp(t)
	a.dailyGoal = 2
	rec := a.desktop.(*recordingNotifier)

	done := testTime
	tasksAt := func(n int) []entity.Task {
		out := make([]entity.Task, n)
		for i := range out {
			out[i] = entity.Task{ID: int64(i + 1), Title: "t", Completed: true, CompletedAt: &done}
		}
		return out
	}

	a.Update(tasksLoadedMsg{tasks: tasksAt(1)})
	waitNotifications(t, rec, 0)

	a.Update(tasksLoadedMsg{tasks: tasksAt(2)})
	waitNotifications(t, rec, 1)

	// Crossing the goal again in the same session stays quiet.
	a.Update(tasksLoadedMsg{tasks: tasksAt(3)})
	waitNotifications(t, rec, 1)
}

func TestAppDailyGoalIgnoresOtherDays(t *testing.T) {
	a := newTestApp(t)
	a.dailyGoal = 1
	rec := a.desktop.(*recordingNotifier)

	yesterday := testTime.AddDate(0, 0, -1)
	a.Update(tasksLoadedMsg{tasks: []entity.Task{
		{ID: 1, Title: "t", Completed: true, CompletedAt: &yesterday},
	}})
	waitNotifications(t, rec, 0)
}

func waitNotifications(t *testing.T, rec *recordingNotifier, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for {
		rec.mu.Lock()
		n := len(rec.sent)
		rec.mu.Unlock()
		if n == want {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("notifications = %d, want %d", n, want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAppViewLayout(t *testing.T) {
	a := newTestApp(t)
	a.Update(tasksLoadedMsg{tasks: []entity.Task{{ID: 1, Title: "visible task"}}})

	view := a.View()
	for _, want := range []string{"mynotion", "Tasks 0/1", "visible task", "Habits", "Links", "Notes"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestAppNarrowLayoutStacksPanes(t *testing.T) {
	a := newTestApp(t)
	if a.narrowBelow != 80 {
		t.Fatalf("narrowBelow = %d, want the config default 80", a.narrowBelow)
	}
	if a.narrow() {
		t.Fatal("narrow() at width 100, want wide")
	}
	if a.tasks.width != 100/2-2 {
		t.Errorf("wide pane width = %d, want %d", a.tasks.width, 100/2-2)
	}

	a.Update(tea.WindowSizeMsg{Width: 60, Height: 48})
	if !a.narrow() {
		t.Fatal("narrow() = false at width 60 with threshold 80")
	}
	if a.tasks.width != 60-2 {
		t.Errorf("narrow pane width = %d, want full width %d", a.tasks.width, 60-2)
	}
	if a.tasks.width != a.notes.width {
		t.Errorf("pane widths differ when stacked: tasks %d, notes %d", a.tasks.width, a.notes.width)
	}

	view := a.View()
	for _, want := range []string{"Tasks", "Habits", "Links", "Notes"} {
		if !strings.Contains(view, want) {
			t.Errorf("narrow view missing %q", want)
		}
	}
}

func TestAppViewBeforeSize(t *testing.T) {
	s, err := store.New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("store.New() error: %v", err)
	}

	a := New(s, repo.NewSet(s), nil, config.Default())
	if got := a.View(); got != "loading..." {
		t.Errorf("View() before sizing = %q", got)
	}
}
