package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mynotion/internal/repo"
	"mynotion/internal/store"
	"mynotion/internal/watch"
)

func loadTasksCmd(r *repo.Set) tea.Cmd {
	return func() tea.Msg {
		tasks, err := r.Tasks.All()
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func loadHabitsCmd(r *repo.Set) tea.Cmd {
	return func() tea.Msg {
		habits, err := r.Habits.All()
		return habitsLoadedMsg{habits: habits, err: err}
	}
}

func loadLinksCmd(r *repo.Set) tea.Cmd {
	return func() tea.Msg {
		links, err := r.Links.All()
		return linksLoadedMsg{links: links, err: err}
	}
}

func loadNotesCmd(r *repo.Set) tea.Cmd {
	return func() tea.Msg {
		notes, err := r.Notes.All()
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func loadUsageCmd(s *store.Store) tea.Cmd {
	return func() tea.Msg {
		u, err := s.Usage()
		return usageLoadedMsg{usage: u, err: err}
	}
}

func createTaskCmd(r *repo.Set, d repo.TaskDraft) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Tasks.Create(d)
		return mutationDoneMsg{key: repo.KeyTasks, err: err}
	}
}

func toggleTaskCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Tasks.Toggle(id)
		return mutationDoneMsg{key: repo.KeyTasks, err: err}
	}
}

func deleteTaskCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{key: repo.KeyTasks, err: r.Tasks.Delete(id)}
	}
}

func createHabitCmd(r *repo.Set, d repo.HabitDraft) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Habits.Create(d)
		return mutationDoneMsg{key: repo.KeyHabits, err: err}
	}
}

func toggleHabitCmd(r *repo.Set, id int64, dayKey string) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Habits.ToggleCompletion(id, dayKey)
		return mutationDoneMsg{key: repo.KeyHabits, err: err}
	}
}

func deleteHabitCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{key: repo.KeyHabits, err: r.Habits.Delete(id)}
	}
}

func createLinkCmd(r *repo.Set, d repo.LinkDraft) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Links.Create(d)
		return mutationDoneMsg{key: repo.KeyLinks, err: err}
	}
}

func visitLinkCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Links.RecordVisit(id)
		return mutationDoneMsg{key: repo.KeyLinks, err: err}
	}
}

func deleteLinkCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{key: repo.KeyLinks, err: r.Links.Delete(id)}
	}
}

func createNoteCmd(r *repo.Set, d repo.NoteDraft) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Notes.Create(d)
		return mutationDoneMsg{key: repo.KeyNotes, err: err}
	}
}

func togglePinCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := r.Notes.TogglePin(id)
		return mutationDoneMsg{key: repo.KeyNotes, err: err}
	}
}

func deleteNoteCmd(r *repo.Set, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationDoneMsg{key: repo.KeyNotes, err: r.Notes.Delete(id)}
	}
}

// waitForChange blocks on the watcher channel and resurfaces external
// modifications as messages. Re-armed after every delivery.
func waitForChange(n *watch.Notifier) tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		key, ok := <-n.Events()
		if !ok {
			return nil
		}
		return storageChangedMsg{key: key}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
