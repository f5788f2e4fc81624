package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
)

// TasksPane lists tasks and supports add, toggle, and delete.
type TasksPane struct {
	repos  *repo.Set
	styles *Styles
	keys   KeyMap
	now    func() time.Time

	tasks  []entity.Task
	cursor int
	adding bool
	input  textinput.Model

	width  int
	height int
}

func NewTasksPane(repos *repo.Set, styles *Styles, keys KeyMap, now func() time.Time) *TasksPane {
	ti := textinput.New()
	ti.Placeholder = "task title"
	ti.CharLimit = 200
	return &TasksPane{repos: repos, styles: styles, keys: keys, now: now, input: ti}
}

func (p *TasksPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.input.Width = w - 6
}

func (p *TasksPane) Adding() bool { return p.adding }

func (p *TasksPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err == nil {
			p.tasks = msg.tasks
			p.clampCursor()
		}
		return nil
	case tea.KeyMsg:
		if p.adding {
			return p.updateAdding(msg)
		}
		return p.updateList(msg)
	}
	return nil
}

func (p *TasksPane) updateAdding(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.adding = false
		p.input.Reset()
		return nil
	case key.Matches(msg, p.keys.Confirm):
		title := strings.TrimSpace(p.input.Value())
		p.adding = false
		p.input.Reset()
		if title == "" {
			return nil
		}
		return createTaskCmd(p.repos, repo.TaskDraft{Title: title})
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *TasksPane) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.tasks)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Add):
		p.adding = true
		p.input.Focus()
		return textinput.Blink
	case key.Matches(msg, p.keys.Toggle):
		if t, ok := p.selected(); ok {
			return toggleTaskCmd(p.repos, t.ID)
		}
	case key.Matches(msg, p.keys.Delete):
		if t, ok := p.selected(); ok {
			return deleteTaskCmd(p.repos, t.ID)
		}
	}
	return nil
}

func (p *TasksPane) selected() (entity.Task, bool) {
	if p.cursor < 0 || p.cursor >= len(p.tasks) {
		return entity.Task{}, false
	}
	return p.tasks[p.cursor], true
}

func (p *TasksPane) clampCursor() {
	if p.cursor >= len(p.tasks) {
		p.cursor = len(p.tasks) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *TasksPane) View(focused bool) string {
	s := p.styles
	var b strings.Builder

	done := 0
	for _, t := range p.tasks {
		if t.Completed {
			done++
		}
	}
	b.WriteString(s.PaneTitleStyle.Render(fmt.Sprintf("Tasks %d/%d", done, len(p.tasks))))
	b.WriteString("\n")

	if p.adding {
		b.WriteString(s.InputPromptStyle.Render("new: "))
		b.WriteString(p.input.View())
		b.WriteString("\n")
	}

	if len(p.tasks) == 0 && !p.adding {
		b.WriteString(s.HelpStyle.Render("no tasks, press a to add"))
	}

	visible := p.visibleRange()
	for i := visible[0]; i < visible[1]; i++ {
		t := p.tasks[i]
		line := p.renderTask(t)
		if focused && i == p.cursor {
			line = s.SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	frame := s.PaneStyle
	if focused {
		frame = s.PaneFocusedStyle
	}
	return frame.Width(p.width).Height(p.height).Render(strings.TrimRight(b.String(), "\n"))
}

func (p *TasksPane) renderTask(t entity.Task) string {
	s := p.styles
	box := s.CheckboxTodo
	title := s.PendingStyle.Render(truncate(t.Title, p.width-12))
	if t.Completed {
		box = s.CheckboxDone
		title = s.DoneStyle.Render(truncate(t.Title, p.width-12))
	}
	line := box + " " + title
	if mark := p.priorityMark(t.Priority); mark != "" {
		line += " " + mark
	}
	if t.DueDate != nil && !t.Completed {
		due := t.DueDate.Format("Jan 2")
		if t.DueDate.Before(entity.StartOfDay(p.now())) {
			line += " " + s.OverdueStyle.Render("!"+due)
		} else {
			line += " " + s.DateStyle.Render(due)
		}
	}
	return line
}

func (p *TasksPane) priorityMark(pr entity.Priority) string {
	switch pr {
	case entity.PriorityHigh:
		return p.styles.PriorityHighStyle.Render("●")
	case entity.PriorityLow:
		return p.styles.PriorityLowStyle.Render("○")
	default:
		return ""
	}
}

// visibleRange windows the list around the cursor so long lists scroll.
func (p *TasksPane) visibleRange() [2]int {
	max := p.height - 2
	if p.adding {
		max--
	}
	if max < 1 {
		max = 1
	}
	if len(p.tasks) <= max {
		return [2]int{0, len(p.tasks)}
	}
	start := p.cursor - max/2
	if start < 0 {
		start = 0
	}
	end := start + max
	if end > len(p.tasks) {
		end = len(p.tasks)
		start = end - max
	}
	return [2]int{start, end}
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
