package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mynotion/internal/entity"
	"mynotion/internal/metrics"
	"mynotion/internal/repo"
)

type habitAddStep int

const (
	habitStepName habitAddStep = iota
	habitStepEmoji
)

// HabitsPane lists habits with streaks and the trailing week grid.
type HabitsPane struct {
	repos  *repo.Set
	styles *Styles
	keys   KeyMap
	now    func() time.Time

	habits  []entity.Habit
	cursor  int
	adding  bool
	addStep habitAddStep
	name    string
	input   textinput.Model

	width  int
	height int
}

func NewHabitsPane(repos *repo.Set, styles *Styles, keys KeyMap, now func() time.Time) *HabitsPane {
	ti := textinput.New()
	ti.Placeholder = "habit name"
	ti.CharLimit = 60
	return &HabitsPane{repos: repos, styles: styles, keys: keys, now: now, input: ti}
}

func (p *HabitsPane) SetSize(w, h int) {
	p.width = w
	p.height = h
	p.input.Width = w - 8
}

func (p *HabitsPane) Adding() bool { return p.adding }

func (p *HabitsPane) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case habitsLoadedMsg:
		if msg.err == nil {
			p.habits = msg.habits
			if p.cursor >= len(p.habits) {
				p.cursor = len(p.habits) - 1
			}
			if p.cursor < 0 {
				p.cursor = 0
			}
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

func (p *HabitsPane) updateAdding(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.resetAdd()
		return nil
	case key.Matches(msg, p.keys.Confirm):
		val := strings.TrimSpace(p.input.Value())
		switch p.addStep {
		case habitStepName:
			if val == "" {
				p.resetAdd()
				return nil
			}
			p.name = val
			p.addStep = habitStepEmoji
			p.input.Reset()
			p.input.Placeholder = "emoji (optional)"
			return nil
		case habitStepEmoji:
			d := repo.HabitDraft{Name: p.name, Emoji: val}
			p.resetAdd()
			return createHabitCmd(p.repos, d)
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *HabitsPane) resetAdd() {
	p.adding = false
	p.addStep = habitStepName
	p.name = ""
	p.input.Reset()
	p.input.Placeholder = "habit name"
}

func (p *HabitsPane) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(p.habits)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Add):
		p.adding = true
		p.input.Focus()
		return textinput.Blink
	case key.Matches(msg, p.keys.Toggle):
		if h, ok := p.selected(); ok {
			return toggleHabitCmd(p.repos, h.ID, entity.DayKey(p.now()))
		}
	case key.Matches(msg, p.keys.Delete):
		if h, ok := p.selected(); ok {
			return deleteHabitCmd(p.repos, h.ID)
		}
	}
	return nil
}

func (p *HabitsPane) selected() (entity.Habit, bool) {
	if p.cursor < 0 || p.cursor >= len(p.habits) {
		return entity.Habit{}, false
	}
	return p.habits[p.cursor], true
}

func (p *HabitsPane) View(focused bool) string {
	s := p.styles
	now := p.now()
	today := entity.DayKey(now)
	var b strings.Builder

	doneToday := 0
	for _, h := range p.habits {
		if h.CompletionsOn(today) >= maxInt(h.Target, 1) {
			doneToday++
		}
	}
	b.WriteString(s.PaneTitleStyle.Render(fmt.Sprintf("Habits %d/%d today", doneToday, len(p.habits))))
	b.WriteString("\n")

	if p.adding {
		prompt := "name: "
		if p.addStep == habitStepEmoji {
			prompt = "emoji: "
		}
		b.WriteString(s.InputPromptStyle.Render(prompt))
		b.WriteString(p.input.View())
		b.WriteString("\n")
	}

	if len(p.habits) == 0 && !p.adding {
		b.WriteString(s.HelpStyle.Render("no habits, press a to add"))
	}

	for i, h := range p.habits {
		marker := "  "
		if focused && i == p.cursor {
			marker = s.SelectedStyle.Render("> ")
		}
		count := h.CompletionsOn(today)
		target := maxInt(h.Target, 1)
		box := s.CheckboxTodo
		if count >= target {
			box = s.CheckboxDone
		}
		name := h.Name
		if h.Emoji != "" {
			name = h.Emoji + " " + name
		}
		line := marker + box + " " + truncate(name, p.width-20)
		if target > 1 {
			line += fmt.Sprintf(" %d/%d", count, target)
		}
		if streak := metrics.Streak(h, now); streak > 0 {
			line += " " + s.StreakStyle.Render(fmt.Sprintf("%d🔥", streak))
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString("  " + p.renderWeek(h, now))
		b.WriteString("\n")
	}

	frame := s.PaneStyle
	if focused {
		frame = s.PaneFocusedStyle
	}
	return frame.Width(p.width).Height(p.height).Render(strings.TrimRight(b.String(), "\n"))
}

// renderWeek draws the trailing seven days, oldest first.
func (p *HabitsPane) renderWeek(h entity.Habit, now time.Time) string {
	cells := metrics.WeeklyGrid(h, now)
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c.Completed {
			parts = append(parts, p.styles.GridDoneStyle.Render("■"))
		} else {
			parts = append(parts, p.styles.GridTodoStyle.Render("·"))
		}
	}
	return strings.Join(parts, " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
