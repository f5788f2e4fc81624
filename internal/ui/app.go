package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mynotion/internal/config"
	"mynotion/internal/entity"
	"mynotion/internal/notify"
	"mynotion/internal/repo"
	"mynotion/internal/store"
	"mynotion/internal/watch"
)

type paneID int

const (
	paneTasks paneID = iota
	paneHabits
	paneLinks
	paneNotes
	paneCount
)

// App is the root bubbletea model for the dashboard.
type App struct {
	store    *store.Store
	repos    *repo.Set
	notifier *watch.Notifier
	styles   *Styles
	keys     KeyMap
	now      func() time.Time

	tasks  *TasksPane
	habits *HabitsPane
	links  *LinksPane
	notes  *NotesPane
	stats  *StatsView

	focus     paneID
	showStats bool
	showHelp  bool

	desktop       notify.Notifier
	dailyGoal     int
	goalNotified  bool
	lastDoneToday int

	narrowBelow int

	width  int
	height int

	status    string
	statusErr bool
}

// New builds the dashboard model. notifier may be nil when file watching
// is disabled.
func New(st *store.Store, repos *repo.Set, notifier *watch.Notifier, cfg *config.Config) *App {
	styles := NewStyles(cfg.Theme)
	keys := DefaultKeyMap()
	now := st.Now

	return &App{
		store:     st,
		repos:     repos,
		notifier:  notifier,
		styles:    styles,
		keys:      keys,
		now:       now,
		tasks:     NewTasksPane(repos, styles, keys, now),
		habits:    NewHabitsPane(repos, styles, keys, now),
		links:     NewLinksPane(repos, styles, keys),
		notes:     NewNotesPane(repos, styles, keys),
		stats:     NewStatsView(styles, now),
		desktop:     notify.New(),
		dailyGoal:   repo.LoadSettings(st).DailyGoal,
		narrowBelow: cfg.UX.NarrowLayoutThreshold,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		loadTasksCmd(a.repos),
		loadHabitsCmd(a.repos),
		loadLinksCmd(a.repos),
		loadNotesCmd(a.repos),
		loadUsageCmd(a.store),
		tickCmd(),
		waitForChange(a.notifier),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case tasksLoadedMsg:
		a.tasks.Update(msg)
		if msg.err == nil {
			a.stats.SetData(msg.tasks, a.habits.habits, a.links.links)
			a.checkDailyGoal(msg.tasks)
		}
		return a, nil
	case habitsLoadedMsg:
		a.habits.Update(msg)
		if msg.err == nil {
			a.stats.SetData(a.tasks.tasks, msg.habits, a.links.links)
		}
		return a, nil
	case linksLoadedMsg:
		a.links.Update(msg)
		if msg.err == nil {
			a.stats.SetData(a.tasks.tasks, a.habits.habits, msg.links)
		}
		return a, nil
	case notesLoadedMsg:
		a.notes.Update(msg)
		return a, nil
	case usageLoadedMsg:
		if msg.err == nil {
			a.stats.SetUsage(msg.usage)
		}
		return a, nil

	case mutationDoneMsg:
		if msg.err != nil {
			a.setStatus(msg.err.Error(), true)
			return a, nil
		}
		a.status = ""
		return a, tea.Batch(a.reloadCmd(msg.key), loadUsageCmd(a.store))

	case storageChangedMsg:
		a.setStatus("reloaded "+msg.key, false)
		return a, tea.Batch(a.reloadCmd(msg.key), waitForChange(a.notifier))

	case tickMsg:
		// Day boundaries move streaks and due badges without any input.
		return a, tickCmd()
	}
	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.showStats {
		if key.Matches(msg, a.keys.Stats) || key.Matches(msg, a.keys.Cancel) || key.Matches(msg, a.keys.Quit) {
			a.showStats = false
		}
		return a, nil
	}

	// While a pane is capturing text, route everything to it.
	if a.paneAdding() {
		return a, a.focusedPane()(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.NextPane):
		a.focus = (a.focus + 1) % paneCount
		return a, nil
	case key.Matches(msg, a.keys.PrevPane):
		a.focus = (a.focus + paneCount - 1) % paneCount
		return a, nil
	case key.Matches(msg, a.keys.Stats):
		a.showStats = true
		return a, loadUsageCmd(a.store)
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		return a, nil
	case key.Matches(msg, a.keys.Refresh):
		return a, tea.Batch(
			loadTasksCmd(a.repos), loadHabitsCmd(a.repos),
			loadLinksCmd(a.repos), loadNotesCmd(a.repos),
			loadUsageCmd(a.store),
		)
	}

	return a, a.focusedPane()(msg)
}

// focusedPane returns the Update func of the pane that currently owns input.
func (a *App) focusedPane() func(tea.Msg) tea.Cmd {
	switch a.focus {
	case paneHabits:
		return a.habits.Update
	case paneLinks:
		return a.links.Update
	case paneNotes:
		return a.notes.Update
	default:
		return a.tasks.Update
	}
}

func (a *App) paneAdding() bool {
	switch a.focus {
	case paneHabits:
		return a.habits.Adding()
	case paneLinks:
		return a.links.Adding()
	case paneNotes:
		return a.notes.Adding()
	default:
		return a.tasks.Adding()
	}
}

func (a *App) reloadCmd(storageKey string) tea.Cmd {
	switch storageKey {
	case repo.KeyTasks:
		return loadTasksCmd(a.repos)
	case repo.KeyHabits:
		return loadHabitsCmd(a.repos)
	case repo.KeyLinks:
		return loadLinksCmd(a.repos)
	case repo.KeyNotes:
		return loadNotesCmd(a.repos)
	default:
		return nil
	}
}

// checkDailyGoal fires a desktop notification the moment today's completed
// task count crosses the configured goal, at most once per session.
func (a *App) checkDailyGoal(tasks []entity.Task) {
	if a.dailyGoal < 1 {
		return
	}
	today := entity.DayKey(a.now())
	done := 0
	for _, t := range tasks {
		if t.Completed && t.CompletedAt != nil && entity.DayKey(*t.CompletedAt) == today {
			done++
		}
	}
	if done >= a.dailyGoal && a.lastDoneToday < a.dailyGoal && !a.goalNotified {
		a.goalNotified = true
		title, message := notify.FormatGoalReached(a.dailyGoal)
		go a.desktop.Send(title, message)
	}
	a.lastDoneToday = done
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

// narrow reports whether the terminal is too slim for the 2x2 grid.
func (a *App) narrow() bool {
	return a.narrowBelow > 0 && a.width < a.narrowBelow
}

func (a *App) layout() {
	paneW := a.width/2 - 2
	paneH := a.height/2 - 4
	if a.narrow() {
		paneW = a.width - 2
		paneH = a.height/4 - 2
	}
	if paneW < 20 {
		paneW = 20
	}
	if paneH < 5 {
		paneH = 5
	}
	a.tasks.SetSize(paneW, paneH)
	a.habits.SetSize(paneW, paneH)
	a.links.SetSize(paneW, paneH)
	a.notes.SetSize(paneW, paneH)
	a.stats.SetSize(a.width, a.height)
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}
	if a.showStats {
		return a.stats.View()
	}

	s := a.styles
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.TitleStyle.Render("mynotion"),
		"  ",
		s.DateStyle.Render(a.now().Format("Mon Jan 2 15:04")),
	)

	var body string
	if a.narrow() {
		body = lipgloss.JoinVertical(lipgloss.Left,
			a.tasks.View(a.focus == paneTasks),
			a.habits.View(a.focus == paneHabits),
			a.links.View(a.focus == paneLinks),
			a.notes.View(a.focus == paneNotes),
		)
	} else {
		top := lipgloss.JoinHorizontal(lipgloss.Top,
			a.tasks.View(a.focus == paneTasks),
			a.habits.View(a.focus == paneHabits),
		)
		bottom := lipgloss.JoinHorizontal(lipgloss.Top,
			a.links.View(a.focus == paneLinks),
			a.notes.View(a.focus == paneNotes),
		)
		body = lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	var foot string
	switch {
	case a.status != "" && a.statusErr:
		foot = s.ErrorStyle.Render(a.status)
	case a.status != "":
		foot = s.StatusStyle.Render(a.status)
	case a.showHelp:
		foot = a.helpLine(true)
	default:
		foot = a.helpLine(false)
	}

	return strings.Join([]string{header, body, foot}, "\n")
}

func (a *App) helpLine(full bool) string {
	s := a.styles
	pairs := [][2]string{
		{"tab", "pane"}, {"a", "add"}, {"space", "toggle"},
		{"d", "delete"}, {"s", "stats"}, {"q", "quit"},
	}
	if full {
		pairs = append(pairs,
			[2]string{"o", "visit link"}, [2]string{"p", "pin note"},
			[2]string{"r", "refresh"}, [2]string{"j/k", "move"},
		)
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, s.HelpKeyStyle.Render(p[0])+" "+s.HelpStyle.Render(p[1]))
	}
	return s.HelpStyle.Render("  ") + strings.Join(parts, s.HelpStyle.Render(" · "))
}
