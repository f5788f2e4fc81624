package ui

import (
	"fmt"
	"strings"
	"time"

	"mynotion/internal/entity"
	"mynotion/internal/metrics"
	"mynotion/internal/store"
)

// StatsView renders the full-screen statistics overlay.
type StatsView struct {
	styles *Styles
	now    func() time.Time

	tasks  []entity.Task
	habits []entity.Habit
	links  []entity.Link
	usage  store.Usage

	width  int
	height int
}

func NewStatsView(styles *Styles, now func() time.Time) *StatsView {
	return &StatsView{styles: styles, now: now}
}

func (v *StatsView) SetSize(w, h int) {
	v.width = w
	v.height = h
}

func (v *StatsView) SetData(tasks []entity.Task, habits []entity.Habit, links []entity.Link) {
	v.tasks = tasks
	v.habits = habits
	v.links = links
}

func (v *StatsView) SetUsage(u store.Usage) {
	v.usage = u
}

func (v *StatsView) View() string {
	s := v.styles
	now := v.now()
	var b strings.Builder

	b.WriteString(s.TitleStyle.Render("Statistics"))
	b.WriteString("\n\n")

	ts := metrics.ComputeTaskStats(v.tasks, now)
	b.WriteString(s.PaneTitleStyle.Render("Tasks"))
	b.WriteString("\n")
	b.WriteString(v.stat("total", fmt.Sprintf("%d", ts.Total)))
	b.WriteString(v.stat("completed", fmt.Sprintf("%d (%d%%)", ts.Completed, metrics.CompletionRate(v.tasks))))
	b.WriteString(v.stat("high priority", fmt.Sprintf("%d", ts.HighPriority)))
	if ts.Overdue > 0 {
		b.WriteString(v.stat("overdue", s.OverdueStyle.Render(fmt.Sprintf("%d", ts.Overdue))))
	}
	b.WriteString("\n")

	hs := metrics.ComputeHabitStats(v.habits, now)
	b.WriteString(s.PaneTitleStyle.Render("Habits"))
	b.WriteString("\n")
	b.WriteString(v.stat("total", fmt.Sprintf("%d", hs.Total)))
	b.WriteString(v.stat("done today", fmt.Sprintf("%d", hs.CompletedToday)))
	b.WriteString(v.stat("avg streak", fmt.Sprintf("%d", hs.AverageStreak)))
	b.WriteString("\n")

	b.WriteString(s.PaneTitleStyle.Render("Last 7 days"))
	b.WriteString("\n")
	b.WriteString(v.renderTrend(now))
	b.WriteString("\n")

	if cats := metrics.CategoryBreakdown(v.tasks); len(cats) > 0 {
		b.WriteString(s.PaneTitleStyle.Render("Categories"))
		b.WriteString("\n")
		for _, c := range cats {
			b.WriteString(v.stat(c.Category, fmt.Sprintf("%d/%d (%d%%)", c.Completed, c.Total, c.Percentage)))
		}
		b.WriteString("\n")
	}

	if top := metrics.MostVisited(v.links, 3); len(top) > 0 {
		b.WriteString(s.PaneTitleStyle.Render("Most visited"))
		b.WriteString("\n")
		for _, l := range top {
			b.WriteString(v.stat(truncate(l.Title, 30), fmt.Sprintf("%d visits", l.VisitCount)))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.PaneTitleStyle.Render("Storage"))
	b.WriteString("\n")
	usageLine := fmt.Sprintf("%s of %s (%.1f%%)",
		formatBytes(v.usage.UsedBytes), formatBytes(store.MaxBytes), v.usage.Percent)
	if v.usage.Percent >= 80 {
		usageLine = s.QuotaWarnStyle.Render(usageLine)
	}
	b.WriteString(v.stat("used", usageLine))

	b.WriteString("\n")
	b.WriteString(s.HelpStyle.Render("press s or esc to close"))

	return s.PaneStyle.Width(v.width - 2).Render(b.String())
}

func (v *StatsView) stat(label, value string) string {
	return fmt.Sprintf("  %s %s\n",
		v.styles.StatLabelStyle.Width(16).Render(label),
		v.styles.StatValueStyle.Render(value))
}

// renderTrend draws a bar per day scaled to the week's busiest day.
func (v *StatsView) renderTrend(now time.Time) string {
	trend := metrics.ProductivityTrend(v.tasks, v.habits, now)
	peak := 0
	for _, d := range trend {
		if d.Total() > peak {
			peak = d.Total()
		}
	}

	const barWidth = 20
	var b strings.Builder
	for _, d := range trend {
		n := 0
		if peak > 0 {
			n = d.Total() * barWidth / peak
		}
		bar := v.styles.BarStyle.Render(strings.Repeat("█", n)) +
			v.styles.GridTodoStyle.Render(strings.Repeat("░", barWidth-n))
		fmt.Fprintf(&b, "  %s %s %d\n",
			v.styles.StatLabelStyle.Render(fmt.Sprintf("%s %2d", d.Label, d.DayOfMonth)),
			bar, d.Total())
	}
	return b.String()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
