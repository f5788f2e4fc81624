package reports

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatDailyJSON formats a daily report as JSON.
func FormatDailyJSON(report *DailyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatWeeklyJSON formats a weekly report as JSON.
func FormatWeeklyJSON(report *WeeklyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatDailyMarkdown formats a daily report as Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report - %s\n\n", report.Date.Format("Monday, January 2, 2006"))

	fmt.Fprintf(&b, "## Tasks\n\n")
	fmt.Fprintf(&b, "- Completed: %d\n", report.Tasks.CompletedCount)
	fmt.Fprintf(&b, "- Added: %d\n", report.Tasks.AddedCount)
	fmt.Fprintf(&b, "- Pending: %d\n\n", report.Tasks.PendingCount)

	if len(report.Tasks.Completed) > 0 {
		fmt.Fprintf(&b, "### Completed\n\n")
		for _, t := range report.Tasks.Completed {
			fmt.Fprintf(&b, "- [x] %s\n", t.Title)
		}
		b.WriteString("\n")
	}

	if len(report.Tasks.Pending) > 0 {
		fmt.Fprintf(&b, "### Pending\n\n")
		for _, t := range report.Tasks.Pending {
			fmt.Fprintf(&b, "- [ ] %s\n", t.Title)
		}
		b.WriteString("\n")
	}

	if len(report.Tasks.ByCategory) > 0 {
		fmt.Fprintf(&b, "### By category\n\n")
		for _, c := range report.Tasks.ByCategory {
			fmt.Fprintf(&b, "- %s: %d\n", c.Category, c.Count)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Habits\n\n")
	if report.Habits.TotalCount == 0 {
		b.WriteString("No habits tracked.\n\n")
	} else {
		fmt.Fprintf(&b, "%d of %d complete (%.0f%%)\n\n",
			report.Habits.CompletedCount, report.Habits.TotalCount, report.Habits.CompletionRate)
		for _, h := range report.Habits.Habits {
			mark := " "
			if h.Done {
				mark = "x"
			}
			name := h.Name
			if h.Emoji != "" {
				name = h.Emoji + " " + name
			}
			fmt.Fprintf(&b, "- [%s] %s", mark, name)
			if h.Target > 1 {
				fmt.Fprintf(&b, " (%d/%d)", h.Count, h.Target)
			}
			if h.Streak > 0 {
				fmt.Fprintf(&b, " - %d day streak", h.Streak)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if report.Notes.Created > 0 || report.Notes.Modified > 0 {
		fmt.Fprintf(&b, "## Notes\n\n")
		fmt.Fprintf(&b, "- Created: %d (%d words)\n", report.Notes.Created, report.Notes.Words)
		fmt.Fprintf(&b, "- Modified: %d\n\n", report.Notes.Modified)
	}

	fmt.Fprintf(&b, "---\nGenerated %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Report - %s to %s\n\n",
		report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2, 2006"))

	fmt.Fprintf(&b, "## Tasks\n\n")
	fmt.Fprintf(&b, "- Completed: %d\n", report.TasksCompleted)
	fmt.Fprintf(&b, "- Added: %d\n\n", report.TasksAdded)

	if len(report.Habits) > 0 {
		fmt.Fprintf(&b, "## Habits\n\n")
		for _, h := range report.Habits {
			name := h.Name
			if h.Emoji != "" {
				name = h.Emoji + " " + name
			}
			cells := make([]string, len(h.DaysCompleted))
			for i, done := range h.DaysCompleted {
				if done {
					cells[i] = "x"
				} else {
					cells[i] = "."
				}
			}
			fmt.Fprintf(&b, "- %s: %s (%d/7, %.0f%%)\n",
				name, strings.Join(cells, ""), h.CompletedCount, h.CompletionRate)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Day by day\n\n")
	fmt.Fprintf(&b, "| Day | Tasks | Habits |\n")
	fmt.Fprintf(&b, "|-----|-------|--------|\n")
	for _, d := range report.DailyBreakdown {
		fmt.Fprintf(&b, "| %s %s | %d | %d/%d |\n",
			d.DayOfWeek[:3], d.Date[5:], d.TasksCompleted, d.HabitsComplete, d.HabitsTotal)
	}

	fmt.Fprintf(&b, "\n---\nGenerated %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}
