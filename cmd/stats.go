package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mynotion/internal/metrics"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show productivity statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		tasks, err := e.repos.Tasks.All()
		if err != nil {
			return err
		}
		habits, err := e.repos.Habits.All()
		if err != nil {
			return err
		}
		now := e.store.Now()

		report := struct {
			Tasks      metrics.TaskStats      `json:"tasks"`
			Rate       int                    `json:"completionRate"`
			Habits     metrics.HabitStats     `json:"habits"`
			Trend      []metrics.TrendDay     `json:"trend"`
			Categories []metrics.CategoryStat `json:"categories"`
		}{
			Tasks:      metrics.ComputeTaskStats(tasks, now),
			Rate:       metrics.CompletionRate(tasks),
			Habits:     metrics.ComputeHabitStats(habits, now),
			Trend:      metrics.ProductivityTrend(tasks, habits, now),
			Categories: metrics.CategoryBreakdown(tasks),
		}

		if statsFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Tasks:      %d total, %d done (%d%%), %d high priority, %d overdue\n",
			report.Tasks.Total, report.Tasks.Completed, report.Rate,
			report.Tasks.HighPriority, report.Tasks.Overdue)
		fmt.Printf("Habits:     %d total, %d done today, avg streak %d\n",
			report.Habits.Total, report.Habits.CompletedToday, report.Habits.AverageStreak)
		fmt.Println("Last 7 days:")
		for _, d := range report.Trend {
			fmt.Printf("  %s %2d  tasks %d  habits %d\n", d.Label, d.DayOfMonth, d.Tasks, d.Habits)
		}
		if len(report.Categories) > 0 {
			fmt.Println("Categories:")
			for _, c := range report.Categories {
				fmt.Printf("  %-20s %d/%d (%d%%)\n", c.Category, c.Completed, c.Total, c.Percentage)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "output format: text or json")
}
