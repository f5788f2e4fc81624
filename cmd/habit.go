package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mynotion/internal/entity"
	"mynotion/internal/metrics"
	"mynotion/internal/repo"
)

var (
	habitTarget int
	habitEmoji  string
	habitDay    string
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		h, err := e.repos.Habits.Create(repo.HabitDraft{
			Name:   args[0],
			Target: habitTarget,
			Emoji:  habitEmoji,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added habit %d: %s\n", h.ID, h.Name)
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habits with streaks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		habits, err := e.repos.Habits.All()
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			fmt.Println("no habits")
			return nil
		}
		now := e.store.Now()
		today := entity.DayKey(now)
		for _, h := range habits {
			target := h.Target
			if target < 1 {
				target = 1
			}
			box := "[ ]"
			if h.CompletionsOn(today) >= target {
				box = "[x]"
			}
			name := h.Name
			if h.Emoji != "" {
				name = h.Emoji + " " + name
			}
			fmt.Printf("%s %d  %s  streak %d\n", box, h.ID, name, metrics.Streak(h, now))
		}
		return nil
	},
}

var habitToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Advance a habit's count for today",
	Long:  "Each toggle adds one completion until the daily target is met, then the next toggle resets the day to zero.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		dayKey := entity.DayKey(e.store.Now())
		if habitDay != "" {
			day, err := time.ParseInLocation("2006-01-02", habitDay, time.Local)
			if err != nil {
				return fmt.Errorf("parse day %q: %w", habitDay, err)
			}
			dayKey = entity.DayKey(day)
		}
		h, err := e.repos.Habits.ToggleCompletion(id, dayKey)
		if err != nil {
			return err
		}
		target := h.Target
		if target < 1 {
			target = 1
		}
		fmt.Printf("%s: %d/%d on %s\n", h.Name, h.CompletionsOn(dayKey), target, dayKey)
		return nil
	},
}

var habitRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := e.repos.Habits.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted habit %d\n", id)
		return nil
	},
}

func init() {
	habitAddCmd.Flags().IntVarP(&habitTarget, "target", "t", 1, "completions per day")
	habitAddCmd.Flags().StringVar(&habitEmoji, "emoji", "", "display emoji")
	habitToggleCmd.Flags().StringVar(&habitDay, "day", "", "day to toggle (YYYY-MM-DD, default today)")
	habitCmd.AddCommand(habitAddCmd, habitListCmd, habitToggleCmd, habitRmCmd)
}
