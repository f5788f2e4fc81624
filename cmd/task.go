package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"mynotion/internal/entity"
	"mynotion/internal/repo"
)

var (
	taskPriority string
	taskCategory string
	taskDue      string
	taskDesc     string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		d := repo.TaskDraft{
			Title:       args[0],
			Description: taskDesc,
			Priority:    entity.Priority(taskPriority),
			Category:    taskCategory,
		}
		if taskDue != "" {
			due, err := time.ParseInLocation("2006-01-02", taskDue, time.Local)
			if err != nil {
				return fmt.Errorf("parse due date %q: %w", taskDue, err)
			}
			d.DueDate = &due
		}
		t, err := e.repos.Tasks.Create(d)
		if err != nil {
			return err
		}
		fmt.Printf("added task %d: %s\n", t.ID, t.Title)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		tasks, err := e.repos.Tasks.All()
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("no tasks")
			return nil
		}
		for _, t := range tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %d  %s", box, t.ID, t.Title)
			if t.Priority == entity.PriorityHigh {
				line += "  (high)"
			}
			if t.DueDate != nil {
				line += "  due " + t.DueDate.Format("2006-01-02")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done ID",
	Short: "Toggle a task's completion",
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
		t, err := e.repos.Tasks.Toggle(id)
		if err != nil {
			return err
		}
		state := "pending"
		if t.Completed {
			state = "done"
		}
		fmt.Printf("task %d is now %s\n", t.ID, state)
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a task",
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
		if err := e.repos.Tasks.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted task %d\n", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "low, medium, or high")
	taskAddCmd.Flags().StringVarP(&taskCategory, "category", "c", "", "category label")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().StringVar(&taskDesc, "desc", "", "description")
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskRmCmd)
}
