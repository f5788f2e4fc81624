package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mynotion/internal/repo"
)

var (
	noteContent string
	noteTags    []string
	noteMood    string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [TITLE]",
	Short: "Create a note",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		d := repo.NoteDraft{
			Content: noteContent,
			Tags:    noteTags,
			Mood:    noteMood,
		}
		if len(args) > 0 {
			d.Title = args[0]
		}
		n, err := e.repos.Notes.Create(d)
		if err != nil {
			return err
		}
		fmt.Printf("added note %d: %s\n", n.ID, n.Title)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		notes, err := e.repos.Notes.All()
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("no notes")
			return nil
		}
		for _, n := range notes {
			pin := "  "
			if n.IsPinned {
				pin = "* "
			}
			line := fmt.Sprintf("%s%d  %s  %dw", pin, n.ID, n.Title, n.WordCount)
			if len(n.Tags) > 0 {
				line += "  #" + strings.Join(n.Tags, " #")
			}
			fmt.Println(line)
		}
		return nil
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a note's content",
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
		notes, err := e.repos.Notes.All()
		if err != nil {
			return err
		}
		for _, n := range notes {
			if n.ID == id {
				fmt.Println(n.Title)
				if n.Content != "" {
					fmt.Println()
					fmt.Println(n.Content)
				}
				return nil
			}
		}
		return repo.ErrNotFound
	},
}

var notePinCmd = &cobra.Command{
	Use:   "pin ID",
	Short: "Toggle a note's pin",
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
		n, err := e.repos.Notes.TogglePin(id)
		if err != nil {
			return err
		}
		state := "unpinned"
		if n.IsPinned {
			state = "pinned"
		}
		fmt.Printf("note %d %s\n", n.ID, state)
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a note",
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
		if err := e.repos.Notes.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted note %d\n", id)
		return nil
	},
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteContent, "content", "c", "", "note body")
	noteAddCmd.Flags().StringSliceVar(&noteTags, "tags", nil, "comma-separated tags")
	noteAddCmd.Flags().StringVar(&noteMood, "mood", "", "mood label")
	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, notePinCmd, noteRmCmd)
}
