package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"mynotion/internal/repo"
)

var linkCategory string

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage saved links",
}

var linkAddCmd = &cobra.Command{
	Use:   "add TITLE URL",
	Short: "Save a link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		l, err := e.repos.Links.Create(repo.LinkDraft{
			Title:    args[0],
			URL:      args[1],
			Category: linkCategory,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added link %d: %s\n", l.ID, l.Title)
		return nil
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved links",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		links, err := e.repos.Links.All()
		if err != nil {
			return err
		}
		if len(links) == 0 {
			fmt.Println("no links")
			return nil
		}
		for _, l := range links {
			line := fmt.Sprintf("%d  %s  %s", l.ID, l.Title, l.URL)
			if l.VisitCount > 0 {
				line += fmt.Sprintf("  (%d visits)", l.VisitCount)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var linkVisitCmd = &cobra.Command{
	Use:   "visit ID",
	Short: "Record a visit and print the URL",
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
		l, err := e.repos.Links.RecordVisit(id)
		if err != nil {
			return err
		}
		fmt.Println(l.URL)
		return nil
	},
}

var linkRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a link",
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
		if err := e.repos.Links.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted link %d\n", id)
		return nil
	},
}

func init() {
	linkAddCmd.Flags().StringVarP(&linkCategory, "category", "c", "", "category label")
	linkCmd.AddCommand(linkAddCmd, linkListCmd, linkVisitCmd, linkRmCmd)
}
