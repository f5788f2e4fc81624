package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"mynotion/internal/importer"
)

var migratePreview bool

var migrateCmd = &cobra.Command{
	Use:   "migrate FORMAT FILE",
	Short: "Import tasks from another app",
	Long: "Reads a task export from another productivity tool and adds the tasks.\n" +
		"Supported formats: " + strings.Join(importer.SupportedFormats(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imp := importer.GetImporter(args[0])
		if imp == nil {
			return fmt.Errorf("unknown format %q (supported: %s)",
				args[0], strings.Join(importer.SupportedFormats(), ", "))
		}

		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		if migratePreview {
			tasks, err := imp.Preview(f)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				box := "[ ]"
				if t.Done {
					box = "[x]"
				}
				line := box + " " + t.Title
				if t.Category != "" {
					line += "  (" + t.Category + ")"
				}
				if t.DueDate != nil {
					line += "  due " + t.DueDate.Format("2006-01-02")
				}
				fmt.Println(line)
			}
			fmt.Printf("%d tasks would be imported\n", len(tasks))
			return nil
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		result, err := imp.Import(f, e.repos)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d tasks\n", result.Imported)
		for _, msg := range result.Errors {
			fmt.Fprintln(os.Stderr, "error:", msg)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migratePreview, "preview", false, "show what would be imported without writing")
	rootCmd.AddCommand(migrateCmd)
}
