package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mynotion/internal/repo"
	"mynotion/internal/transfer"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all collections to a JSON file",
	Long:  "Writes tasks, habits, links, and notes as one dated JSON document. Stored spreadsheet files are left out to keep exports small.",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		data, err := transfer.Export(e.repos)
		if err != nil {
			return err
		}

		out := exportOutput
		if out == "" {
			out = transfer.Filename(e.store.Now())
		}
		if out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		abs, _ := filepath.Abs(out)
		fmt.Printf("exported to %s\n", abs)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import collections from an export file",
	Long:  "Reads a JSON export and replaces every collection present in the file. Collections absent from the file are left untouched. Nothing is written unless the whole file decodes.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		res, err := transfer.Import(e.repos, data)
		if err != nil {
			return err
		}
		if len(res.Counts) == 0 {
			fmt.Println("nothing to import")
			return nil
		}
		for _, key := range repo.CollectionKeys {
			if n, ok := res.Counts[key]; ok {
				fmt.Printf("imported %d into %s\n", n, key)
			}
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path, or - for stdout")
}
