package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mynotion/internal/reports"
)

var (
	reportWeekly bool
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a daily or weekly report",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		gen := reports.NewGenerator(e.repos)
		now := e.store.Now()

		if reportWeekly {
			report, err := gen.GenerateWeekly(now)
			if err != nil {
				return err
			}
			if reportFormat == "json" {
				data, err := reports.FormatWeeklyJSON(report)
				if err != nil {
					return err
				}
				os.Stdout.Write(data)
				fmt.Println()
				return nil
			}
			fmt.Print(reports.FormatWeeklyMarkdown(report))
			return nil
		}

		report, err := gen.GenerateDaily(now)
		if err != nil {
			return err
		}
		if reportFormat == "json" {
			data, err := reports.FormatDailyJSON(report)
			if err != nil {
				return err
			}
			os.Stdout.Write(data)
			fmt.Println()
			return nil
		}
		fmt.Print(reports.FormatDailyMarkdown(report))
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVarP(&reportWeekly, "weekly", "w", false, "generate a weekly report")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "markdown", "output format: markdown or json")
	rootCmd.AddCommand(reportCmd)
}
