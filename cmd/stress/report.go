package main

import (
	"github.com/spf13/cobra"
	"github.com/stellarlinkco/prompt-stress/internal/report"
	"github.com/stellarlinkco/prompt-stress/internal/runner"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <file.csv>",
		Short: "Re-read a written report and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := report.ReadFile(args[0])
			if err != nil {
				return err
			}
			report.PrintSummary(cmd.OutOrStdout(), runner.Summarize(results))
			return nil
		},
	}
}
