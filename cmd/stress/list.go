package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/prompt-stress/internal/dataset"
)

func newListCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dataset cases or categories",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfigInto(st)
		},
	}

	cmd.AddCommand(newListCasesCmd(st))
	cmd.AddCommand(newListCategoriesCmd(st))
	return cmd
}

func newListCasesCmd(st *cliState) *cobra.Command {
	var datasetArg string
	var categories string

	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List test cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadListDataset(st, datasetArg)
			if err != nil {
				return err
			}
			cases := dataset.Filter(d.TestCases, dataset.ParseCategoryFilter(categories))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY\tINPUT")
			for _, tc := range cases {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", tc.ID, tc.Category, truncate(oneLine(tc.Input), 50))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&datasetArg, "dataset", "d", "", "path to the test dataset JSON file")
	cmd.Flags().StringVarP(&categories, "categories", "c", "", "comma-separated categories to list (default: all)")
	return cmd
}

func newListCategoriesCmd(st *cliState) *cobra.Command {
	var datasetArg string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories with case counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadListDataset(st, datasetArg)
			if err != nil {
				return err
			}
			names, counts := dataset.Categories(d.TestCases)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tCASES")
			for _, name := range names {
				fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&datasetArg, "dataset", "d", "", "path to the test dataset JSON file")
	return cmd
}

func loadListDataset(st *cliState, datasetArg string) (*dataset.Dataset, error) {
	path := strings.TrimSpace(datasetArg)
	if path == "" && st != nil && st.cfg != nil {
		path = st.cfg.Run.Dataset
	}
	return dataset.LoadFromFile(path)
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
