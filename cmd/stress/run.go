package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/prompt-stress/internal/dataset"
	"github.com/stellarlinkco/prompt-stress/internal/llm"
	"github.com/stellarlinkco/prompt-stress/internal/report"
	"github.com/stellarlinkco/prompt-stress/internal/runner"
)

type runOptions struct {
	provider   string
	model      string
	output     string
	datasetArg string
	categories string
	delay      float64
	dryRun     bool
	quiet      bool
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run stress tests and write a CSV report",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfigInto(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStressTests(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.provider, "provider", "p", "", "LLM provider: claude|openai|mock (default from config, else mock)")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "model override (defaults to the provider's default)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output CSV file path")
	cmd.Flags().StringVarP(&opts.datasetArg, "dataset", "d", "", "path to the test dataset JSON file")
	cmd.Flags().StringVarP(&opts.categories, "categories", "c", "", "comma-separated categories to test (default: all)")
	cmd.Flags().Float64Var(&opts.delay, "delay", -1, "delay between API calls in seconds (default 1.0)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "list selected cases without calling any backend or writing a report")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress per-case progress output")

	return cmd
}

func runStressTests(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}
	out := cmd.OutOrStdout()

	datasetPath := strings.TrimSpace(opts.datasetArg)
	if datasetPath == "" {
		datasetPath = st.cfg.Run.Dataset
	}
	if _, err := os.Stat(datasetPath); err != nil {
		return fmt.Errorf("run: dataset file not found: %s", datasetPath)
	}

	d, err := dataset.LoadFromFile(datasetPath)
	if err != nil {
		return err
	}

	categories := dataset.ParseCategoryFilter(opts.categories)
	cases := dataset.Filter(d.TestCases, categories)
	if len(cases) == 0 {
		return fmt.Errorf("run: no test cases found matching criteria")
	}

	fmt.Fprintf(out, "Loaded %d test cases from %s\n", len(cases), datasetPath)

	provider := strings.TrimSpace(opts.provider)
	if provider == "" {
		provider = st.cfg.DefaultProvider
	}

	outputPath := strings.TrimSpace(opts.output)
	if outputPath == "" {
		outputPath = st.cfg.Run.Output
	}

	if opts.dryRun {
		fmt.Fprintln(out, "\n[DRY RUN] Would execute the following tests:")
		for _, tc := range cases {
			fmt.Fprintf(out, "  - %s: %s...\n", tc.ID, truncate(tc.Input, 50))
		}
		fmt.Fprintf(out, "\nProvider: %s\n", provider)
		if strings.TrimSpace(opts.model) == "" {
			fmt.Fprintln(out, "Model: (default)")
		} else {
			fmt.Fprintf(out, "Model: %s\n", opts.model)
		}
		fmt.Fprintf(out, "Output: %s\n", outputPath)
		return nil
	}

	backend, err := llm.FromConfig(st.cfg, provider, opts.model)
	if err != nil {
		return fmt.Errorf("run: initializing provider: %w", err)
	}

	fmt.Fprintf(out, "Using provider: %s (model: %s)\n", backend.Name(), backend.Model())

	delay := st.cfg.Run.DelaySeconds
	if opts.delay >= 0 {
		delay = opts.delay
	}

	var progress io.Writer = out
	if opts.quiet {
		progress = nil
	}
	r := runner.New(backend, time.Duration(delay*float64(time.Second)), progress)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := r.Run(ctx, cases)

	// Whatever was attempted is reported, an interrupted run included.
	if len(results) > 0 {
		if err := report.WriteFile(outputPath, results); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nResults written to: %s\n", outputPath)
		report.PrintSummary(out, runner.Summarize(results))
	}

	if runErr != nil {
		return fmt.Errorf("run: interrupted: %w", runErr)
	}
	return nil
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
