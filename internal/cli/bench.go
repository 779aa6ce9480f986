package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/errors"
)

// benchFlags holds the output and backend flags of the bench command.
type benchFlags struct {
	tui     bool
	table   bool
	json    bool
	noCache bool
	save    bool
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var (
		opts  bench.Options
		flags benchFlags
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure cost per element over doubling input sizes",
		Long: `Sort shuffled permutations of 1..n for n = min, 2·min, 4·min, ... up to max
and print the average cost divided by n for each size.

With a fixed --seed the run is reproducible and every row is cached, so a
repeated run only measures sizes it has not seen before.

With --save a failure to store the report is reported after the results
and the command exits with an error.`,
		Example: `  teasort bench
  teasort bench --min 64 --max 4096 --iter 32 --seed 7
  teasort bench --rounds 8 --tui --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd, c.benchOptions(cmd, opts), flags)
		},
	}

	cmd.Flags().IntVar(&opts.MinSize, "min", bench.DefaultMinSize, "smallest size measured")
	cmd.Flags().IntVar(&opts.MaxSize, "max", bench.DefaultMaxSize, "largest size measured")
	cmd.Flags().IntVar(&opts.Rounds, "rounds", 0, "measure this many sizes from --min (overrides --max)")
	cmd.Flags().IntVar(&opts.Iterations, "iter", bench.DefaultIterations, "sorts averaged per size")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for reproducible runs (0 = time-based)")
	cmd.Flags().BoolVar(&flags.tui, "tui", false, "show a live view while measuring")
	cmd.Flags().BoolVar(&flags.table, "table", false, "print a table instead of one line per size")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the row cache")
	cmd.Flags().BoolVar(&flags.save, "save", false, "save the report to the history store")
	cmd.MarkFlagsMutuallyExclusive("tui", "json")
	cmd.MarkFlagsMutuallyExclusive("table", "json")

	return cmd
}

// benchOptions starts from the [bench] config section and applies every
// flag the user set explicitly.
func (c *CLI) benchOptions(cmd *cobra.Command, flagOpts bench.Options) bench.Options {
	opts := c.Config.Bench
	if opts.Rounds > 0 && cmd.Flags().Changed("max") {
		opts.Rounds = 0
	}
	f := cmd.Flags()
	if f.Changed("min") || opts.MinSize == 0 {
		opts.MinSize = flagOpts.MinSize
	}
	if f.Changed("max") || opts.MaxSize == 0 {
		opts.MaxSize = flagOpts.MaxSize
	}
	if f.Changed("rounds") {
		opts.Rounds = flagOpts.Rounds
	}
	if f.Changed("iter") || opts.Iterations == 0 {
		opts.Iterations = flagOpts.Iterations
	}
	if f.Changed("seed") {
		opts.Seed = flagOpts.Seed
	}
	return opts
}

func (c *CLI) runBench(cmd *cobra.Command, opts bench.Options, flags benchFlags) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	runner, cleanup, err := c.newRunner(ctx, flags.noCache, flags.save)
	if err != nil {
		return err
	}
	defer cleanup()
	if flags.save && runner.Store == nil {
		printWarning("Store backend is %q; the report will not be saved", c.Config.Store.Backend)
	}

	logger.Debug("starting benchmark",
		"min", opts.MinSize,
		"max", opts.MaxSize,
		"iterations", opts.Iterations,
		"seed", opts.Seed)

	var report *bench.Report
	switch {
	case flags.tui:
		report, err = runBenchTUI(ctx, runner, opts)
	case flags.table || flags.json:
		sizes := opts.Sizes()
		spinner := newSpinner(ctx, c.stderr, fmt.Sprintf("Measuring %d sizes...", len(sizes)))
		spinner.Start()
		done := 0
		report, err = runner.Run(ctx, opts, func(row bench.Row) {
			done++
			spinner.SetMessage("Measured n=%d [%d/%d]", row.N, done, len(sizes))
		})
		spinner.Stop()
	default:
		report, err = runner.Run(ctx, opts, func(row bench.Row) {
			fmt.Fprintln(out, row)
		})
	}
	if report == nil {
		return err
	}
	return writeBenchReport(out, report, flags, runner.Store != nil, err)
}

// writeBenchReport prints a finished report. saveErr is the error from
// persisting it; the output is still written and the error is returned
// afterwards, so a requested save that fails ends the command with an error.
func writeBenchReport(out io.Writer, report *bench.Report, flags benchFlags, stored bool, saveErr error) error {
	if saveErr != nil {
		saveErr = errors.Wrap(errors.ErrCodeUnavailable, saveErr, "save report %s", report.ID)
		printWarning("Report not saved: %v", saveErr)
	}

	switch {
	case flags.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		return saveErr
	case flags.table || flags.tui:
		fmt.Fprintln(out, rowsTable(report.Rows).Render())
	}

	cached := 0
	for _, row := range report.Rows {
		if row.Cached {
			cached++
		}
	}
	printStats(cached == len(report.Rows),
		fmt.Sprintf("%d sizes", len(report.Rows)),
		fmt.Sprintf("%d cached", cached),
		fmt.Sprintf("growth %.3f", report.Growth()),
		fmt.Sprintf("seed %d", report.Seed))

	if saveErr != nil {
		return saveErr
	}
	if flags.save && stored {
		printSuccess("Saved report %s", StyleHighlight.Render(report.ID))
		printNextStep("Show it again", "teasort history show "+report.ID)
	}
	return nil
}
