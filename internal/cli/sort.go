package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teasort/pkg/errors"
	"github.com/matzehuels/teasort/pkg/teasort"
)

// sortOpts holds the flags of the sort command.
type sortOpts struct {
	file  string
	seed  uint64
	stats bool
	json  bool
}

// sortCommand creates the sort command.
func (c *CLI) sortCommand() *cobra.Command {
	var opts sortOpts

	cmd := &cobra.Command{
		Use:   "sort [values...]",
		Short: "Sort integers and report the cost",
		Long: `Sort integers given as arguments, read from a file (-f) or from stdin.

Values may be separated by whitespace or commas. The sorted values are printed
on one line; --stats adds the edge and comparison counts behind the cost.`,
		Example: `  teasort sort 5 3 4 1 2
  echo "9,7,8" | teasort sort --stats
  teasort sort -f values.txt --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readSortInput(cmd.InOrStdin(), opts.file, args)
			if err != nil {
				return err
			}
			return c.runSort(cmd, values, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read values from file")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for the edge sampler (0 = random)")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print cost breakdown")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print sorted values and stats as JSON")

	return cmd
}

// sortResult is the JSON shape printed by "sort --json" and returned by the
// HTTP API.
type sortResult struct {
	Values []int         `json:"values"`
	Stats  teasort.Stats `json:"stats"`
}

func (c *CLI) runSort(cmd *cobra.Command, values []int, opts sortOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	stats, err := teasort.SortWithStats(newSource(opts.seed), values)
	if err != nil {
		return err
	}
	logger.Debug("sorted", "n", stats.N, "edges", stats.Edges, "comparisons", stats.Comparisons)
	prog.done(fmt.Sprintf("Sorted %d values", len(values)))

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sortResult{Values: values, Stats: stats})
	}

	if err := writeInts(out, values); err != nil {
		return err
	}
	if opts.stats {
		printKeyValue("Cost", strconv.FormatUint(stats.Cost, 10))
		printStats(false,
			fmt.Sprintf("%d edges", stats.Edges),
			fmt.Sprintf("%d comparisons", stats.Comparisons),
			fmt.Sprintf("%d back edges", stats.BackEdges),
			fmt.Sprintf("%d roots", stats.Roots))
	}
	return nil
}

// newSource returns a seeded source, or a randomly seeded one for seed 0.
func newSource(seed uint64) teasort.Source {
	if seed == 0 {
		return teasort.NewRandomSource()
	}
	return teasort.NewSource(seed)
}

// readSortInput collects values from args, or from file, or from stdin, in
// that order of precedence.
func readSortInput(stdin io.Reader, file string, args []string) ([]int, error) {
	if len(args) > 0 {
		return parseInts(strings.Join(args, " "))
	}

	r := stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", file)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, 32*errors.MaxInputLength))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return parseInts(string(data))
}

// parseInts splits s on whitespace and commas and parses each field.
func parseInts(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if err := errors.ValidateLength(len(fields)); err != nil {
		return nil, err
	}

	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "value %d is not an integer: %q", i+1, f)
		}
		values[i] = v
	}
	return values, nil
}

// writeInts prints values on one line separated by spaces.
func writeInts(w io.Writer, values []int) error {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}
