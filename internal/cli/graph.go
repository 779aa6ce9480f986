package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teasort/pkg/dag"
	"github.com/matzehuels/teasort/pkg/dag/transform"
	"github.com/matzehuels/teasort/pkg/errors"
	pkgio "github.com/matzehuels/teasort/pkg/io"
	"github.com/matzehuels/teasort/pkg/render/nodelink"
	"github.com/matzehuels/teasort/pkg/teasort"
)

// Graph output formats.
const (
	formatDOT  = "dot"
	formatSVG  = "svg"
	formatJSON = "json"
)

// graphOpts holds the flags of the graph command.
type graphOpts struct {
	file     string
	from     string
	format   string
	output   string
	seed     uint64
	detailed bool
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [values...]",
		Short: "Export the hint graph sampled for a sort",
		Long: `Sample the hint graph that sorting the given integers would use and export it
with its depth-first finish order.

Every edge points from the larger value to the smaller one. Edges that close a
cycle in the traversal are highlighted in DOT and SVG output. Use --from to
load a graph previously exported as JSON instead of sampling a new one.`,
		Example: `  teasort graph 5 3 4 1 2 --seed 1
  teasort graph -f values.txt --format svg -o hints.svg
  teasort graph --from hints.json --format dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read values from file")
	cmd.Flags().StringVar(&opts.from, "from", "", "load a graph exported with --format json")
	cmd.Flags().StringVar(&opts.format, "format", formatDOT, "output format: dot, svg or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for the edge sampler (0 = random)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include out-degree in node labels")
	cmd.MarkFlagsMutuallyExclusive("from", "file")
	cmd.MarkFlagsMutuallyExclusive("from", "seed")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, args []string, opts graphOpts) error {
	if err := errors.ValidateFormat(opts.format, formatDOT, formatSVG, formatJSON); err != nil {
		return err
	}
	logger := loggerFromContext(cmd.Context())

	g, err := loadGraph(cmd, args, opts)
	if err != nil {
		return err
	}
	trav := transform.Traverse(g)
	if err := trav.Check(g.Len()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "linearize %d vertices", g.Len())
	}
	logger.Debug("linearized graph",
		"vertices", g.Len(),
		"edges", g.EdgeCount(),
		"roots", trav.Roots,
		"back_edges", trav.BackEdges,
		"max_depth", trav.MaxDepth)

	var buf bytes.Buffer
	switch opts.format {
	case formatJSON:
		if err := pkgio.WriteJSONWithOrder(g, trav.Order, &buf); err != nil {
			return err
		}
	case formatDOT, formatSVG:
		dot := nodelink.ToDOT(g, nodelink.Options{Order: trav.Order, Detailed: opts.detailed})
		if opts.format == formatDOT {
			buf.WriteString(dot)
			break
		}
		svg, err := nodelink.RenderSVG(cmd.Context(), dot)
		if err != nil {
			return err
		}
		buf.Write(svg)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	printSuccess("Exported %s graph", opts.format)
	printFile(opts.output)
	printStats(false,
		fmt.Sprintf("%d vertices", g.Len()),
		fmt.Sprintf("%d edges", g.EdgeCount()),
		fmt.Sprintf("%d back edges", trav.BackEdges))
	return nil
}

// loadGraph imports a graph with --from, or samples one for the input
// values.
func loadGraph(cmd *cobra.Command, args []string, opts graphOpts) (*dag.Graph[int], error) {
	if opts.from != "" {
		return pkgio.ImportJSON[int](opts.from)
	}
	values, err := readSortInput(cmd.InOrStdin(), opts.file, args)
	if err != nil {
		return nil, err
	}
	return teasort.Build(newSource(opts.seed), values)
}
