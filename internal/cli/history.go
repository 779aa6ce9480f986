package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/teasort/pkg/errors"
	"github.com/matzehuels/teasort/pkg/store"
)

// historyCommand creates the command group for saved benchmark reports.
func (c *CLI) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and show saved benchmark reports",
		Long: `Reports are saved by "teasort bench --save" to the configured store: one JSON
file per report by default, or a MongoDB collection.`,
	}

	cmd.AddCommand(c.historyListCommand())
	cmd.AddCommand(c.historyShowCommand())
	cmd.AddCommand(c.historyDeleteCommand())

	return cmd
}

func (c *CLI) historyListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("No saved reports")
				printNextStep("Save one", "teasort bench --save")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, s := range summaries {
				fmt.Fprintf(out, "%s  %s  n=%d..%d  rows=%d  growth=%.3f\n",
					s.ID, s.StartedAt.Local().Format("2006-01-02 15:04"),
					s.MinSize, s.MaxSize, s.Rows, s.Growth)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of reports")
	return cmd
}

func (c *CLI) historyShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			report, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			printKeyValue("Report", report.ID)
			printKeyValue("Started", report.StartedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("Seed", strconv.FormatUint(report.Seed, 10))
			printKeyValue("Iterations", strconv.Itoa(report.Options.Iterations))
			printKeyValue("Growth", fmt.Sprintf("%.3f", report.Growth()))
			printNewline()
			return report.WriteText(out)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func (c *CLI) historyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted report %s", args[0])
			return nil
		},
	}
}

// openStore opens the configured store, failing when the backend is "none".
func (c *CLI) openStore(cmd *cobra.Command) (store.Store, error) {
	st, err := c.newStore(cmd.Context())
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "store backend is %q; no history is kept", c.Config.Store.Backend)
	}
	return st, nil
}
