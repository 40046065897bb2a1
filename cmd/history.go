package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/kedare/lens/internal/output"
	"github.com/kedare/lens/internal/search"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	historyOutput string
	nowFunc       = time.Now
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show and manage recent searches",
	Long:  "Commands for the list of recent searches. The ten most recent distinct searches are kept.",
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent searches, newest first",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(historyOutput)
		if err != nil {
			return err
		}

		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		return output.DisplayHistory(cmd.OutOrStdout(), s.orch.History(), nowFunc(), format)
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:     "remove <timestamp>",
	Aliases: []string{"rm"},
	Short:   "Remove one search by its timestamp",
	Long:    "Remove the history entry with the given timestamp, as shown by 'lens history list -o json'.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", args[0], err)
		}

		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		if !slices.ContainsFunc(s.orch.History(), func(e search.HistoryEntry) bool { return e.Timestamp == ts }) {
			return fmt.Errorf("no history entry with timestamp %d", ts)
		}

		s.orch.RemoveFromHistory(ts)
		pterm.Success.Printf("Removed history entry %d\n", ts)

		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every recent search",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		n := len(s.orch.History())
		s.orch.ClearHistory()
		pterm.Success.Printf("Cleared %d history entr%s\n", n, plural(n, "y", "ies"))

		return nil
	},
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}

func init() {
	historyListCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "Output format: table, text, json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
