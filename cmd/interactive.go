package cmd

import (
	"github.com/kedare/lens/internal/tui"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "tui"},
	Short:   "Launch the interactive search view",
	Long: `Start the full-screen search view.

Focus the search box to see recent searches (or trending ones when there is no
history), type to get suggestions, and press Enter to search. Tab moves to the
results where you can filter (/), open details (d), change page ([ and ]),
pick search filters (f) or search by an image file (i).

Press '?' in the results to see keyboard shortcuts.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

var runTUI = tui.Run

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	trending := trendingTexts(cmd)

	return runTUI(cmd.Context(), tui.Deps{
		Orchestrator: s.orch,
		Trending:     trending,
		Candidates:   candidateSource(s.orch, trending),
		PerPage:      cfg.PerPage,
	})
}
