package cmd

import (
	"strings"

	"github.com/kedare/lens/internal/backend"
	"github.com/kedare/lens/internal/logger"
	"github.com/kedare/lens/internal/output"
	"github.com/kedare/lens/internal/search"
	"github.com/kedare/lens/internal/searchbar"
	"github.com/kedare/lens/internal/suggest"
	"github.com/spf13/cobra"
)

var suggestOutput string

var suggestCmd = &cobra.Command{
	Use:   "suggest <text...>",
	Short: "Suggest queries for partially typed text",
	Long: `List up to ten query suggestions containing the text, case-insensitively.
Recent text searches come first, marked with ↺, followed by completions and
trending searches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		format, err := resolveFormat(suggestOutput)
		if err != nil {
			return err
		}

		s, err := openSession(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		candidates := candidateSource(s.orch, trendingTexts(cmd))

		return output.DisplaySuggestions(cmd.OutOrStdout(), suggest.Get(text, candidates(text)), format)
	},
}

// candidateSource builds the suggestion catalog for typed text from the
// current history, backend completions and trending searches.
func candidateSource(orch *search.Orchestrator, trending []string) searchbar.CandidateSource {
	return func(text string) []suggest.Suggestion {
		return suggest.Catalog(orch.History(), backend.Completions(strings.TrimSpace(text)), trending)
	}
}

// trendingTexts returns the trending queries, or none when the source fails.
func trendingTexts(cmd *cobra.Command) []string {
	items, err := trendingSource.Trending(cmd.Context())
	if err != nil {
		logger.Log.Debugf("Failed to load trending searches: %v", err)
		return nil
	}

	return backend.TrendingTexts(items)
}

func init() {
	suggestCmd.Flags().StringVarP(&suggestOutput, "output", "o", "", "Output format: table, text, json")

	rootCmd.AddCommand(suggestCmd)
}
