package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kedare/lens/internal/output"
	"github.com/kedare/lens/internal/search"
	"github.com/spf13/cobra"
)

var (
	searchSize    string
	searchColor   string
	searchType    string
	searchTime    string
	searchPage    int
	searchPerPage int
	searchOutput  string
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search images by text",
	Long: `Search images matching the query. Every word after 'search' is part of the
query. Filters narrow the results by size, color, type and upload time; 'any'
disables a filter. Successful searches are added to the history.`,
	Example: `  lens search mountain lake
  lens search city skyline --size large --time week
  lens search ocean --page 2 -o json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(strings.Join(args, " "))
		if query == "" {
			return errors.New("query must not be blank")
		}

		filters, err := search.ParseFilters(searchSize, searchColor, searchType, searchTime)
		if err != nil {
			return err
		}

		format, err := resolveFormat(searchOutput)
		if err != nil {
			return err
		}

		c := cfg
		if cmd.Flags().Changed("per-page") {
			if searchPerPage <= 0 {
				return fmt.Errorf("--per-page must be positive, got %d", searchPerPage)
			}

			c.PerPage = searchPerPage
		}

		s, err := openSession(c)
		if err != nil {
			return err
		}
		defer s.Close()

		s.orch.SetQuery(query)
		s.orch.SetFilters(filters)
		s.orch.SetCurrentPage(max(searchPage, 1))

		spinner := output.NewSpinner(fmt.Sprintf("Searching images for %q", query))
		spinner.Start()

		s.orch.Search(cmd.Context())

		snap := s.orch.Snapshot()
		if snap.Error != "" {
			spinner.Fail(snap.Error)
			return errors.New(snap.Error)
		}

		spinner.Success(fmt.Sprintf("Found %d image(s)", len(snap.Results)))

		return output.DisplaySearch(cmd.OutOrStdout(), snap, format)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSize, "size", search.Any, "Image size: "+strings.Join(search.SizeOptions, ", "))
	searchCmd.Flags().StringVar(&searchColor, "color", search.Any, "Image color: "+strings.Join(search.ColorOptions, ", "))
	searchCmd.Flags().StringVar(&searchType, "type", search.Any, "Image type: "+strings.Join(search.TypeOptions, ", "))
	searchCmd.Flags().StringVar(&searchTime, "time", search.Any, "Upload time: "+strings.Join(search.TimeOptions, ", "))
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Result page to show")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", search.DefaultPerPage, "Results per page")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Output format: table, text, json")

	rootCmd.AddCommand(searchCmd)
}
