package cmd

import (
	"fmt"

	"github.com/kedare/lens/internal/output"
	"github.com/spf13/cobra"
)

var trendingOutput string

var trendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Show trending searches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(trendingOutput)
		if err != nil {
			return err
		}

		items, err := trendingSource.Trending(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load trending searches: %w", err)
		}

		return output.DisplayTrending(cmd.OutOrStdout(), items, format)
	},
}

func init() {
	trendingCmd.Flags().StringVarP(&trendingOutput, "output", "o", "", "Output format: table, text, json")

	rootCmd.AddCommand(trendingCmd)
}
