package cmd

import (
	"fmt"

	"github.com/kedare/lens/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build metadata for this binary",
	Long:  "Display build time, commit, builder information, and target architecture embedded in the binary.",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()
		w := cmd.OutOrStdout()

		fmt.Fprintf(w, "Version:      %s\n", info.Version)
		fmt.Fprintf(w, "Commit:       %s\n", info.Commit)

		if relTime := info.RelativeTime(); relTime != "" {
			fmt.Fprintf(w, "Built:        %s (%s)\n", info.BuildDate, relTime)
		} else {
			fmt.Fprintf(w, "Built:        %s\n", info.BuildDate)
		}

		fmt.Fprintf(w, "Built By:     %s@%s\n", info.BuildUser, info.BuildHost)
		fmt.Fprintf(w, "Architecture: %s\n", info.BuildArch)
		fmt.Fprintf(w, "Go Version:   %s\n", info.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
