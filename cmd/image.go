package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kedare/lens/internal/output"
	"github.com/kedare/lens/internal/search"
	"github.com/spf13/cobra"
)

var (
	imageOutput    string
	imageTranslate string
)

var imageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Find images similar to a local file",
	Long: `Upload a local image and find similar ones. The best match is shown with the
objects and text detected in the uploaded image. With --translate (or
translate_to in the config) the detected text is also translated. The file name
is recorded in the history as an image search.`,
	Example: `  lens image ~/Pictures/beach.png
  lens image scan.jpg --translate fr -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		format, err := resolveFormat(imageOutput)
		if err != nil {
			return err
		}

		c := cfg
		if cmd.Flags().Changed("translate") {
			c.TranslateTo = strings.TrimSpace(imageTranslate)
		}

		s, err := openSession(c)
		if err != nil {
			return err
		}
		defer s.Close()

		name := filepath.Base(path)
		spinner := output.NewSpinner(fmt.Sprintf("Analyzing %s", name))
		spinner.Start()

		result, err := s.orch.SearchByImage(cmd.Context(), search.ImageFile{Name: name, Data: data})
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}

		spinner.Success("Found a similar image")

		return output.DisplayImageResult(cmd.OutOrStdout(), result, format)
	},
}

func init() {
	imageCmd.Flags().StringVarP(&imageOutput, "output", "o", "", "Output format: table, text, json")
	imageCmd.Flags().StringVar(&imageTranslate, "translate", "", "Translate detected text to this language (e.g. en, fr)")

	rootCmd.AddCommand(imageCmd)
}
