package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
)

var (
	analyzeText  string
	analyzeURL   string
	analyzeImage string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single piece of content",
	Long:  "Runs the full analysis for one input. Exactly one of --text, --url, or --image must be given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		input, err := buildInput(analyzeText, analyzeURL, analyzeImage)
		if err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Pipeline.Run(ctx, input)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		zap.L().Info("analysis complete",
			zap.String("status", string(result.StatusText)),
			zap.String("language", result.Language),
			zap.Int("factcheck_links", len(result.FactCheckLinks)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "text to analyze")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "article or post URL to analyze")
	analyzeCmd.Flags().StringVar(&analyzeImage, "image", "", "path to an image file to analyze")
	rootCmd.AddCommand(analyzeCmd)
}

// buildInput maps the mutually exclusive analyze flags onto an analysis
// input, reading the image file when one is given.
func buildInput(text, url, imagePath string) (model.AnalysisInput, error) {
	set := 0
	for _, v := range []string{text, url, imagePath} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return model.AnalysisInput{}, eris.New("exactly one of --text, --url, or --image is required")
	}

	switch {
	case text != "":
		return model.AnalysisInput{Kind: model.InputKindText, Text: text}, nil
	case url != "":
		return model.AnalysisInput{Kind: model.InputKindURL, URL: url}, nil
	default:
		data, err := os.ReadFile(imagePath)
		if err != nil {
			return model.AnalysisInput{}, eris.Wrapf(err, "read image %s", imagePath)
		}
		return model.AnalysisInput{
			Kind:      model.InputKindImage,
			ImageData: data,
			ImageName: filepath.Base(imagePath),
		}, nil
	}
}
