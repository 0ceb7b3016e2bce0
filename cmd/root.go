package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Misinformation analysis pipeline",
	Long:  "Analyzes text, URLs, and images for misinformation: normalizes the input, classifies it via Claude, attaches published fact-checks, and persists the verdict.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
