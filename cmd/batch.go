package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/claimlens/claimlens/internal/model"
)

var (
	batchFile        string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a file of inputs concurrently",
	Long:  "Reads one input per line (a URL or plain text) and runs the analysis pipeline over them concurrently.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		inputs, err := readBatchFile(batchFile)
		if err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency == 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		return processBatch(ctx, inputs, concurrency, func(ctx context.Context, input model.AnalysisInput) (*model.Analysis, error) {
			return env.Pipeline.Run(ctx, input)
		})
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "file with one input per line (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent analyses (default from config)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

// readBatchFile parses one input per line. Lines starting with http:// or
// https:// become URL inputs, everything else is treated as text. Blank
// lines and #-comments are skipped.
func readBatchFile(path string) ([]model.AnalysisInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open batch file %s", path)
	}
	defer f.Close()

	var inputs []model.AnalysisInput
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, lineToInput(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "read batch file %s", path)
	}
	return inputs, nil
}

func lineToInput(line string) model.AnalysisInput {
	if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
		return model.AnalysisInput{Kind: model.InputKindURL, URL: line}
	}
	return model.AnalysisInput{Kind: model.InputKindText, Text: line}
}

// analyzeFunc is the callback signature for running one analysis.
type analyzeFunc func(ctx context.Context, input model.AnalysisInput) (*model.Analysis, error)

// processBatch runs the inputs concurrently with a bounded worker count.
// Individual failures are logged and counted but do not abort the batch.
func processBatch(ctx context.Context, inputs []model.AnalysisInput, concurrency int, analyze analyzeFunc) error {
	if len(inputs) == 0 {
		zap.L().Info("no inputs found")
		return nil
	}

	zap.L().Info("processing batch",
		zap.Int("inputs", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, input := range inputs {
		g.Go(func() error {
			log := zap.L().With(zap.String("input_type", string(input.Kind)))

			result, err := analyze(gctx, input)
			if err != nil {
				failed.Add(1)
				log.Error("analysis failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("analysis complete",
				zap.String("status", string(result.StatusText)),
				zap.Int("factcheck_links", len(result.FactCheckLinks)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
