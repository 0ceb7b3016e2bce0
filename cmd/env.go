package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/normalize"
	"github.com/claimlens/claimlens/internal/ocr"
	"github.com/claimlens/claimlens/internal/pipeline"
	"github.com/claimlens/claimlens/internal/store"
	anthropicpkg "github.com/claimlens/claimlens/pkg/anthropic"
	"github.com/claimlens/claimlens/pkg/factcheck"
)

// analysisEnv holds the initialized store and pipeline needed by the
// analyze/batch/serve commands.
type analysisEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the environment.
func (ae *analysisEnv) Close() {
	if ae.Store != nil {
		_ = ae.Store.Close()
	}
}

// initEnv opens the store, runs migrations, builds all clients, and wires
// the pipeline. Callers should defer env.Close().
func initEnv(ctx context.Context) (*analysisEnv, error) {
	if err := cfg.Validate("analysis"); err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	extractor := ocr.NewExtractor(cfg.OCR)
	gateway := classify.New(anthropicClient, extractor, cfg.Anthropic)
	normalizer := normalize.New(cfg.Fetch)
	factcheckClient := factcheck.NewClient(cfg.FactCheck.Key,
		factcheck.WithBaseURL(cfg.FactCheck.BaseURL),
		factcheck.WithTimeout(time.Duration(cfg.FactCheck.TimeoutSecs)*time.Second),
	)

	p := pipeline.New(cfg, st, normalizer, gateway, factcheckClient)

	return &analysisEnv{
		Store:    st,
		Pipeline: p,
	}, nil
}
