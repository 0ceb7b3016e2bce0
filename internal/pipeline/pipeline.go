// Package pipeline orchestrates a single analysis request from raw input
// to persisted record.
package pipeline

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/config"
	"github.com/claimlens/claimlens/internal/format"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/normalize"
	"github.com/claimlens/claimlens/internal/store"
	"github.com/claimlens/claimlens/pkg/factcheck"
)

// Phase names the stages of one analysis run, in execution order.
type Phase string

const (
	PhaseReceived    Phase = "received"
	PhaseNormalizing Phase = "normalizing"
	PhaseClassifying Phase = "classifying"
	PhaseFormatting  Phase = "formatting"
	PhaseAugmenting  Phase = "augmenting"
	PhasePersisting  Phase = "persisting"
	PhaseCompleted   Phase = "completed"
)

// Pipeline runs analyses. Each request is processed independently and
// synchronously; the pipeline holds no cross-request mutable state, so one
// instance serves concurrent requests.
type Pipeline struct {
	cfg        *config.Config
	store      store.Store
	normalizer *normalize.Normalizer
	gateway    classify.Gateway
	factcheck  factcheck.Client
}

// New creates a Pipeline with all dependencies.
func New(cfg *config.Config, st store.Store, normalizer *normalize.Normalizer, gateway classify.Gateway, fc factcheck.Client) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		store:      st,
		normalizer: normalizer,
		gateway:    gateway,
		factcheck:  fc,
	}
}

// Run executes the full analysis for one input and returns the final
// record. Normalization and classification failures abort the run with a
// typed error; fact-check augmentation and persistence failures degrade
// (logged, result still returned).
func (p *Pipeline) Run(ctx context.Context, input model.AnalysisInput) (*model.Analysis, error) {
	log := zap.L().With(zap.String("input_type", string(input.Kind)))
	log.Info("pipeline: analysis received", zap.String("phase", string(PhaseReceived)))

	log.Debug("pipeline: phase", zap.String("phase", string(PhaseNormalizing)))
	content, err := p.normalizer.Normalize(ctx, input)
	if err != nil {
		return nil, err
	}
	if content.ImagePath != "" {
		// The spooled upload must not outlive the request, whatever happens
		// in classification.
		defer func(path string) {
			if err := os.Remove(path); err != nil {
				log.Warn("pipeline: failed to remove temp image", zap.String("path", path), zap.Error(err))
			}
		}(content.ImagePath)
	}

	log.Debug("pipeline: phase", zap.String("phase", string(PhaseClassifying)))
	raw, lang, err := p.classifyContent(ctx, input.Kind, content)
	if err != nil {
		return nil, err
	}

	// The extractor's platform id wins over whatever the provider guessed.
	if content.PlatformID != nil {
		raw.RealPlatformID = content.PlatformID.ID
	}

	log.Debug("pipeline: phase", zap.String("phase", string(PhaseFormatting)))
	analysis := format.Format(raw, input.Kind, lang)

	if analysis.StatusText != model.StatusReal {
		log.Debug("pipeline: phase", zap.String("phase", string(PhaseAugmenting)))
		analysis.FactCheckLinks = p.augment(ctx, analysis.Summary)
	}

	log.Debug("pipeline: phase", zap.String("phase", string(PhasePersisting)))
	if err := p.store.Append(ctx, analysis); err != nil {
		// Best effort: a persistence outage must not cost the caller their
		// result.
		log.Error("pipeline: failed to persist analysis", zap.Error(err))
	}

	log.Info("pipeline: analysis completed",
		zap.String("phase", string(PhaseCompleted)),
		zap.String("status", string(analysis.StatusText)),
		zap.String("language", analysis.Language),
		zap.Int("factcheck_links", len(analysis.FactCheckLinks)),
	)
	return analysis, nil
}

// classifyContent dispatches to the gateway entry point for the input kind
// and resolves the record's final language.
func (p *Pipeline) classifyContent(ctx context.Context, kind model.InputKind, content *model.CanonicalContent) (*model.RawVerdict, string, error) {
	if kind == model.InputKindImage {
		return p.gateway.ClassifyImage(ctx, content.ImagePath, content.Language)
	}
	raw, err := p.gateway.ClassifyText(ctx, content.Text, content.Language)
	return raw, content.Language, err
}
