// Package normalize converts each supported input kind into the canonical
// content representation fed to classification.
package normalize

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/config"
	"github.com/claimlens/claimlens/internal/langdetect"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/platform"
)

// Normalizer turns heterogeneous analysis input into canonical content.
type Normalizer struct {
	cfg  config.FetchConfig
	http *http.Client
}

// New creates a Normalizer with a bounded-timeout page fetch client.
func New(cfg config.FetchConfig) *Normalizer {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Normalizer{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

// Normalize validates the input and produces canonical content for it.
// Text and URL input come back with the detected language; image input is
// spooled to a temp file whose removal the caller owns (CanonicalContent.
// ImagePath), with language resolution deferred to OCR.
func (n *Normalizer) Normalize(ctx context.Context, input model.AnalysisInput) (*model.CanonicalContent, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	switch input.Kind {
	case model.InputKindText:
		return &model.CanonicalContent{
			Text:     input.Text,
			Language: langdetect.Detect(input.Text),
		}, nil

	case model.InputKindURL:
		text, err := n.extractPage(ctx, input.URL)
		if err != nil {
			return nil, err
		}
		return &model.CanonicalContent{
			Text:       text,
			PlatformID: platform.Extract(input.URL),
			Language:   langdetect.Detect(text),
		}, nil

	case model.InputKindImage:
		path, err := spoolImage(input)
		if err != nil {
			return nil, err
		}
		return &model.CanonicalContent{
			ImagePath: path,
			Language:  langdetect.DefaultLanguage,
		}, nil
	}

	// Unreachable: Validate rejects unknown kinds.
	return nil, eris.Wrapf(model.ErrValidation, "invalid input_type %q", string(input.Kind))
}

// spoolImage writes the uploaded payload to a scoped temp file and returns
// its path. The file name keeps the upload's extension so OCR tooling can
// sniff the format.
func spoolImage(input model.AnalysisInput) (string, error) {
	name := fmt.Sprintf("claimlens-%s-*%s", uuid.New().String(), filepath.Ext(input.ImageName))
	f, err := os.CreateTemp("", name)
	if err != nil {
		return "", eris.Wrap(err, "normalize: create temp image")
	}

	if _, err := f.Write(input.ImageData); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", eris.Wrap(err, "normalize: write temp image")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", eris.Wrap(err, "normalize: close temp image")
	}

	zap.L().Debug("normalize: spooled image",
		zap.String("path", f.Name()),
		zap.Int("bytes", len(input.ImageData)),
	)
	return f.Name(), nil
}
