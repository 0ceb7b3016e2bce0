// Package ocr extracts text from uploaded images.
package ocr

import (
	"context"

	"github.com/claimlens/claimlens/internal/config"
)

// Extractor extracts text content from image files.
type Extractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) Extractor {
	return NewTesseract(cfg.TesseractPath, cfg.Languages)
}
