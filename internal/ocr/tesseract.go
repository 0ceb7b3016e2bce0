package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// defaultLanguages is the multilingual recognition set used when no
// language list is configured. It covers English plus the major Indian
// scripts, so mixed-script screenshots still produce usable text.
const defaultLanguages = "eng+tam+hin+tel+mal+ben+guj+kan+mar+pan"

// Tesseract extracts text from images using the tesseract CLI tool.
type Tesseract struct {
	binPath   string
	languages string
}

// NewTesseract creates a Tesseract extractor. Empty arguments fall back to
// the "tesseract" binary on PATH and the default multilingual pack.
func NewTesseract(binPath, languages string) *Tesseract {
	if binPath == "" {
		binPath = "tesseract"
	}
	if languages == "" {
		languages = defaultLanguages
	}
	return &Tesseract{binPath: binPath, languages: languages}
}

// ExtractText runs tesseract on the given image and returns the recognized
// text with surrounding whitespace trimmed.
func (t *Tesseract) ExtractText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, t.binPath, imagePath, "stdout", "-l", t.languages)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: tesseract failed for %s: %s", imagePath, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}
