// Package classify is the gateway to the external misinformation judgment
// capability. It owns prompt construction, the OCR pre-pass for image
// input, and tolerant parsing of the provider's JSON verdict.
package classify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/config"
	"github.com/claimlens/claimlens/internal/langdetect"
	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/ocr"
	"github.com/claimlens/claimlens/pkg/anthropic"
)

const systemPrompt = `You are an expert fact-checker and misinformation analyst. Classify the submitted content as 'true', 'fake', or 'uncertain'. If fake, explain when/where/why/how it was fabricated. If true, list sources and real_platform_id if relevant. Provide a concise summary and generate 3 education tips tailored to the content. Respond with a single valid JSON object: {"verdict": "<true|fake|uncertain>", "confidence": <0.0-1.0>, "evidence": [...], "when": "...", "where": "...", "why": "...", "how": "...", "sources": [...], "summary": "...", "guidelines": [...], "real_platform_id": "..."}`

const textUserPrompt = `Always respond in the same language as the input (detected: %s).

CONTENT:
%s`

const imageUserPrompt = `Classify the attached image%s. Always respond in the same language as the input (detected: %s).`

// Gateway classifies canonical content into a raw verdict.
type Gateway interface {
	ClassifyText(ctx context.Context, text, lang string) (*model.RawVerdict, error)
	// ClassifyImage runs an OCR pre-pass, then classifies the image together
	// with any recognized text. It returns the language detected from the
	// OCR text (or the default when OCR produced nothing).
	ClassifyImage(ctx context.Context, imagePath, lang string) (*model.RawVerdict, string, error)
}

type gateway struct {
	ai  anthropic.Client
	ocr ocr.Extractor
	cfg config.AnthropicConfig
}

// New creates a Gateway backed by the Anthropic client and the configured
// OCR extractor.
func New(ai anthropic.Client, extractor ocr.Extractor, cfg config.AnthropicConfig) Gateway {
	return &gateway{ai: ai, ocr: extractor, cfg: cfg}
}

func (g *gateway) ClassifyText(ctx context.Context, text, lang string) (*model.RawVerdict, error) {
	msg := anthropic.Message{
		Role:    "user",
		Content: fmt.Sprintf(textUserPrompt, lang, text),
	}
	return g.complete(ctx, msg, "classify_text")
}

func (g *gateway) ClassifyImage(ctx context.Context, imagePath, lang string) (*model.RawVerdict, string, error) {
	// OCR first; failure degrades to image-only analysis.
	ocrText, err := g.ocr.ExtractText(ctx, imagePath)
	if err != nil {
		zap.L().Warn("classify: ocr failed, continuing with image only",
			zap.String("image", imagePath),
			zap.Error(err),
		)
		ocrText = ""
	}
	if ocrText != "" {
		lang = langdetect.Detect(ocrText)
	}
	if lang == "" {
		lang = langdetect.DefaultLanguage
	}

	img, err := encodeImage(imagePath)
	if err != nil {
		return nil, lang, eris.Wrapf(model.ErrAnalysis, "read image: %v", err)
	}

	var ocrSection string
	if ocrText != "" {
		ocrSection = fmt.Sprintf(" together with the OCR text below.\n\nOCR TEXT:\n%s\n\nClassify them", ocrText)
	}

	msg := anthropic.Message{
		Role:    "user",
		Content: fmt.Sprintf(imageUserPrompt, ocrSection, lang),
		Image:   img,
	}

	verdict, err := g.complete(ctx, msg, "classify_image")
	return verdict, lang, err
}

// complete sends one message with the cached system prompt and parses the
// verdict record out of the response.
func (g *gateway) complete(ctx context.Context, msg anthropic.Message, phase string) (*model.RawVerdict, error) {
	maxTokens := int64(g.cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	resp, err := g.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     g.cfg.Model,
		MaxTokens: maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
		Messages:  []anthropic.Message{msg},
	})
	if err != nil {
		return nil, eris.Wrapf(model.ErrAnalysis, "%v", err)
	}
	resp.Usage.LogUsage(g.cfg.Model, phase)

	verdict, err := parseVerdict(extractText(resp))
	if err != nil {
		return nil, err
	}
	return verdict, nil
}

// parseVerdict decodes the provider's JSON payload. Malformed JSON is a
// hard error; an unrecognized verdict string is not (the formatter
// normalizes those to Uncertain).
func parseVerdict(text string) (*model.RawVerdict, error) {
	text = cleanJSON(text)

	var v model.RawVerdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, eris.Wrapf(model.ErrAnalysis, "malformed verdict payload: %v", err)
	}
	return &v, nil
}
