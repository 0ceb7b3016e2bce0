package normalize

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
)

// extractPage fetches a URL and reduces it to a single text body.
// Extraction priority: the first <article> element, then the Open Graph
// description, then a generic description meta tag, then the full page
// text truncated to the configured cap. Every fetch or parse failure is a
// fetch error that aborts the request.
func (n *Normalizer) extractPage(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrapf(model.ErrFetch, "create request: %v", err)
	}
	req.Header.Set("User-Agent", n.cfg.UserAgent)

	resp, err := n.http.Do(req)
	if err != nil {
		return "", eris.Wrapf(model.ErrFetch, "get %s: %v", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", eris.Wrapf(model.ErrFetch, "get %s: status %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", eris.Wrapf(model.ErrFetch, "parse %s: %v", rawURL, err)
	}

	text, source := extractText(doc, n.maxBodyText())
	zap.L().Debug("normalize: extracted page text",
		zap.String("url", rawURL),
		zap.String("source", source),
		zap.Int("chars", len(text)),
	)
	return text, nil
}

func (n *Normalizer) maxBodyText() int {
	if n.cfg.MaxBodyText > 0 {
		return n.cfg.MaxBodyText
	}
	return 4000
}

// extractText applies the extraction priority to a parsed document and
// reports which branch produced the text.
func extractText(doc *goquery.Document, maxLen int) (string, string) {
	if article := doc.Find("article").First(); article.Length() > 0 {
		return strings.TrimSpace(article.Text()), "article"
	}

	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok && content != "" {
		return truncate(content, maxLen), "og:description"
	}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && content != "" {
		return truncate(content, maxLen), "description"
	}

	return truncate(strings.TrimSpace(doc.Text()), maxLen), "body"
}

// truncate caps s at maxLen characters, never splitting a rune.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen])
}
