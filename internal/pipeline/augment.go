package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/pkg/factcheck"
)

// augment searches for published fact-checks of the claim. Any upstream
// failure yields an empty result; augmentation never fails the request.
func (p *Pipeline) augment(ctx context.Context, query string) []model.FactCheckLink {
	maxResults := p.cfg.FactCheck.MaxResults
	if maxResults <= 0 {
		maxResults = 3
	}

	resp, err := p.factcheck.Search(ctx, query, maxResults)
	if err != nil {
		zap.L().Warn("pipeline: fact-check search failed", zap.Error(err))
		return nil
	}

	return flattenClaims(resp.Claims)
}

// flattenClaims produces one link per (claim, claimReview) pair, carrying
// the originating claim's text alongside each review.
func flattenClaims(claims []factcheck.Claim) []model.FactCheckLink {
	var links []model.FactCheckLink
	for _, claim := range claims {
		for _, review := range claim.ClaimReview {
			links = append(links, model.FactCheckLink{
				Title:     review.Title,
				Publisher: review.Publisher.Name,
				URL:       review.URL,
				ClaimText: claim.Text,
				Rating:    review.TextualRating,
			})
		}
	}
	return links
}
