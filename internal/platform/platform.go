// Package platform extracts canonical (platform, content id) pairs from
// social-media URLs.
package platform

import (
	"net/url"
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// Extract parses rawURL and, for a recognized platform, returns its
// canonical platform id. Unrecognized or malformed URLs return nil; this
// function never fails. Matching is done on the parsed host and path, not
// on the raw string, so query strings and fragments cannot cause false
// positives.
func Extract(rawURL string) *model.PlatformID {
	if rawURL == "" {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())

	// X / Twitter: /user/status/<id>
	if strings.Contains(host, "twitter.com") || strings.Contains(host, "x.com") {
		parts := splitPath(u.Path)
		if len(parts) >= 3 && parts[len(parts)-2] == "status" {
			return &model.PlatformID{Platform: "x", ID: parts[len(parts)-1]}
		}
		return nil
	}

	// YouTube: watch?v=<id> or youtu.be/<id>
	if strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be") {
		if v := u.Query().Get("v"); v != "" {
			return &model.PlatformID{Platform: "youtube", ID: v}
		}
		if p := strings.Trim(u.Path, "/"); p != "" {
			return &model.PlatformID{Platform: "youtube", ID: p}
		}
		return nil
	}

	// Instagram: first path segment.
	if strings.Contains(host, "instagram.com") {
		parts := splitPath(u.Path)
		if len(parts) > 0 {
			return &model.PlatformID{Platform: "instagram", ID: parts[0]}
		}
		return nil
	}

	return nil
}

// splitPath trims slashes and splits the path into non-empty segments.
func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
