// Package format maps raw verdicts into the user-facing record shape.
package format

import (
	"strings"

	"github.com/claimlens/claimlens/internal/model"
)

// educationFallbacks holds the default tip set per input kind, used when
// the provider supplies no guidelines. Keyed by the finite InputKind enum
// so the mapping stays exhaustive and testable.
var educationFallbacks = map[model.InputKind][]string{
	model.InputKindText: {
		"Cross-check claims with multiple trusted sources.",
		"Be cautious of emotional or exaggerated language.",
		"Don't trust forwarded messages blindly.",
	},
	model.InputKindURL: {
		"Check the site's domain carefully.",
		"Compare with reputed outlets.",
		"Don't rely only on the headline; read the article.",
	},
	model.InputKindImage: {
		"Run a reverse image search to check origins.",
		"Look for watermarks or edits.",
		"Be careful of viral memes lacking context.",
	},
}

// StatusFor maps a raw verdict string to the three-way status label.
// Matching is case-insensitive; anything unrecognized (including empty)
// is Uncertain.
func StatusFor(verdict string) model.Status {
	switch strings.ToLower(verdict) {
	case "true":
		return model.StatusReal
	case "fake":
		return model.StatusFake
	default:
		return model.StatusUncertain
	}
}

// Format assembles the user-facing record from a raw verdict. It is a pure
// function: fact-check links, IDs, and timestamps are attached by the
// pipeline afterwards.
func Format(raw *model.RawVerdict, kind model.InputKind, lang string) *model.Analysis {
	education := raw.Guidelines
	if len(education) == 0 {
		education = educationFallbacks[kind]
	}

	return &model.Analysis{
		InputKind:    kind,
		RawVerdict:   *raw,
		StatusText:   StatusFor(raw.Verdict),
		BriefSummary: raw.Summary,
		Education:    education,
		Language:     lang,
	}
}
