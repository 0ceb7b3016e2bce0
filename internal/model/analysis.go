package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// InputKind identifies which variant of an analysis request was submitted.
type InputKind string

const (
	InputKindText  InputKind = "text"
	InputKindURL   InputKind = "url"
	InputKindImage InputKind = "image"
)

// AnalysisInput is a tagged union over the three supported input kinds.
// Exactly one variant's fields are populated, selected by Kind.
type AnalysisInput struct {
	Kind      InputKind `json:"input_type"`
	Text      string    `json:"text,omitempty"`
	URL       string    `json:"url,omitempty"`
	ImageData []byte    `json:"-"`
	ImageName string    `json:"image_name,omitempty"`
}

// Validate checks that the field required by the input kind is present.
// The returned messages are surfaced verbatim to the caller.
func (in AnalysisInput) Validate() error {
	switch in.Kind {
	case InputKindText:
		if in.Text == "" {
			return eris.Wrap(ErrValidation, "text required")
		}
	case InputKindURL:
		if in.URL == "" {
			return eris.Wrap(ErrValidation, "url required")
		}
	case InputKindImage:
		if len(in.ImageData) == 0 {
			return eris.Wrap(ErrValidation, "image file required")
		}
	default:
		return eris.Wrapf(ErrValidation, "invalid input_type %q", string(in.Kind))
	}
	return nil
}

// PlatformID is a (platform, content id) pair extracted from a recognized
// social-media URL.
type PlatformID struct {
	Platform string `json:"platform"`
	ID       string `json:"id"`
}

// CanonicalContent is the single normalized representation of any input
// kind, produced once per request and immutable thereafter.
type CanonicalContent struct {
	Text       string      `json:"text"`
	PlatformID *PlatformID `json:"platform_id,omitempty"`
	Language   string      `json:"language"`

	// ImagePath is set only for image input: the scoped temp file holding
	// the uploaded payload. The pipeline owns its removal.
	ImagePath string `json:"-"`
}

// RawVerdict is the structured record returned by the classification
// gateway, before user-facing formatting. Verdict is kept as the provider
// sent it; unrecognized values are normalized by the formatter, not here.
type RawVerdict struct {
	Verdict        string   `json:"verdict"`
	Confidence     float64  `json:"confidence"`
	Evidence       []string `json:"evidence"`
	When           string   `json:"when,omitempty"`
	Where          string   `json:"where,omitempty"`
	Why            string   `json:"why,omitempty"`
	How            string   `json:"how,omitempty"`
	Sources        []string `json:"sources"`
	Summary        string   `json:"summary"`
	Guidelines     []string `json:"guidelines"`
	RealPlatformID string   `json:"real_platform_id,omitempty"`
}

// Status is the three-way user-facing simplification of a raw verdict.
type Status string

const (
	StatusReal      Status = "Real"
	StatusFake      Status = "Fake"
	StatusUncertain Status = "Uncertain"
)

// FactCheckLink is one published claim review attached to a non-Real
// analysis. The claim text is the originating claim; the remaining fields
// describe one specific review of it.
type FactCheckLink struct {
	Title     string `json:"title,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	URL       string `json:"url,omitempty"`
	ClaimText string `json:"text"`
	Rating    string `json:"rating,omitempty"`
}

// Analysis is the final record: the raw verdict plus the user-facing
// fields. It is the only entity persisted and the only one returned to the
// caller. FactCheckLinks is populated iff StatusText is not Real (it may
// still be empty when the fact-check search fails or finds nothing).
type Analysis struct {
	ID        string    `json:"id"`
	InputKind InputKind `json:"input_type"`

	RawVerdict

	StatusText     Status          `json:"status_text"`
	BriefSummary   string          `json:"brief_summary"`
	Education      []string        `json:"education"`
	Language       string          `json:"language"`
	FactCheckLinks []FactCheckLink `json:"factcheck_links,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
