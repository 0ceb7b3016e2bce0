package model

import "github.com/rotisserie/eris"

// Sentinel errors for the pipeline failure taxonomy. Callers classify with
// errors.Is: validation errors are user-correctable (bad or missing input),
// fetch errors carry upstream page-retrieval detail, and analysis errors
// mean the classification gateway itself failed. Augmentation and
// persistence failures are recovered inside the pipeline and never carry
// one of these sentinels out.
var (
	ErrValidation = eris.New("validation error")
	ErrFetch      = eris.New("fetch error")
	ErrAnalysis   = eris.New("analysis error")
)
