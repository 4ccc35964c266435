package synthesizer

import (
	"context"
	"errors"

	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/ledger"
)

// the safety filter rejected both the original prompt and the sanitized
// retry; terminal, no further attempts
var ErrSafetyBlocked = errors.New("image blocked by safety filter after sanitized retry")

// regenerates a sanitized prompt when the image backend rejects the first one
type Reanalyzer interface {
	Analyze(ctx context.Context, handle string, safetyMode bool) (*analyzer.PromptArtifact, error)
}

// one synthesis request
type Request struct {
	Prompt     string
	Handle     string // needed to request a resanitized prompt on safety rejection
	Identifier string // anonymous user identifier for tier resolution
}

// terminal artifact of one synthesis run
type Result struct {
	URL         string
	Tier        ledger.Tier
	Regenerated bool // a safety-triggered prompt regeneration occurred
}

type Config struct {
	// model families that benefit from verbose style direction; matched as
	// substrings against the premium model name
	VerboseModelFamilies []string
}
