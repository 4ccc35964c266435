package pipeline

import (
	"context"
	"errors"

	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/synthesizer"
)

// malformed handle; user-correctable, never retried
var ErrInvalidHandle = errors.New("invalid handle: must be 1-15 letters, numbers, or underscores")

type PromptAnalyzer interface {
	Analyze(ctx context.Context, handle string, safetyMode bool) (*analyzer.PromptArtifact, error)
}

type ImageSynthesizer interface {
	Synthesize(ctx context.Context, req synthesizer.Request) (*synthesizer.Result, error)
}

// combined artifact of one full generation run
type Result struct {
	Prompt   string
	ImageURL string
	Tier     ledger.Tier
}
