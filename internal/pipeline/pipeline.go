package pipeline

import (
	"context"
	"regexp"
	"time"

	"codeberg.org/handleart/server/internal/synthesizer"
)

// X handle format: 1-15 alphanumeric characters or underscores
var handleRegex = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// reports whether the string is a well-formed handle
func ValidHandle(handle string) bool {
	return handleRegex.MatchString(handle)
}

// Pipeline is the externally invoked entry point sequencing analysis and
// synthesis for one request
type Pipeline struct {
	analyzer    PromptAnalyzer
	synthesizer ImageSynthesizer
	budget      time.Duration // total wall-clock budget for both stages
}

func New(promptAnalyzer PromptAnalyzer, imageSynthesizer ImageSynthesizer, budget time.Duration) *Pipeline {
	return &Pipeline{
		analyzer:    promptAnalyzer,
		synthesizer: imageSynthesizer,
		budget:      budget,
	}
}

// runs the full handle → prompt → image pipeline. Failures from either
// stage surface unchanged; there are no partial results.
func (p *Pipeline) Generate(ctx context.Context, handle, identifier string) (*Result, error) {
	if !ValidHandle(handle) {
		return nil, ErrInvalidHandle
	}

	if p.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.budget)
		defer cancel()
	}

	artifact, err := p.analyzer.Analyze(ctx, handle, false)
	if err != nil {
		return nil, err
	}

	result, err := p.synthesizer.Synthesize(ctx, synthesizer.Request{
		Prompt:     artifact.Text,
		Handle:     handle,
		Identifier: identifier,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Prompt:   artifact.Text,
		ImageURL: result.URL,
		Tier:     result.Tier,
	}, nil
}
