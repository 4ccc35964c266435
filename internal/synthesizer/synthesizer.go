package synthesizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/llm"
	"codeberg.org/handleart/server/internal/logger"
)

// fixed style-reinforcement wrapper for models that respond well to verbose
// direction; applied to the premium tier only
const styleWrapper = `Render exactly this scene as a single, richly detailed cartoon illustration: %s

Emphasize bold black ink outlines, vibrant saturated colors, halftone dot shading, exaggerated cartoon proportions, and a clean comic-book composition. Output one image.`

// Synthesizer turns an image prompt into a generated image, applying tiered
// backend selection and a one-shot safety-triggered regeneration
type Synthesizer struct {
	premium   llm.ImageGenerator
	standard  llm.ImageGenerator
	ledger    *ledger.Ledger
	analyzer  Reanalyzer
	wrapStyle bool
}

func New(premium, standard llm.ImageGenerator, usageLedger *ledger.Ledger, reanalyzer Reanalyzer, cfg Config) *Synthesizer {
	return &Synthesizer{
		premium:   premium,
		standard:  standard,
		ledger:    usageLedger,
		analyzer:  reanalyzer,
		wrapStyle: matchesFamily(premium.Model(), cfg.VerboseModelFamilies),
	}
}

// runs one synthesis: tier resolution, generation, and on the premium tier a
// single safety-triggered regeneration. The standard tier gets no safety
// retry: it exists to absorb quota overflow cheaply, and paying a second
// analysis call there defeats the point.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*Result, error) {
	tier, record, err := s.ledger.ResolveTier(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}

	logger.Debug("tier resolved",
		"tier", tier,
		"premium_count", record.PremiumCount,
	)

	if tier == ledger.TierStandard {
		return s.synthesizeStandard(ctx, req)
	}

	return s.synthesizePremium(ctx, req)
}

func (s *Synthesizer) synthesizePremium(ctx context.Context, req Request) (*Result, error) {
	url, err := s.premium.GenerateImage(ctx, s.expandPrompt(req.Prompt))

	if errors.Is(err, llm.ErrSafetyRejected) {
		return s.regenerateAndRetry(ctx, req)
	}

	if err != nil {
		// non-safety failures are not retried, and a failed attempt
		// never consumes quota
		return nil, fmt.Errorf("premium image generation failed: %w", err)
	}

	if err := s.ledger.RecordPremiumUsage(ctx, req.Identifier); err != nil {
		return nil, err
	}

	return &Result{URL: url, Tier: ledger.TierPremium}, nil
}

// one sanitized regeneration after a safety rejection: re-analyze the same
// handle under safety guidelines and retry generation exactly once
func (s *Synthesizer) regenerateAndRetry(ctx context.Context, req Request) (*Result, error) {
	logger.Info("image rejected by safety filter, regenerating sanitized prompt",
		"handle", req.Handle,
	)

	artifact, err := s.analyzer.Analyze(ctx, req.Handle, true)
	if err != nil {
		return nil, fmt.Errorf("sanitized prompt regeneration failed: %w", err)
	}

	url, err := s.premium.GenerateImage(ctx, s.expandPrompt(artifact.Text))

	if errors.Is(err, llm.ErrSafetyRejected) {
		return nil, ErrSafetyBlocked
	}

	if err != nil {
		return nil, fmt.Errorf("premium image generation failed: %w", err)
	}

	if err := s.ledger.RecordPremiumUsage(ctx, req.Identifier); err != nil {
		return nil, err
	}

	return &Result{URL: url, Tier: ledger.TierPremium, Regenerated: true}, nil
}

func (s *Synthesizer) synthesizeStandard(ctx context.Context, req Request) (*Result, error) {
	url, err := s.standard.GenerateImage(ctx, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("standard image generation failed: %w", err)
	}

	return &Result{URL: url, Tier: ledger.TierStandard}, nil
}

func (s *Synthesizer) expandPrompt(prompt string) string {
	if !s.wrapStyle {
		return prompt
	}

	return fmt.Sprintf(styleWrapper, prompt)
}

func matchesFamily(model string, families []string) bool {
	model = strings.ToLower(model)

	for _, family := range families {
		if strings.Contains(model, strings.ToLower(family)) {
			return true
		}
	}

	return false
}
