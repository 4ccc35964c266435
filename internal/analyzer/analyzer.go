package analyzer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/handleart/server/internal/llm"
	"codeberg.org/handleart/server/internal/logger"
	"golang.org/x/sync/singleflight"
)

// posts older than this are ignored by the search tool
const searchWindow = 182 * 24 * time.Hour

// Config controls analyzer behavior; the cache is opt-in per deployment,
// never a package-level toggle
type Config struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// Analyzer turns a handle into an image prompt (or a text report) by calling
// a search-augmented text-generation backend
type Analyzer struct {
	generator llm.TextGenerator // search-capable model for image prompts
	reporter  llm.TextGenerator // model for roast/profile reports
	cache     CacheStore        // nil when the cache is disabled
	cacheTTL  time.Duration
	group     singleflight.Group
	now       func() time.Time
}

func New(generator, reporter llm.TextGenerator, cache CacheStore, cfg Config) *Analyzer {
	if !cfg.CacheEnabled {
		cache = nil
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	return &Analyzer{
		generator: generator,
		reporter:  reporter,
		cache:     cache,
		cacheTTL:  ttl,
		now:       time.Now,
	}
}

// overrides the clock, for tests
func (a *Analyzer) WithClock(now func() time.Time) *Analyzer {
	a.now = now
	return a
}

// produces an image-generation prompt from the handle's recent posts.
// safetyMode extends the instruction template with content-safety
// constraints; everything else is shared between the two modes.
func (a *Analyzer) Analyze(ctx context.Context, handle string, safetyMode bool) (*PromptArtifact, error) {
	key := fmt.Sprintf("%s:%t", strings.ToLower(handle), safetyMode)

	// concurrent identical analyses collapse into one upstream call
	result, err, _ := a.group.Do(key, func() (interface{}, error) {
		return a.analyze(ctx, handle, safetyMode)
	})

	if err != nil {
		return nil, err
	}

	return result.(*PromptArtifact), nil
}

func (a *Analyzer) analyze(ctx context.Context, handle string, safetyMode bool) (*PromptArtifact, error) {
	systemPrompt := artDirectorPrompt
	if safetyMode {
		systemPrompt += safetyAddendum
	}

	cacheKey := strings.ToLower(handle)

	if a.cache != nil {
		payload, err := a.cache.Get(ctx, cacheKey)
		if err != nil {
			// cache failure degrades to live analysis, never fails the request
			logger.ErrorErr(err, "search cache read failed", "handle", cacheKey)
		} else if payload != nil {
			return a.analyzeFromCache(ctx, handle, systemPrompt, payload, safetyMode)
		}
	}

	now := a.now()

	resp, err := a.generator.GenerateText(ctx, llm.TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   analyzeUserPrompt(handle),
		Search: &llm.SearchScope{
			Handle: handle,
			From:   now.Add(-searchWindow),
			To:     now,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("account analysis failed: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, cacheKey, resp.Raw, a.cacheTTL); err != nil {
			logger.ErrorErr(err, "search cache write failed", "handle", cacheKey)
		}
	}

	return &PromptArtifact{
		Text:         resp.Text,
		SafetyGuided: safetyMode,
	}, nil
}

// re-synthesizes a prompt from a previously fetched search payload without
// invoking the search tool again
func (a *Analyzer) analyzeFromCache(ctx context.Context, handle, systemPrompt string, payload []byte, safetyMode bool) (*PromptArtifact, error) {
	resp, err := a.generator.GenerateText(ctx, llm.TextRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   cachedAnalyzeUserPrompt(handle, payload),
	})
	if err != nil {
		return nil, fmt.Errorf("account analysis from cache failed: %w", err)
	}

	return &PromptArtifact{
		Text:         resp.Text,
		SafetyGuided: safetyMode,
	}, nil
}

// writes a comedy roast letter for the handle
func (a *Analyzer) Roast(ctx context.Context, handle string) (string, error) {
	now := a.now()

	resp, err := a.reporter.GenerateText(ctx, llm.TextRequest{
		SystemPrompt: roastPrompt,
		UserPrompt:   roastUserPrompt(handle),
		Search: &llm.SearchScope{
			From: now.Add(-searchWindow),
			To:   now,
		},
	})
	if err != nil {
		return "", fmt.Errorf("roast generation failed: %w", err)
	}

	return resp.Text, nil
}

// writes a behavioral-profile report for the handle
func (a *Analyzer) Profile(ctx context.Context, handle string) (string, error) {
	now := a.now()

	resp, err := a.reporter.GenerateText(ctx, llm.TextRequest{
		SystemPrompt: profilePrompt,
		UserPrompt:   profileUserPrompt(handle, now.Format("January 2, 2006")),
		Search: &llm.SearchScope{
			From: now.Add(-searchWindow),
			To:   now,
		},
	})
	if err != nil {
		return "", fmt.Errorf("profile generation failed: %w", err)
	}

	return resp.Text, nil
}
