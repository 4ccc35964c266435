package synthesizer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"codeberg.org/handleart/server/internal/analyzer"
	"codeberg.org/handleart/server/internal/ledger"
	"codeberg.org/handleart/server/internal/llm"
)

// Mock image generator with scripted results per call
type mockImageGen struct {
	model   string
	results []mockImageResult
	calls   int
	prompts []string
}

type mockImageResult struct {
	url string
	err error
}

func (m *mockImageGen) GenerateImage(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)

	result := m.results[m.calls]
	m.calls++

	return result.url, result.err
}

func (m *mockImageGen) Model() string { return m.model }

// Mock reanalyzer recording every call
type mockReanalyzer struct {
	artifact *analyzer.PromptArtifact
	err      error
	calls    []bool // safetyMode per call
}

func (m *mockReanalyzer) Analyze(_ context.Context, _ string, safetyMode bool) (*analyzer.PromptArtifact, error) {
	m.calls = append(m.calls, safetyMode)
	return m.artifact, m.err
}

func newTestLedger(t *testing.T, identifier string, used int) *ledger.Ledger {
	t.Helper()

	l := ledger.New(ledger.NewMemoryStore(), 2, 24*time.Hour)

	for i := 0; i < used; i++ {
		if err := l.RecordPremiumUsage(context.Background(), identifier); err != nil {
			t.Fatalf("failed to seed ledger: %v", err)
		}
	}

	return l
}

func premiumCount(t *testing.T, l *ledger.Ledger, identifier string) int {
	t.Helper()

	_, record, err := l.ResolveTier(context.Background(), identifier)
	if err != nil {
		t.Fatalf("failed to read ledger: %v", err)
	}

	return record.PremiumCount
}

func TestSynthesize_PremiumSuccess(t *testing.T) {
	premium := &mockImageGen{
		model:   "test-model",
		results: []mockImageResult{{url: "https://img/premium.png"}},
	}
	standard := &mockImageGen{model: "test-model-free"}
	l := newTestLedger(t, "visitor-1", 0)

	s := New(premium, standard, l, &mockReanalyzer{}, Config{})

	result, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.URL != "https://img/premium.png" {
		t.Errorf("url = %s, want premium url", result.URL)
	}

	if result.Tier != ledger.TierPremium {
		t.Errorf("tier = %s, want premium", result.Tier)
	}

	if result.Regenerated {
		t.Error("regenerated = true, want false")
	}

	if standard.calls != 0 {
		t.Errorf("standard backend called %d times, want 0", standard.calls)
	}

	if got := premiumCount(t, l, "visitor-1"); got != 1 {
		t.Errorf("premium count = %d, want exactly 1", got)
	}
}

func TestSynthesize_StandardAfterQuotaExhausted(t *testing.T) {
	premium := &mockImageGen{model: "test-model"}
	standard := &mockImageGen{
		model:   "test-model-free",
		results: []mockImageResult{{url: "https://img/standard.png"}},
	}
	l := newTestLedger(t, "visitor-1", 2)

	s := New(premium, standard, l, &mockReanalyzer{}, Config{})

	result, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Tier != ledger.TierStandard {
		t.Errorf("tier = %s, want standard", result.Tier)
	}

	if premium.calls != 0 {
		t.Errorf("premium backend called %d times, want 0", premium.calls)
	}

	// standard generation never consumes premium quota
	if got := premiumCount(t, l, "visitor-1"); got != 2 {
		t.Errorf("premium count = %d, want unchanged 2", got)
	}
}

func TestSynthesize_SafetyRetrySucceeds(t *testing.T) {
	premium := &mockImageGen{
		model: "test-model",
		results: []mockImageResult{
			{err: llm.ErrSafetyRejected},
			{url: "https://img/retry.png"},
		},
	}
	reanalyzer := &mockReanalyzer{
		artifact: &analyzer.PromptArtifact{Text: "A symbolic cat.", SafetyGuided: true},
	}
	l := newTestLedger(t, "visitor-1", 0)

	s := New(premium, &mockImageGen{}, l, reanalyzer, Config{})

	result, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Regenerated {
		t.Error("regenerated = false, want true")
	}

	if result.URL != "https://img/retry.png" {
		t.Errorf("url = %s, want retry url", result.URL)
	}

	if len(reanalyzer.calls) != 1 || !reanalyzer.calls[0] {
		t.Errorf("reanalyzer calls = %v, want exactly one call with safety mode on", reanalyzer.calls)
	}

	if premium.calls != 2 {
		t.Errorf("premium backend called %d times, want 2", premium.calls)
	}

	if premium.prompts[1] != "A symbolic cat." {
		t.Errorf("retry used prompt %q, want the sanitized prompt", premium.prompts[1])
	}

	// the whole request is one successful premium generation
	if got := premiumCount(t, l, "visitor-1"); got != 1 {
		t.Errorf("premium count = %d, want exactly 1", got)
	}
}

func TestSynthesize_SafetyRetryExhausted(t *testing.T) {
	premium := &mockImageGen{
		model: "test-model",
		results: []mockImageResult{
			{err: llm.ErrSafetyRejected},
			{err: llm.ErrSafetyRejected},
		},
	}
	reanalyzer := &mockReanalyzer{
		artifact: &analyzer.PromptArtifact{Text: "A symbolic cat.", SafetyGuided: true},
	}
	l := newTestLedger(t, "visitor-1", 0)

	s := New(premium, &mockImageGen{}, l, reanalyzer, Config{})

	_, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if !errors.Is(err, ErrSafetyBlocked) {
		t.Fatalf("error = %v, want ErrSafetyBlocked", err)
	}

	// exactly two attempts, never a third
	if premium.calls != 2 {
		t.Errorf("premium backend called %d times, want 2", premium.calls)
	}

	if len(reanalyzer.calls) != 1 {
		t.Errorf("reanalyzer called %d times, want 1", len(reanalyzer.calls))
	}

	if got := premiumCount(t, l, "visitor-1"); got != 0 {
		t.Errorf("premium count = %d, want 0 after blocked request", got)
	}
}

func TestSynthesize_NonSafetyFailureNotRetried(t *testing.T) {
	upstreamErr := &llm.UpstreamError{Provider: "OpenRouter", StatusCode: 500, Body: "boom"}
	premium := &mockImageGen{
		model:   "test-model",
		results: []mockImageResult{{err: upstreamErr}},
	}
	reanalyzer := &mockReanalyzer{}
	l := newTestLedger(t, "visitor-1", 0)

	s := New(premium, &mockImageGen{}, l, reanalyzer, Config{})

	_, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})

	var ue *llm.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("error = %v, want wrapped UpstreamError", err)
	}

	if premium.calls != 1 {
		t.Errorf("premium backend called %d times, want 1", premium.calls)
	}

	if len(reanalyzer.calls) != 0 {
		t.Errorf("reanalyzer called %d times, want 0", len(reanalyzer.calls))
	}

	// failed attempts never consume quota
	if got := premiumCount(t, l, "visitor-1"); got != 0 {
		t.Errorf("premium count = %d, want 0 after failed attempt", got)
	}
}

func TestSynthesize_StandardHasNoSafetyRetry(t *testing.T) {
	standard := &mockImageGen{
		model:   "test-model-free",
		results: []mockImageResult{{err: llm.ErrSafetyRejected}},
	}
	reanalyzer := &mockReanalyzer{}
	l := newTestLedger(t, "visitor-1", 2)

	s := New(&mockImageGen{}, standard, l, reanalyzer, Config{})

	_, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if err == nil {
		t.Fatal("expected error from rejected standard generation")
	}

	if standard.calls != 1 {
		t.Errorf("standard backend called %d times, want 1", standard.calls)
	}

	if len(reanalyzer.calls) != 0 {
		t.Errorf("reanalyzer called %d times, want 0 on the standard tier", len(reanalyzer.calls))
	}
}

func TestSynthesize_StorageFailureFailsClosed(t *testing.T) {
	premium := &mockImageGen{
		model:   "test-model",
		results: []mockImageResult{{url: "https://img/premium.png"}},
	}

	l := ledger.New(&failingLedgerStore{}, 2, 24*time.Hour)
	s := New(premium, &mockImageGen{}, l, &mockReanalyzer{}, Config{})

	_, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if !errors.Is(err, ledger.ErrStorageUnavailable) {
		t.Fatalf("error = %v, want ErrStorageUnavailable", err)
	}

	if premium.calls != 0 {
		t.Errorf("premium backend called %d times, want 0 when tier resolution fails", premium.calls)
	}
}

type failingLedgerStore struct{}

func (s *failingLedgerStore) Get(_ context.Context, _ string) (*ledger.UsageRecord, error) {
	return nil, errors.New("connection refused")
}

func (s *failingLedgerStore) Put(_ context.Context, _ *ledger.UsageRecord) error {
	return errors.New("connection refused")
}

func (s *failingLedgerStore) IncrementPremium(_ context.Context, _ string, _ time.Time) error {
	return errors.New("connection refused")
}

func (s *failingLedgerStore) Close() error { return nil }

func TestExpandPrompt_VerboseFamilyWrapped(t *testing.T) {
	premium := &mockImageGen{
		model:   "google/gemini-2.5-flash-image",
		results: []mockImageResult{{url: "https://img/premium.png"}},
	}
	l := newTestLedger(t, "visitor-1", 0)

	s := New(premium, &mockImageGen{}, l, &mockReanalyzer{}, Config{
		VerboseModelFamilies: []string{"gemini"},
	})

	_, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(premium.prompts[0], "A cat.") {
		t.Errorf("wrapped prompt lost the original text: %q", premium.prompts[0])
	}

	if !strings.Contains(premium.prompts[0], "halftone dot shading") {
		t.Errorf("prompt not wrapped with style direction: %q", premium.prompts[0])
	}
}

func TestExpandPrompt_OtherFamiliesUntouched(t *testing.T) {
	premium := &mockImageGen{
		model:   "stability/sdxl",
		results: []mockImageResult{{url: "https://img/premium.png"}},
	}
	l := newTestLedger(t, "visitor-1", 0)

	s := New(premium, &mockImageGen{}, l, &mockReanalyzer{}, Config{
		VerboseModelFamilies: []string{"gemini"},
	})

	_, err := s.Synthesize(context.Background(), Request{
		Prompt:     "A cat.",
		Handle:     "midjourney",
		Identifier: "visitor-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if premium.prompts[0] != "A cat." {
		t.Errorf("prompt = %q, want it passed through verbatim", premium.prompts[0])
	}
}
