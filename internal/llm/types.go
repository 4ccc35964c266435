package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// generates text completions, optionally augmented with live X search
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (*TextResponse, error)
	Model() string
}

// generates a single image from a text prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
	Model() string
}

// restricts the search tool to an account and date range
type SearchScope struct {
	Handle string // restrict to this account's posts when set
	From   time.Time
	To     time.Time
}

type TextRequest struct {
	SystemPrompt string
	UserPrompt   string
	Search       *SearchScope // nil disables the search tool entirely
}

type TextResponse struct {
	Text string
	Raw  []byte // raw completion payload, kept for the search cache
}

var (
	// the backend answered 2xx but produced no usable completion text
	ErrEmptyCompletion = errors.New("no completion text in response")

	// the image backend refused the prompt on content-safety grounds
	ErrSafetyRejected = errors.New("image generation rejected by safety filter")

	// the image backend answered 2xx but no image URL could be extracted
	ErrMalformedResponse = errors.New("no image url in response")
)

// UpstreamError reports a non-success status from a backend so handlers
// can propagate the upstream status code
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}
