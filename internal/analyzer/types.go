package analyzer

import (
	"context"
	"time"
)

// image prompt produced from an account's content; immutable once produced
type PromptArtifact struct {
	Text         string
	SafetyGuided bool // generated under explicit content-safety constraints
}

// cache for raw search payloads, keyed by lowercased handle
type CacheStore interface {
	// returns nil without error when absent or expired
	Get(ctx context.Context, handle string) ([]byte, error)

	Set(ctx context.Context, handle string, payload []byte, ttl time.Duration) error

	Close() error
}
