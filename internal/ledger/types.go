package ledger

import (
	"context"
	"errors"
	"time"
)

// image-generation tier for one request
type Tier string

const (
	TierPremium  Tier = "premium"
	TierStandard Tier = "standard"
)

// the ledger store could not be reached; tier decisions fail closed
var ErrStorageUnavailable = errors.New("usage ledger storage unavailable")

// per-identifier premium usage inside the current rolling window
type UsageRecord struct {
	Identifier      string    `json:"identifier"`
	PremiumCount    int       `json:"premium_count"`
	WindowStartedAt time.Time `json:"window_started_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// persistence backend for usage records
type Store interface {
	// returns nil without error when no record exists
	Get(ctx context.Context, identifier string) (*UsageRecord, error)

	// upserts the full record
	Put(ctx context.Context, record *UsageRecord) error

	// atomically adds one premium use and refreshes updated_at
	IncrementPremium(ctx context.Context, identifier string, now time.Time) error

	Close() error
}
