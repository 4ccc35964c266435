package ledger

import (
	"context"
	"fmt"
	"time"
)

// Ledger decides whether a request qualifies for the premium image tier and
// records premium consumption against a rolling window.
//
// The resolve-then-record sequence is intentionally not one transaction:
// two concurrent requests from the same identifier can both resolve premium
// before either records usage, overrunning the quota by at most N-1 for N
// concurrent requests. The quota guards a cost preference, not a billable
// resource, so this relaxed behavior is acceptable.
type Ledger struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

func New(store Store, limit int, window time.Duration) *Ledger {
	return &Ledger{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// overrides the clock, for tests
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// looks up (creating or resetting as needed) the usage record for the
// identifier and returns the tier the request qualifies for
func (l *Ledger) ResolveTier(ctx context.Context, identifier string) (Tier, *UsageRecord, error) {
	record, err := l.store.Get(ctx, identifier)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	now := l.now()

	if record == nil {
		record = &UsageRecord{
			Identifier:      identifier,
			PremiumCount:    0,
			WindowStartedAt: now,
			UpdatedAt:       now,
		}

		if err := l.store.Put(ctx, record); err != nil {
			return "", nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
		}
	} else if now.Sub(record.WindowStartedAt) > l.window {
		// rolling window elapsed: reset the counter and restart the window
		record.PremiumCount = 0
		record.WindowStartedAt = now
		record.UpdatedAt = now

		if err := l.store.Put(ctx, record); err != nil {
			return "", nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
		}
	}

	if record.PremiumCount < l.limit {
		return TierPremium, record, nil
	}

	return TierStandard, record, nil
}

// records one premium-tier image against the identifier; called exactly once
// per successful premium generation, after the image exists
func (l *Ledger) RecordPremiumUsage(ctx context.Context, identifier string) error {
	if err := l.store.IncrementPremium(ctx, identifier, l.now()); err != nil {
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	return nil
}
