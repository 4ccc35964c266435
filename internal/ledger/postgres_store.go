package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS usage_records (
			identifier TEXT PRIMARY KEY,
			premium_count INTEGER NOT NULL DEFAULT 0,
			window_started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL
		);
	`

	getSQL = `
		SELECT identifier, premium_count, window_started_at, updated_at
		FROM usage_records
		WHERE identifier = $1
	`

	putSQL = `
		INSERT INTO usage_records (identifier, premium_count, window_started_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (identifier) DO UPDATE SET
			premium_count = EXCLUDED.premium_count,
			window_started_at = EXCLUDED.window_started_at,
			updated_at = EXCLUDED.updated_at
	`

	incrementSQL = `
		INSERT INTO usage_records (identifier, premium_count, window_started_at, updated_at)
		VALUES ($1, 1, $2, $2)
		ON CONFLICT (identifier) DO UPDATE SET
			premium_count = usage_records.premium_count + 1,
			updated_at = EXCLUDED.updated_at
	`
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the required table if it doesn't exist
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createTableSQL)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, identifier string) (*UsageRecord, error) {
	var record UsageRecord

	err := s.db.QueryRow(ctx, getSQL, identifier).Scan(
		&record.Identifier,
		&record.PremiumCount,
		&record.WindowStartedAt,
		&record.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (s *PostgresStore) Put(ctx context.Context, record *UsageRecord) error {
	_, err := s.db.Exec(ctx, putSQL,
		record.Identifier,
		record.PremiumCount,
		record.WindowStartedAt,
		record.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) IncrementPremium(ctx context.Context, identifier string, now time.Time) error {
	_, err := s.db.Exec(ctx, incrementSQL, identifier, now)
	return err
}

func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
