package userdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"sessiongate/pkg/platform/sentinel"
)

// PostgresStore persists user records in PostgreSQL.
type PostgresStore struct {
	db    *sql.DB
	clock func() time.Time // injected clock for testability (defaults to time.Now)
}

// PostgresOption configures a PostgresStore instance.
type PostgresOption func(*PostgresStore)

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) PostgresOption {
	return func(s *PostgresStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{
		db:    db,
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Migrate creates the users table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			external_id TEXT NOT NULL UNIQUE,
			billing_customer_id TEXT NOT NULL DEFAULT '',
			refresh_token TEXT,
			notify_product_updates BOOLEAN NOT NULL DEFAULT TRUE,
			notify_product_offers BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, user *User) error {
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.clock()
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (external_id, billing_customer_id, refresh_token, notify_product_updates, notify_product_offers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, user.ExternalID, user.BillingCustomerID, user.RefreshToken,
		user.NotifyProductUpdates, user.NotifyProductOffers, createdAt).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("user %s: %w", user.ExternalID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	user.CreatedAt = createdAt
	return nil
}

func (s *PostgresStore) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	var (
		user         User
		refreshToken sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, billing_customer_id, refresh_token, notify_product_updates, notify_product_offers, created_at
		FROM users WHERE external_id = $1
	`, externalID).Scan(&user.ID, &user.ExternalID, &user.BillingCustomerID,
		&refreshToken, &user.NotifyProductUpdates, &user.NotifyProductOffers, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}
	return &user, nil
}

func (s *PostgresStore) FindByBillingCustomerID(ctx context.Context, customerID string) (*User, error) {
	if customerID == "" {
		return nil, fmt.Errorf("billing customer %s: %w", customerID, sentinel.ErrNotFound)
	}
	var (
		user         User
		refreshToken sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, external_id, billing_customer_id, refresh_token, notify_product_updates, notify_product_offers, created_at
		FROM users WHERE billing_customer_id = $1
	`, customerID).Scan(&user.ID, &user.ExternalID, &user.BillingCustomerID,
		&refreshToken, &user.NotifyProductUpdates, &user.NotifyProductOffers, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("billing customer %s: %w", customerID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find user by billing customer: %w", err)
	}
	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}
	return &user, nil
}

func (s *PostgresStore) Delete(ctx context.Context, externalID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE external_id = $1`, externalID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) UpdateRefreshToken(ctx context.Context, externalID string, token *string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET refresh_token = $2 WHERE external_id = $1
	`, externalID, token)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) RefreshToken(ctx context.Context, externalID string) (string, error) {
	var token sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT refresh_token FROM users WHERE external_id = $1
	`, externalID).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("load refresh token: %w", err)
	}
	if !token.Valid || token.String == "" {
		return "", fmt.Errorf("refresh token for %s: %w", externalID, sentinel.ErrNotFound)
	}
	return token.String, nil
}

func (s *PostgresStore) BillingCustomerID(ctx context.Context, externalID string) (string, error) {
	var customerID string
	err := s.db.QueryRowContext(ctx, `
		SELECT billing_customer_id FROM users WHERE external_id = $1
	`, externalID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("load billing customer: %w", err)
	}
	if customerID == "" {
		return "", fmt.Errorf("billing customer for %s: %w", externalID, sentinel.ErrNotFound)
	}
	return customerID, nil
}

func (s *PostgresStore) UpdateNotificationPrefs(ctx context.Context, externalID string, productUpdates, productOffers bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET notify_product_updates = $2, notify_product_offers = $3 WHERE external_id = $1
	`, externalID, productUpdates, productOffers)
	if err != nil {
		return fmt.Errorf("update notification prefs: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	return nil
}
