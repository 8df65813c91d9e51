// Package userdb is the gateway to the user record store. Records are keyed
// by the identity provider's stable user id (ExternalID); the internal row
// id exists only for the store's own bookkeeping.
package userdb

import (
	"context"
	"time"
)

// User is one user record. RefreshToken holds at most one value per user:
// logins and refreshes overwrite it, logout clears it to null.
type User struct {
	ID                   string
	ExternalID           string
	BillingCustomerID    string
	RefreshToken         *string
	NotifyProductUpdates bool
	NotifyProductOffers  bool
	CreatedAt            time.Time
}

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the record does not exist
// - Return sentinel.ErrConflict (wrapped) when a record already exists
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures
type Store interface {
	Create(ctx context.Context, user *User) error
	FindByExternalID(ctx context.Context, externalID string) (*User, error)

	// FindByBillingCustomerID resolves the record holding the given billing
	// customer id, for webhook events that only know the customer.
	FindByBillingCustomerID(ctx context.Context, customerID string) (*User, error)

	Delete(ctx context.Context, externalID string) error

	// UpdateRefreshToken overwrites the stored refresh token. A nil token
	// clears the slot. There is deliberately no read-modify-write guard:
	// concurrent refreshes race with last-writer-wins semantics.
	UpdateRefreshToken(ctx context.Context, externalID string, token *string) error

	// RefreshToken returns the stored refresh token, or ErrNotFound when the
	// user is unknown or the slot is cleared.
	RefreshToken(ctx context.Context, externalID string) (string, error)

	// BillingCustomerID returns the billing provider customer id stored with
	// the record, or ErrNotFound.
	BillingCustomerID(ctx context.Context, externalID string) (string, error)

	UpdateNotificationPrefs(ctx context.Context, externalID string, productUpdates, productOffers bool) error
}
