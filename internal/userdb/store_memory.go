package userdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"sessiongate/pkg/platform/sentinel"
)

// InMemoryStore stores user records in memory for tests/dev.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by ExternalID
}

// NewMemory constructs an empty in-memory user store.
func NewMemory() *InMemoryStore {
	return &InMemoryStore{users: make(map[string]*User)}
}

func (s *InMemoryStore) Create(_ context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ExternalID]; ok {
		return fmt.Errorf("user %s: %w", user.ExternalID, sentinel.ErrConflict)
	}
	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.users[user.ExternalID] = &stored
	user.ID = stored.ID
	return nil
}

func (s *InMemoryStore) FindByExternalID(_ context.Context, externalID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[externalID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	copied := *user
	if user.RefreshToken != nil {
		tok := *user.RefreshToken
		copied.RefreshToken = &tok
	}
	return &copied, nil
}

func (s *InMemoryStore) FindByBillingCustomerID(_ context.Context, customerID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if customerID != "" {
		for _, user := range s.users {
			if user.BillingCustomerID == customerID {
				copied := *user
				if user.RefreshToken != nil {
					tok := *user.RefreshToken
					copied.RefreshToken = &tok
				}
				return &copied, nil
			}
		}
	}
	return nil, fmt.Errorf("billing customer %s: %w", customerID, sentinel.ErrNotFound)
}

func (s *InMemoryStore) Delete(_ context.Context, externalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[externalID]; !ok {
		return fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	delete(s.users, externalID)
	return nil
}

func (s *InMemoryStore) UpdateRefreshToken(_ context.Context, externalID string, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[externalID]
	if !ok {
		return fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	if token == nil {
		user.RefreshToken = nil
		return nil
	}
	tok := *token
	user.RefreshToken = &tok
	return nil
}

func (s *InMemoryStore) RefreshToken(_ context.Context, externalID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[externalID]
	if !ok || user.RefreshToken == nil {
		return "", fmt.Errorf("refresh token for %s: %w", externalID, sentinel.ErrNotFound)
	}
	return *user.RefreshToken, nil
}

func (s *InMemoryStore) BillingCustomerID(_ context.Context, externalID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[externalID]
	if !ok || user.BillingCustomerID == "" {
		return "", fmt.Errorf("billing customer for %s: %w", externalID, sentinel.ErrNotFound)
	}
	return user.BillingCustomerID, nil
}

func (s *InMemoryStore) UpdateNotificationPrefs(_ context.Context, externalID string, productUpdates, productOffers bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[externalID]
	if !ok {
		return fmt.Errorf("user %s: %w", externalID, sentinel.ErrNotFound)
	}
	user.NotifyProductUpdates = productUpdates
	user.NotifyProductOffers = productOffers
	return nil
}
