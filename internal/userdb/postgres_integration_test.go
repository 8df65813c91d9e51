//go:build integration

package userdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sessiongate/pkg/platform/sentinel"
	"sessiongate/pkg/testutil/containers"
)

func TestPostgresStore_Integration(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	require.NoError(t, Migrate(ctx, pg.DB))

	store := NewPostgres(pg.DB)

	t.Run("create and find", func(t *testing.T) {
		user := &User{ExternalID: "ext-pg-1", BillingCustomerID: "cus_pg_1", NotifyProductUpdates: true, NotifyProductOffers: true}
		require.NoError(t, store.Create(ctx, user))
		assert.NotEmpty(t, user.ID)

		found, err := store.FindByExternalID(ctx, "ext-pg-1")
		require.NoError(t, err)
		assert.Equal(t, "cus_pg_1", found.BillingCustomerID)
		assert.Nil(t, found.RefreshToken)
	})

	t.Run("duplicate external id conflicts", func(t *testing.T) {
		err := store.Create(ctx, &User{ExternalID: "ext-pg-1"})
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("refresh token lifecycle", func(t *testing.T) {
		rt := "rt-pg"
		require.NoError(t, store.UpdateRefreshToken(ctx, "ext-pg-1", &rt))

		got, err := store.RefreshToken(ctx, "ext-pg-1")
		require.NoError(t, err)
		assert.Equal(t, "rt-pg", got)

		require.NoError(t, store.UpdateRefreshToken(ctx, "ext-pg-1", nil))
		_, err = store.RefreshToken(ctx, "ext-pg-1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("billing customer id", func(t *testing.T) {
		id, err := store.BillingCustomerID(ctx, "ext-pg-1")
		require.NoError(t, err)
		assert.Equal(t, "cus_pg_1", id)
	})

	t.Run("find by billing customer id", func(t *testing.T) {
		found, err := store.FindByBillingCustomerID(ctx, "cus_pg_1")
		require.NoError(t, err)
		assert.Equal(t, "ext-pg-1", found.ExternalID)

		_, err = store.FindByBillingCustomerID(ctx, "cus_unknown")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("notification prefs", func(t *testing.T) {
		require.NoError(t, store.UpdateNotificationPrefs(ctx, "ext-pg-1", false, true))
		found, err := store.FindByExternalID(ctx, "ext-pg-1")
		require.NoError(t, err)
		assert.False(t, found.NotifyProductUpdates)
		assert.True(t, found.NotifyProductOffers)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "ext-pg-1"))
		_, err := store.FindByExternalID(ctx, "ext-pg-1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		assert.ErrorIs(t, store.Delete(ctx, "ext-pg-1"), sentinel.ErrNotFound)
	})
}
