package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"nutrilife-landing/pkg/navigation"
)

func TestMemoryStoreSaveAndLoad(t *testing.T) {
	store := NewMemoryStore(context.Background(), time.Hour)
	defer store.Close()

	ctx := context.Background()
	_, err := store.Load(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, store.Save(ctx, "s1", NewState().Navigate(navigation.Menu)))
	state, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, navigation.Menu, state.Page)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Load(ctx, "s1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore(context.Background(), time.Hour)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "a", NewState().Navigate(navigation.Login)))
	require.NoError(t, store.Save(ctx, "b", NewState().Navigate(navigation.Contacts)))

	a, err := store.Load(ctx, "a")
	require.NoError(t, err)
	b, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, navigation.Login, a.Page)
	assert.Equal(t, navigation.Contacts, b.Page)
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore(context.Background(), time.Minute)
	defer store.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "s1", NewState()))
	require.NoError(t, store.Save(ctx, "s2", NewState()))

	now = now.Add(2 * time.Minute)
	_, err := store.Load(ctx, "s1")
	assert.True(t, errors.Is(err, ErrNotFound))

	store.cleanup()
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreLoadOrNew(t *testing.T) {
	store := NewMemoryStore(context.Background(), time.Hour)
	defer store.Close()

	state, err := LoadOrNew(context.Background(), store, "fresh")
	require.NoError(t, err)
	assert.Equal(t, navigation.Home, state.Page)
}

func TestMemoryStoreCloseStopsJanitor(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := NewMemoryStore(context.Background(), 10*time.Millisecond)
	require.NoError(t, store.Close())
}

func TestMemoryStoreLoadExtendsExpiry(t *testing.T) {
	store := NewMemoryStore(context.Background(), time.Hour)
	defer store.Close()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "s1", NewState().Navigate(navigation.Menu)))

	for step := 1; step <= 4; step++ {
		now = now.Add(40 * time.Minute)
		state, err := LoadOrNew(ctx, store, "s1")
		require.NoError(t, err)
		assert.Equal(t, navigation.Menu, state.Page, "read %d", step)
	}

	now = now.Add(time.Hour)
	store.cleanup()
	assert.Equal(t, 0, store.Len())
}
