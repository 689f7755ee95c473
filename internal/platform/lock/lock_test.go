package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_Exclusive(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()
	key := Key("recalculate", "c1")

	first, err := l.Obtain(ctx, key, time.Minute)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, key, time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)

	other, err := l.Obtain(ctx, Key("recalculate", "c2"), time.Minute)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, first.Release(ctx))
	again, err := l.Obtain(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestLocalLocker_Expiry(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	stale, err := l.Obtain(ctx, "k", time.Millisecond)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	fresh, err := l.Obtain(ctx, "k", time.Minute)
	require.NoError(t, err)

	// releasing the expired lock must not free the new holder's lock
	require.NoError(t, stale.Release(ctx))
	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)
	require.NoError(t, fresh.Release(ctx))
}
