package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, 10*time.Minute), mr
}

func TestIssueAndVerify(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	code, err := store.Issue(ctx, "verify-email", "user@example.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	ok, err := store.Verify(ctx, "verify-email", "user@example.com", code)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyConsumesCode(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	code, err := store.Issue(ctx, "verify-email", "user@example.com")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "verify-email", "user@example.com", code)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Verify(ctx, "verify-email", "user@example.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyWrongCode(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.Issue(ctx, "verify-email", "user@example.com")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "verify-email", "user@example.com", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyExpiredCode(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	code, err := store.Issue(ctx, "verify-email", "user@example.com")
	require.NoError(t, err)

	mr.FastForward(11 * time.Minute)

	ok, err := store.Verify(ctx, "verify-email", "user@example.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIssueReplacesPreviousCode(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first, err := store.Issue(ctx, "verify-email", "user@example.com")
	require.NoError(t, err)
	second, err := store.Issue(ctx, "verify-email", "user@example.com")
	require.NoError(t, err)

	if first != second {
		ok, err := store.Verify(ctx, "verify-email", "user@example.com", first)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	ok, err := store.Verify(ctx, "verify-email", "user@example.com", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCodesAreScopedBySubject(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	code, err := store.Issue(ctx, "verify-email", "a@example.com")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "verify-email", "b@example.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}
