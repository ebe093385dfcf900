package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient connects to TEST_REDIS_URL; the test is skipped without it.
func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return client
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(newTestClient(t))

	id := uuid.NewString()
	sess := &domain.Session{
		ID:        id,
		UserID:    "user-1",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().Add(time.Minute).UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.True(t, sess.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRedisSessionStoreRejectsExpired(t *testing.T) {
	store := NewSessionStore(nil)
	err := store.Save(context.Background(), &domain.Session{ID: "x", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
