package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/leave-alteration-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	var dest []string
	require.ErrorIs(t, repo.Get(ctx, "alterations:statuses:1", &dest), appErrors.ErrCacheMiss)
	require.NoError(t, repo.Set(ctx, "alterations:statuses:1", []string{"PENDING"}, time.Minute))
	require.NoError(t, repo.Delete(ctx, "alterations:statuses:1"))
	require.NoError(t, repo.Publish(ctx, "notifications:E2", map[string]string{"id": "n-1"}))
	require.NoError(t, repo.Close())

	var nilRepo *CacheRepository
	require.ErrorIs(t, nilRepo.Get(ctx, "k", &dest), appErrors.ErrCacheMiss)
}

func TestCacheRepositoryWrapsRedisErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	repo := NewCacheRepository(client, nil)
	defer repo.Close() //nolint:errcheck
	ctx := context.Background()

	var dest []string
	err := repo.Get(ctx, "alterations:statuses:1", &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.Contains(t, err.Error(), "redis get alterations:statuses:1")

	err = repo.Set(ctx, "k", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal cache value")

	err = repo.Publish(ctx, "notifications:E2", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis publish notifications:E2")
}
