package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "teknoloji", Count: 3}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, ListingKey("teknoloji"), &first, ListingTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "teknoloji", first.Name)

	// Second call is served from Redis without invoking fetch.
	var second payload
	require.NoError(t, Aside(ctx, ListingKey("teknoloji"), &second, ListingTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_FetchErrorNotCached(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var dest payload
	wantErr := errors.New("db down")
	err := Aside(ctx, ArticleKey(1), &dest, ArticleTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, ArticleKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	calls := 0
	var dest payload
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(ctx, ArticleKey(2), &dest, ArticleTTL, func() error {
			calls++
			return nil
		}))
	}
	assert.Equal(t, 2, calls)
}

func TestInvalidateListings(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ListingKey("all"), payload{}, time.Minute))
	require.NoError(t, SetJSON(ctx, ListingKey("teknoloji"), payload{}, time.Minute))
	require.NoError(t, SetJSON(ctx, ListingKey("kultur"), payload{}, time.Minute))

	InvalidateListings(ctx, "teknoloji")

	assert.False(t, mr.Exists(ListingKey("all")))
	assert.False(t, mr.Exists(ListingKey("teknoloji")))
	assert.True(t, mr.Exists(ListingKey("kultur")))
}
