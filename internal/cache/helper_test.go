package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPost struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissFetchesAndCaches(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetched := 0
	var got cachedPost
	err := Aside(ctx, PostKey(1), &got, PostTTL, func() error {
		fetched++
		got = cachedPost{ID: 1, Title: "hello"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "hello", got.Title)
	assert.True(t, mr.Exists(PostKey(1)))
}

func TestAside_HitSkipsFetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(2), cachedPost{ID: 2, Title: "cached"}, PostTTL))

	fetched := 0
	var got cachedPost
	err := Aside(ctx, PostKey(2), &got, PostTTL, func() error {
		fetched++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 0, fetched)
	assert.Equal(t, "cached", got.Title)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	wantErr := errors.New("db down")
	var got cachedPost
	err := Aside(ctx, PostKey(3), &got, PostTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, mr.Exists(PostKey(3)))
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetched := 0
	var got cachedPost
	err := Aside(ctx, PostKey(4), &got, PostTTL, func() error {
		fetched++
		got = cachedPost{ID: 4, Title: "direct"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)
	assert.Equal(t, "direct", got.Title)
}

func TestInvalidatePost(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(5), cachedPost{ID: 5}, PostTTL))
	require.True(t, mr.Exists(PostKey(5)))

	InvalidatePost(ctx, 5)
	assert.False(t, mr.Exists(PostKey(5)))
}

func TestGetJSON_MissingKey(t *testing.T) {
	setupMiniredis(t)

	var got cachedPost
	found, err := GetJSON(context.Background(), "post:404", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
