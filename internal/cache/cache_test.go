package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexivanou/places-api/internal/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilCacheIsNoop(t *testing.T) {
	ctx := context.Background()

	c, err := Open(ctx, config.CacheConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)

	var dest []string
	hit, err := c.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, c.Set(ctx, "k", []string{"v"}))
	assert.NoError(t, c.Invalidate(ctx))
	assert.NoError(t, c.Close())
	assert.Nil(t, New(nil, 0))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "list:country=France&limit=10&offset=0&tag=", ListKey("France", "", 10, 0))
	assert.NotEqual(t, ListKey("France", "", 10, 0), ListKey("France", "", 10, 10))
	assert.Equal(t, "code:P%2F1", PlaceKey("P/1"))
}

func TestBreakerBypassesUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := New(client, time.Minute)
	ctx := context.Background()
	var dest []string

	for i := 0; i < tripAfter; i++ {
		_, err := c.Get(ctx, "k", &dest)
		require.Error(t, err)
	}

	hit, err := c.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Set(ctx, "k", []string{"v"}))
	assert.Error(t, c.Invalidate(ctx))
}

func newTestCache(t *testing.T, ttl time.Duration) (*QueryCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, ttl), mr
}

type listing struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func TestQueryCache_SetThenGet(t *testing.T) {
	c, mr := newTestCache(t, 30*time.Second)
	ctx := context.Background()

	want := []listing{{Code: "EIF", Name: "Eiffel Tower"}}
	require.NoError(t, c.Set(ctx, ListKey("France", "", 10, 0), want))

	stored, err := mr.Get("places:" + ListKey("France", "", 10, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code":"EIF","name":"Eiffel Tower"}]`, stored)
	assert.Equal(t, 30*time.Second, mr.TTL("places:"+ListKey("France", "", 10, 0)))

	var got []listing
	hit, err := c.Get(ctx, ListKey("France", "", 10, 0), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestQueryCache_Miss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	var got []listing
	hit, err := c.Get(context.Background(), PlaceKey("NOPE"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, got)
}

func TestQueryCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, PlaceKey("EIF"), listing{Code: "EIF"}))
	mr.FastForward(2 * time.Minute)

	var got listing
	hit, err := c.Get(ctx, PlaceKey("EIF"), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestQueryCache_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("places:"+PlaceKey("EIF"), "{not json"))

	var got listing
	hit, err := c.Get(context.Background(), PlaceKey("EIF"), &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestQueryCache_InvalidateKeepsForeignKeys(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	for i := 0; i < 150; i++ {
		require.NoError(t, c.Set(ctx, PlaceKey(fmt.Sprintf("P%03d", i)), listing{Code: "x"}))
	}
	require.NoError(t, c.Set(ctx, ListKey("", "", 100, 0), []listing{}))
	require.NoError(t, mr.Set("session:42", "keep"))
	require.NoError(t, mr.Set("ip:1.2.3.4", "keep"))

	require.NoError(t, c.Invalidate(ctx))

	assert.Equal(t, []string{"ip:1.2.3.4", "session:42"}, mr.Keys())

	var got []listing
	hit, err := c.Get(ctx, ListKey("", "", 100, 0), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestQueryCache_InvalidateEmpty(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set("other", "v"))

	require.NoError(t, c.Invalidate(context.Background()))
	assert.Equal(t, []string{"other"}, mr.Keys())
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Open(context.Background(), config.CacheConfig{RedisAddr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	require.NotNil(t, c)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), PlaceKey("A"), listing{Code: "A"}))
	assert.True(t, mr.Exists("places:code:A"))
}
