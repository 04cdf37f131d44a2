package cache

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/piwi3910/LoadPlanner/internal/engine"
	"github.com/piwi3910/LoadPlanner/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, ttl), s
}

func testInputs(t *testing.T) ([]model.CargoItem, []model.ContainerSpec) {
	t.Helper()
	items := []model.CargoItem{
		{ID: "a", Name: "Box A", Length: 100, Width: 80, Height: 60, Weight: 50, Quantity: 10},
		{ID: "b", Name: "Pallet B", Length: 120, Width: 100, Height: 140, Weight: 200, Quantity: 5},
	}
	containers, err := model.LookupContainers([]string{"20gp", "40hq"})
	require.NoError(t, err)
	return items, containers
}

func TestKey_Deterministic(t *testing.T) {
	items, containers := testInputs(t)

	k1, err := Key(items, containers)
	require.NoError(t, err)
	k2, err := Key(items, containers)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)
}

func TestKey_SensitiveToInputs(t *testing.T) {
	items, containers := testInputs(t)
	base, err := Key(items, containers)
	require.NoError(t, err)

	changed := append([]model.CargoItem(nil), items...)
	changed[0].Quantity = 11
	k, err := Key(changed, containers)
	require.NoError(t, err)
	assert.NotEqual(t, base, k, "quantity change")

	reordered := []model.ContainerSpec{containers[1], containers[0]}
	k, err = Key(items, reordered)
	require.NoError(t, err)
	assert.NotEqual(t, base, k, "selection order is part of the key")
}

func TestKey_NilEqualsEmpty(t *testing.T) {
	k1, err := Key(nil, nil)
	require.NoError(t, err)
	k2, err := Key([]model.CargoItem{}, []model.ContainerSpec{})
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
}

func TestRedisCache_PutGet(t *testing.T) {
	c, s := newTestCache(t, time.Hour)
	ctx := context.Background()
	items, containers := testInputs(t)
	result := engine.New(nil).Optimize(items, containers)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "empty cache")

	require.NoError(t, c.Put(ctx, "k", result))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, result, got)

	assert.True(t, s.Exists("loadplan:k"))
	assert.Equal(t, time.Hour, s.TTL("loadplan:k"))
}

func TestRedisCache_Expires(t *testing.T) {
	c, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "k", model.OptimizationResult{ContainerCount: 1}))
	s.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_DefaultTTL(t *testing.T) {
	c, s := newTestCache(t, 0)

	require.NoError(t, c.Put(context.Background(), "k", model.OptimizationResult{}))
	assert.Equal(t, DefaultTTL, s.TTL("loadplan:k"))
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	c, s := newTestCache(t, time.Hour)
	require.NoError(t, s.Set("loadplan:k", "{not json"))

	_, ok, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestOptimize_MissThenHit(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()
	opt := engine.New(nil)
	items, containers := testInputs(t)

	first, hit, err := Optimize(ctx, c, opt, nil, items, containers)
	require.NoError(t, err)
	assert.False(t, hit)

	second, hit, err := Optimize(ctx, c, opt, nil, items, containers)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, opt.Optimize(items, containers), second)
}

func TestOptimize_RedisDownStillReturnsResult(t *testing.T) {
	c, s := newTestCache(t, time.Hour)
	s.SetError("ERR cache unavailable")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	opt := engine.New(nil)
	items, containers := testInputs(t)

	result, hit, err := Optimize(context.Background(), c, opt, logger, items, containers)

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, opt.Optimize(items, containers), result)
	assert.Contains(t, buf.String(), "result cache lookup failed")
	assert.Contains(t, buf.String(), "result cache store failed")
}
