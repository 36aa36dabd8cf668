package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/mbtistock/pkg/config"
	"github.com/wonny/mbtistock/pkg/redis"
)

type item struct {
	Ticker string `json:"ticker"`
	Close  int64  `json:"close"`
}

func TestGetOrLoad_MissThenHit(t *testing.T) {
	c := New(NewMemory(), time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (interface{}, error) {
		calls++
		return []item{{Ticker: "005930", Close: 76600}}, nil
	}

	var first []item
	require.NoError(t, c.GetOrLoad(ctx, "stocks", &first, load))
	var second []item
	require.NoError(t, c.GetOrLoad(ctx, "stocks", &second, load))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(76600), second[0].Close)
}

func TestGetOrLoad_LoaderError(t *testing.T) {
	mem := NewMemory()
	c := New(mem, time.Minute)

	var dest []item
	err := c.GetOrLoad(context.Background(), "k", &dest, func(context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError))
	assert.Equal(t, 0, mem.Len())
}

func TestGetOrLoad_SeparateInstancesDoNotShare(t *testing.T) {
	ctx := context.Background()
	a := New(NewMemory(), time.Minute)
	b := New(NewMemory(), time.Minute)

	var v int
	require.NoError(t, a.GetOrLoad(ctx, "k", &v, func(context.Context) (interface{}, error) { return 1, nil }))
	require.NoError(t, b.GetOrLoad(ctx, "k", &v, func(context.Context) (interface{}, error) { return 2, nil }))
	assert.Equal(t, 2, v)
}

func TestMemory_Expiry(t *testing.T) {
	mem := NewMemory()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	mem.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "k", []byte("v"), time.Minute))

	_, found, _ := mem.Get(ctx, "k")
	assert.True(t, found)

	now = now.Add(time.Minute)
	_, found, _ = mem.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 0, mem.Len())
}

func TestInvalidate(t *testing.T) {
	c := New(NewMemory(), time.Minute)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (interface{}, error) { calls++; return calls, nil }

	var v int
	require.NoError(t, c.GetOrLoad(ctx, "k", &v, load))
	require.NoError(t, c.Invalidate(ctx, "k"))
	require.NoError(t, c.GetOrLoad(ctx, "k", &v, load))

	assert.Equal(t, 2, v)
}

func TestDisabledRedisBackendAlwaysLoads(t *testing.T) {
	client, err := redis.New(context.Background(), &config.Config{})
	require.NoError(t, err)

	c := New(redis.NewCache(client, "test"), time.Minute)

	calls := 0
	load := func(context.Context) (interface{}, error) { calls++; return "x", nil }

	var v string
	require.NoError(t, c.GetOrLoad(context.Background(), "k", &v, load))
	require.NoError(t, c.GetOrLoad(context.Background(), "k", &v, load))
	assert.Equal(t, 2, calls)
	assert.Equal(t, "x", v)
}

type failingBackend struct {
	*Memory
	deleted []string
}

func (b *failingBackend) Delete(ctx context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	if key == "bad" {
		return assert.AnError
	}
	return b.Memory.Delete(ctx, key)
}

func TestInvalidate_AllKeysAttempted(t *testing.T) {
	backend := &failingBackend{Memory: NewMemory()}
	c := New(backend, time.Minute)

	err := c.Invalidate(context.Background(), "a", "bad", "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError))
	assert.Equal(t, []string{"a", "bad", "b"}, backend.deleted)
}

func TestFinancialKeys(t *testing.T) {
	keys := FinancialKeys([]string{"INTJ", "ENFP"}, 2)

	assert.Equal(t, []string{
		StocksKey,
		"portfolio:INTJ:1", "portfolio:INTJ:2",
		"portfolio:ENFP:1", "portfolio:ENFP:2",
	}, keys)
	assert.Equal(t, "portfolio:ISTJ:5", PortfolioKey("ISTJ", 5))
}
