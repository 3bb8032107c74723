package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilClientBehavesAsEmptyCache(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestClient_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestUnreachableRedis_ReadsMissWritesFail(t *testing.T) {
	// nothing listens on port 1
	c := New("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.Error(t, c.Delete(ctx, "k"))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Error(t, c.Ping(ctx))
}
