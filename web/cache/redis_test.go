package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncrWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := Connect(config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	for want := int64(1); want <= 3; want++ {
		n, err := store.IncrWindow(ctx, "login:10.0.0.1", time.Hour)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err := store.IncrWindow(ctx, "login:10.0.0.2", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	keys := mr.Keys()
	require.Len(t, keys, 2)
	assert.True(t, mr.TTL(keys[0]) > 0)
}

func TestConnectFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
