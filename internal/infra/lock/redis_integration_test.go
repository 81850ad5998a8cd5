package lock

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

func TestRedisLocker_Integration(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("BARBER_TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("BARBER_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, RedisOptions{
		KeyPrefix: "barber-scheduler-test",
		TTL:       5 * time.Second,
		Wait:      50 * time.Millisecond,
		Backoff:   5 * time.Millisecond,
	}, nil)

	barber := objectid.New()
	key := "barber-scheduler-test:lock:barber:" + barber.Hex()

	err := l.WithBarberLock(context.Background(), barber, func(ctx context.Context) error {
		exists, err := client.Exists(ctx, key).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)

		// Повторный захват тем же барбером не проходит, пока блокировка удерживается
		nested := l.WithBarberLock(ctx, barber, func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, nested, ErrLockNotAcquired)
		return nil
	})
	require.NoError(t, err)

	exists, err := client.Exists(context.Background(), key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists, "lock released")
}

func TestRedisLocker_ZeroWaitBlocksUntilContextDone(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("BARBER_TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("BARBER_TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, RedisOptions{
		KeyPrefix: "barber-scheduler-test",
		TTL:       5 * time.Second,
		Backoff:   5 * time.Millisecond,
	}, nil)

	barber := objectid.New()
	err := l.WithBarberLock(context.Background(), barber, func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		started := time.Now()
		nested := l.WithBarberLock(waitCtx, barber, func(ctx context.Context) error { return nil })
		assert.ErrorIs(t, nested, ErrLockNotAcquired)
		assert.GreaterOrEqual(t, time.Since(started), 100*time.Millisecond)
		return nil
	})
	require.NoError(t, err)
}
