package lock

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberScheduler/internal/domain"
	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

func TestLocalLocker_SerializesSameBarber(t *testing.T) {
	l := NewLocalLocker(0, nil)
	barber := objectid.New()

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithBarberLock(context.Background(), barber, func(ctx context.Context) error {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.slots, "slots are released after use")
}

func TestLocalLocker_DifferentBarbersDoNotBlock(t *testing.T) {
	l := NewLocalLocker(50*time.Millisecond, nil)
	a, b := objectid.New(), objectid.New()

	err := l.WithBarberLock(context.Background(), a, func(ctx context.Context) error {
		return l.WithBarberLock(ctx, b, func(ctx context.Context) error { return nil })
	})
	require.NoError(t, err)
}

func TestLocalLocker_TimesOut(t *testing.T) {
	l := NewLocalLocker(20*time.Millisecond, nil)
	barber := objectid.New()

	err := l.WithBarberLock(context.Background(), barber, func(ctx context.Context) error {
		return l.WithBarberLock(ctx, barber, func(ctx context.Context) error { return nil })
	})

	require.ErrorIs(t, err, ErrLockNotAcquired)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestLocalLocker_ZeroWaitBlocksUntilContextDone(t *testing.T) {
	l := NewLocalLocker(0, nil)
	barber := objectid.New()

	err := l.WithBarberLock(context.Background(), barber, func(context.Context) error {
		waitCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		started := time.Now()
		nested := l.WithBarberLock(waitCtx, barber, func(context.Context) error { return nil })
		assert.ErrorIs(t, nested, ErrLockNotAcquired)
		assert.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond)
		return nil
	})
	require.NoError(t, err)
}

func TestLocalLocker_PropagatesFnError(t *testing.T) {
	l := NewLocalLocker(0, nil)
	boom := errors.New("boom")

	err := l.WithBarberLock(context.Background(), objectid.New(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
}
