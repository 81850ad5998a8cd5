package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

// RedisOptions параметры блокировки
type RedisOptions struct {
	KeyPrefix string
	TTL       time.Duration // Время жизни ключа, защищает от зависших блокировок
	Wait      time.Duration // Сколько ждать освобождения блокировки; 0 - ждать до отмены ctx, как LocalLocker
	Backoff   time.Duration // Пауза между попытками
}

// RedisLocker блокировка на ключе SET NX с токеном владельца
type RedisLocker struct {
	client   redis.Cmdable
	opts     RedisOptions
	observer WaitObserver
}

// NewRedisLocker создает блокировку поверх клиента Redis
func NewRedisLocker(client redis.Cmdable, opts RedisOptions, observer WaitObserver) *RedisLocker {
	if opts.Backoff <= 0 {
		opts.Backoff = 25 * time.Millisecond
	}
	return &RedisLocker{client: client, opts: opts, observer: observer}
}

// WithBarberLock выполняет fn, удерживая блокировку барбера. Контекст fn ограничен TTL блокировки.
func (l *RedisLocker) WithBarberLock(ctx context.Context, barberID objectid.ID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("%s:lock:barber:%s", l.opts.KeyPrefix, barberID.Hex())
	token := uuid.NewString()

	started := time.Now()
	if err := l.acquire(ctx, key, token); err != nil {
		l.observe(time.Since(started), false)
		return err
	}
	l.observe(time.Since(started), true)

	defer func() {
		// Освобождаем даже если ctx уже отменен
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	fnCtx, cancel := context.WithTimeout(ctx, l.opts.TTL)
	defer cancel()

	return fn(fnCtx)
}

func (l *RedisLocker) acquire(ctx context.Context, key, token string) error {
	deadline := waitDeadline(time.Now(), l.opts.Wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return fmt.Errorf("%w: acquire %s: %v", ErrLockBackend, key, err)
		}
		if ok {
			return nil
		}

		if waitExpired(deadline, time.Now()) {
			return ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrLockNotAcquired, ctx.Err())
		case <-time.After(l.opts.Backoff):
		}
	}
}

// waitDeadline момент, после которого захват прекращается; нулевое время - без ограничения
func waitDeadline(now time.Time, wait time.Duration) time.Time {
	if wait <= 0 {
		return time.Time{}
	}
	return now.Add(wait)
}

func waitExpired(deadline, now time.Time) bool {
	return !deadline.IsZero() && !now.Before(deadline)
}

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: release %s: %v", ErrLockBackend, key, err)
	}
	return nil
}

func (l *RedisLocker) observe(d time.Duration, acquired bool) {
	if l.observer != nil {
		l.observer.ObserveLockWait(d, acquired)
	}
}
