package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberScheduler/pkg/objectid"
)

// LocalLocker блокировка по барберу внутри одного процесса.
// Используется, когда Redis не настроен (один экземпляр сервиса).
type LocalLocker struct {
	mu       sync.Mutex
	slots    map[objectid.ID]*localSlot
	wait     time.Duration
	observer WaitObserver
}

type localSlot struct {
	ch   chan struct{} // буфер 1: занятость слота
	refs int
}

// NewLocalLocker создает блокировку; wait - максимальное время ожидания (0 - ждать до отмены ctx)
func NewLocalLocker(wait time.Duration, observer WaitObserver) *LocalLocker {
	return &LocalLocker{
		slots:    make(map[objectid.ID]*localSlot),
		wait:     wait,
		observer: observer,
	}
}

func (l *LocalLocker) WithBarberLock(ctx context.Context, barberID objectid.ID, fn func(ctx context.Context) error) error {
	slot := l.ref(barberID)
	defer l.unref(barberID)

	waitCtx := ctx
	if l.wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	started := time.Now()
	select {
	case slot.ch <- struct{}{}:
		l.observe(time.Since(started), true)
	case <-waitCtx.Done():
		l.observe(time.Since(started), false)
		return fmt.Errorf("%w: %v", ErrLockNotAcquired, waitCtx.Err())
	}
	defer func() { <-slot.ch }()

	return fn(ctx)
}

func (l *LocalLocker) ref(id objectid.ID) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[id]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[id] = slot
	}
	slot.refs++
	return slot
}

func (l *LocalLocker) unref(id objectid.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot := l.slots[id]
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, id)
	}
}

func (l *LocalLocker) observe(d time.Duration, acquired bool) {
	if l.observer != nil {
		l.observer.ObserveLockWait(d, acquired)
	}
}
