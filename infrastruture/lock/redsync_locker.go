package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/circuit-maze/interfaces/general"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultExpiry = 8 * time.Second

var _ i.Locker = &RedsyncLocker{}

// RedsyncLocker hands out redis backed mutexes.
type RedsyncLocker struct {
	locker *redsync.Redsync
	expiry time.Duration
	logger general.Logger
}

// NewRedsyncLocker creates a locker on client. Locks expire after expiry if never released.
func NewRedsyncLocker(client *redis.Client, expiry time.Duration, logger general.Logger) *RedsyncLocker {
	if expiry <= 0 {
		expiry = defaultExpiry
	}
	pool := goredis.NewPool(client)
	return &RedsyncLocker{
		locker: redsync.New(pool),
		expiry: expiry,
		logger: logger,
	}
}

// Lock acquires key and returns its release function.
func (l *RedsyncLocker) Lock(ctx context.Context, key string) (func(), error) {
	mutex := l.locker.NewMutex(key, redsync.WithExpiry(l.expiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("obtaining lock %s: %w", key, err)
	}

	return func() {
		ok, err := mutex.Unlock()
		if err != nil {
			l.logger.Error(fmt.Sprintf("releasing lock %s: %s", key, err))
			return
		}
		if !ok {
			l.logger.Warning(fmt.Sprintf("lock %s was already released", key))
		}
	}, nil
}
