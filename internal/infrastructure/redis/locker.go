// Package redis provides the tenant-level rebuild guard on top of a
// shared Redis instance, so single-flight holds across every API
// replica, not just within one process.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"inventaris/internal/core/apperror"
	"inventaris/internal/core/id"
	"inventaris/internal/domain/rebuild"
	"inventaris/pkg/logger"
)

var _ rebuild.Locker = (*RebuildLocker)(nil)

// NewClient connects a go-redis client and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RebuildLocker implements rebuild.Locker with redislock advisory locks
// keyed per tenant.
type RebuildLocker struct {
	locker *redislock.Client
}

// NewRebuildLocker creates the locker.
func NewRebuildLocker(client *goredis.Client) *RebuildLocker {
	return &RebuildLocker{locker: redislock.New(client)}
}

// Acquire takes the tenant's rebuild lock. A held lock maps to
// RebuildConflict; the caller retries later, it never queues.
func (l *RebuildLocker) Acquire(ctx context.Context, companyID id.ID, ttl time.Duration) (func(), error) {
	key := "rebuild:" + companyID.String()

	lock, err := l.locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, apperror.NewRebuildConflict(companyID.String())
	}
	if err != nil {
		return nil, fmt.Errorf("obtain rebuild lock: %w", err)
	}

	release := func() {
		// Background context: the lock must be released even when the
		// request context is already cancelled.
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.Warn(ctx, "release rebuild lock failed", "key", key, "error", err)
		}
	}
	return release, nil
}
