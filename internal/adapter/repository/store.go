package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// withTimeout bounds a single store call. A zero timeout leaves ctx as is.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// notExpired hides demo records whose ttl has passed. PostgreSQL has no
// native expiry, so reads filter and DeleteExpired reclaims the rows.
func notExpired(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("ttl IS NULL OR ttl > ?", now.Unix())
	}
}

// translate maps GORM errors onto the shared store errors
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, repositories.ErrConditionFailed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
