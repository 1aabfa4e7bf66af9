package repositories

import (
	"context"
	"time"
)

// NotificationChannel is a publish-only fan-out channel for plain-text digests
type NotificationChannel interface {
	Publish(ctx context.Context, subject, message string) error
}

// RecipientChannel delivers a plain-text digest addressed to one recipient
type RecipientChannel interface {
	PublishTo(ctx context.Context, recipient, subject, message string) error
}

// ReminderLedger remembers which digests were already sent. MarkSent
// returns true only for the first caller with a given key within ttl.
type ReminderLedger interface {
	MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget drops a key so a digest that failed to publish can be retried
	Forget(ctx context.Context, key string) error
}
