package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogChannel writes digests to the log instead of delivering them
type LogChannel struct {
	logger *zap.Logger
}

// NewLogChannel creates a log-only channel for local runs
func NewLogChannel(logger *zap.Logger) *LogChannel {
	return &LogChannel{logger: logger}
}

// Publish logs the digest
func (c *LogChannel) Publish(ctx context.Context, subject, message string) error {
	c.logger.Info("notify.digest",
		zap.String("subject", subject),
		zap.String("message", message),
	)
	return nil
}

// PublishTo logs the digest with its recipient
func (c *LogChannel) PublishTo(ctx context.Context, recipient, subject, message string) error {
	c.logger.Info("notify.digest",
		zap.String("to", recipient),
		zap.String("subject", subject),
		zap.String("message", message),
	)
	return nil
}
