// Package notify publishes reminder digests to subscribers.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Message is the payload published for every digest
type Message struct {
	To      string    `json:"to,omitempty"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sentAt"`
}

// RedisChannel fans digests out over a Redis pub/sub channel. Subscribers
// (mailers, chat bridges) decide how to deliver them.
type RedisChannel struct {
	client  redis.Cmdable
	channel string
	now     func() time.Time
}

// NewRedisChannel creates a channel publishing to the named Redis channel
func NewRedisChannel(client redis.Cmdable, channel string) *RedisChannel {
	return &RedisChannel{client: client, channel: channel, now: time.Now}
}

// Publish sends one digest. Having no subscribers is not an error.
func (c *RedisChannel) Publish(ctx context.Context, subject, message string) error {
	return c.send(ctx, Message{Subject: subject, Message: message})
}

// PublishTo sends one digest addressed to recipient; subscribers deliver it
func (c *RedisChannel) PublishTo(ctx context.Context, recipient, subject, message string) error {
	return c.send(ctx, Message{To: recipient, Subject: subject, Message: message})
}

func (c *RedisChannel) send(ctx context.Context, m Message) error {
	m.SentAt = c.now().UTC()
	payload, err := encode(m)
	if err != nil {
		return err
	}
	if err := c.client.Publish(ctx, c.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", c.channel, err)
	}
	return nil
}

func encode(m Message) ([]byte, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode notification: %w", err)
	}
	return payload, nil
}
