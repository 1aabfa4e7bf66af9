package reminder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

type fakeMeetingRepo struct {
	byStatus []*entities.Meeting
	err      error
	queried  []entities.MeetingStatus
}

func (r *fakeMeetingRepo) FindByID(ctx context.Context, userID, meetingID string) (*entities.Meeting, error) {
	return nil, errors.New("not used")
}

func (r *fakeMeetingRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	return nil, errors.New("not used")
}

func (r *fakeMeetingRepo) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]*entities.Meeting, error) {
	r.queried = append(r.queried, status)
	if r.err != nil {
		return nil, r.err
	}
	return r.byStatus, nil
}

func (r *fakeMeetingRepo) ListByTeam(ctx context.Context, teamID string) ([]*entities.Meeting, error) {
	return nil, errors.New("not used")
}

func (r *fakeMeetingRepo) Create(ctx context.Context, meeting *entities.Meeting) error {
	return errors.New("not used")
}

func (r *fakeMeetingRepo) UpdateActionItems(ctx context.Context, userID, meetingID string, items []entities.ActionItem, updatedAt time.Time) error {
	return errors.New("not used")
}

type published struct {
	subject string
	message string
}

// fakeChannel fails publishes for meetings whose title is in failures.
// A negative count fails forever.
type fakeChannel struct {
	mu       sync.Mutex
	sent     []published
	failures map[string]int
	attempts int
	err      error
}

func (c *fakeChannel) Publish(ctx context.Context, subject, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	for title, remaining := range c.failures {
		if remaining == 0 || !strings.Contains(message, "— "+title+"\n") {
			continue
		}
		if remaining > 0 {
			c.failures[title] = remaining - 1
		}
		if c.err != nil {
			return c.err
		}
		return errors.New("read tcp: connection reset by peer")
	}
	c.sent = append(c.sent, published{subject: subject, message: message})
	return nil
}

type fakeLedger struct {
	keys      map[string]bool
	forgotten []string
	err       error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{keys: map[string]bool{}}
}

func (l *fakeLedger) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.keys[key] {
		return false, nil
	}
	l.keys[key] = true
	return true, nil
}

func (l *fakeLedger) Forget(ctx context.Context, key string) error {
	delete(l.keys, key)
	l.forgotten = append(l.forgotten, key)
	return nil
}

type addressed struct {
	to      string
	subject string
	message string
}

// fakeRecipientChannel fails publishes to the addresses in failing
type fakeRecipientChannel struct {
	sent    []addressed
	failing map[string]bool
}

func (c *fakeRecipientChannel) PublishTo(ctx context.Context, recipient, subject, message string) error {
	if c.failing[recipient] {
		return errors.New("read tcp: connection reset by peer")
	}
	c.sent = append(c.sent, addressed{to: recipient, subject: subject, message: message})
	return nil
}
