package reminder

import (
	"context"
	"fmt"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	"github.com/johnquangdev/meetingmind/pkg/jobcontext"
)

// Config tunes a reminder run
type Config struct {
	LeadDays int

	// Dedupe skips meetings already reminded on the same calendar day
	Dedupe    bool
	DedupeTTL time.Duration

	// PublishMaxElapsed bounds retries of transient publish errors; zero
	// publishes once
	PublishMaxElapsed time.Duration
}

// Report summarises one run
type Report struct {
	Date            string `json:"date"`
	MeetingsScanned int    `json:"meetingsScanned"`
	Sent            int    `json:"sent"`
	Failed          int    `json:"failed"`
	Skipped         int    `json:"skipped"`
}

// Service sweeps completed meetings and publishes digests for open action
// items that are overdue or due soon.
type Service struct {
	meetingRepo repositories.MeetingRepository
	channel     repositories.NotificationChannel
	ledger      repositories.ReminderLedger
	cfg         Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a reminder service. ledger may be nil when dedupe is off.
func NewService(
	meetingRepo repositories.MeetingRepository,
	channel repositories.NotificationChannel,
	ledger repositories.ReminderLedger,
	cfg Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LeadDays < 0 {
		cfg.LeadDays = DefaultLeadDays
	}
	if cfg.DedupeTTL <= 0 {
		cfg.DedupeTTL = 48 * time.Hour
	}
	return &Service{
		meetingRepo: meetingRepo,
		channel:     channel,
		ledger:      ledger,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock, mainly for tests and backfills
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// DedupeKey is the ledger key for a meeting's digest on a given day
func DedupeKey(meetingID string, day time.Time) string {
	return fmt.Sprintf("reminder:%s:%s", meetingID, day.Format(entities.DeadlineLayout))
}

// Run performs one sweep. A failed store query aborts the run before
// anything is sent; publish failures are counted and the sweep continues.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	window := NewWindow(s.now(), s.cfg.LeadDays)

	meetings, err := s.meetingRepo.ListByStatus(ctx, entities.MeetingStatusDone)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed meetings: %w", err)
	}

	report := &Report{
		Date:            window.Today.Format(entities.DeadlineLayout),
		MeetingsScanned: len(meetings),
	}

	for _, meeting := range meetings {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !meeting.IsDone() {
			continue
		}

		items := s.classify(meeting, window)
		if len(items) == 0 {
			continue
		}

		key := DedupeKey(meeting.MeetingID, window.Today)
		if s.dedupeEnabled() {
			first, err := s.ledger.MarkSent(ctx, key, s.cfg.DedupeTTL)
			if err != nil {
				// Sending twice beats not sending
				s.logger.Warn("reminder.dedupe.unavailable",
					zap.String("meeting_id", meeting.MeetingID),
					zap.Error(err),
				)
			} else if !first {
				report.Skipped++
				continue
			}
		}

		digest := BuildDigest(meeting, items)
		if err := s.publish(ctx, digest); err != nil {
			report.Failed++
			s.logger.Error("reminder.publish.failed",
				zap.String("meeting_id", meeting.MeetingID),
				zap.Int("items", len(items)),
				zap.Error(err),
			)
			if s.dedupeEnabled() {
				if ferr := s.ledger.Forget(ctx, key); ferr != nil {
					s.logger.Warn("reminder.dedupe.forget_failed",
						zap.String("meeting_id", meeting.MeetingID),
						zap.Error(ferr),
					)
				}
			}
			continue
		}

		report.Sent++
		s.logger.Info("reminder.sent",
			zap.String("meeting_id", meeting.MeetingID),
			zap.String("title", meeting.Title),
			zap.Int("items", len(items)),
		)
	}

	return report, nil
}

func (s *Service) dedupeEnabled() bool {
	return s.cfg.Dedupe && s.ledger != nil
}

func (s *Service) classify(meeting *entities.Meeting, window Window) []ClassifiedItem {
	var out []ClassifiedItem
	for _, item := range meeting.ActionItems {
		if item.Completed {
			continue
		}
		if _, ok := item.DeadlineDate(); !ok {
			if item.Deadline != "" {
				s.logger.Debug("reminder.deadline.unparsable",
					zap.String("meeting_id", meeting.MeetingID),
					zap.String("action_id", item.ID),
					zap.String("deadline", item.Deadline),
				)
			}
			continue
		}
		if class, ok := window.Classify(item); ok {
			out = append(out, ClassifiedItem{Item: item, Class: class})
		}
	}
	return out
}

func (s *Service) publish(ctx context.Context, digest Digest) error {
	return retryPublish(ctx, s.cfg.PublishMaxElapsed, func() error {
		return s.channel.Publish(ctx, digest.Subject, digest.Message)
	})
}

// retryPublish retries transient publish errors with exponential backoff
// for at most maxElapsed; zero publishes once
func retryPublish(ctx context.Context, maxElapsed time.Duration, send func() error) error {
	if maxElapsed <= 0 {
		return send()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = maxElapsed

	return backoff.Retry(func() error {
		err := send()
		if err != nil && !jobcontext.IsRetryableError(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(bo, ctx))
}
