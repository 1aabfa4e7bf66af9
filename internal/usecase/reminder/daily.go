package reminder

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// digestSectionLimit caps how many actions each digest section lists
const digestSectionLimit = 5

const untitledMeetingTitle = "Untitled Meeting"

// DigestAction is an open action item listed in a daily digest
type DigestAction struct {
	Task         string
	Owner        string
	Deadline     string
	RiskLevel    entities.RiskLevel
	MeetingID    string
	MeetingTitle string
}

// DailyDigest summarises one user's open action items for a day
type DailyDigest struct {
	UserID string
	Email  string

	// Critical is due today or tomorrow, Upcoming within the next week
	Critical []DigestAction
	Overdue  []DigestAction
	Upcoming []DigestAction

	TotalActions     int
	CompletedActions int
	Incomplete       int

	// CompletionRate is a percentage rounded to one decimal
	CompletionRate float64
}

// BuildDailyDigest buckets a user's open action items by deadline relative
// to today's UTC date. Items without a parsable deadline only count toward
// the totals.
func BuildDailyDigest(meetings []*entities.Meeting, now time.Time) DailyDigest {
	today := NewWindow(now, 0).Today
	tomorrow := today.AddDate(0, 0, 1)
	weekOut := today.AddDate(0, 0, 7)

	var d DailyDigest
	for _, m := range meetings {
		title := m.Title
		if title == "" {
			title = untitledMeetingTitle
		}
		for _, item := range m.ActionItems {
			d.TotalActions++
			if item.Completed {
				d.CompletedActions++
				continue
			}
			d.Incomplete++

			deadline, ok := item.DeadlineDate()
			if !ok {
				continue
			}
			risk := item.RiskLevel
			if risk == "" {
				risk = entities.RiskLevelLow
			}
			action := DigestAction{
				Task:         item.Task,
				Owner:        item.OwnerOrUnassigned(),
				Deadline:     item.Deadline,
				RiskLevel:    risk,
				MeetingID:    m.MeetingID,
				MeetingTitle: title,
			}
			switch {
			case deadline.Before(today):
				d.Overdue = append(d.Overdue, action)
			case !deadline.After(tomorrow):
				d.Critical = append(d.Critical, action)
			case !deadline.After(weekOut):
				d.Upcoming = append(d.Upcoming, action)
			}
		}
	}
	if d.TotalActions > 0 {
		d.CompletionRate = math.Round(float64(d.CompletedActions)/float64(d.TotalActions)*1000) / 10
	}
	return d
}

// Subject is the digest's notification subject
func (d DailyDigest) Subject() string {
	return fmt.Sprintf("Daily Action Items Summary: %d item(s) need attention", d.Incomplete)
}

// Render formats the digest as plain text, at most five actions per section
func (d DailyDigest) Render() string {
	var b strings.Builder
	b.WriteString("Here is your daily summary of pending action items and upcoming deadlines.\n\n")
	fmt.Fprintf(&b, "Completion: %.1f%%   Completed: %d   Pending: %d\n", d.CompletionRate, d.CompletedActions, d.Incomplete)

	sections := []struct {
		heading string
		actions []DigestAction
	}{
		{"Critical: due today or tomorrow", d.Critical},
		{"Overdue: past deadline", d.Overdue},
		{"Upcoming: due this week", d.Upcoming},
	}
	for _, sec := range sections {
		if len(sec.actions) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n", sec.heading)
		for i, a := range sec.actions {
			if i == digestSectionLimit {
				fmt.Fprintf(&b, "  ...and %d more\n", len(sec.actions)-digestSectionLimit)
				break
			}
			fmt.Fprintf(&b, "  - %s\n    Owner: %s   Due: %s   Meeting: %s\n", a.Task, a.Owner, a.Deadline, a.MeetingTitle)
		}
	}
	return b.String()
}

// DigestReport summarises one daily digest run
type DigestReport struct {
	Date            string `json:"date"`
	MeetingsScanned int    `json:"meetingsScanned"`
	Users           int    `json:"users"`
	Sent            int    `json:"sent"`
	Failed          int    `json:"failed"`
	Skipped         int    `json:"skipped"`
}

// DigestService sends each user a daily summary of their open action items
type DigestService struct {
	meetingRepo repositories.MeetingRepository
	channel     repositories.RecipientChannel
	cfg         Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewDigestService creates a daily digest service. Only cfg.PublishMaxElapsed
// is used.
func NewDigestService(
	meetingRepo repositories.MeetingRepository,
	channel repositories.RecipientChannel,
	cfg Config,
	logger *zap.Logger,
) *DigestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DigestService{
		meetingRepo: meetingRepo,
		channel:     channel,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock replaces the wall clock
func (s *DigestService) WithClock(now func() time.Time) *DigestService {
	s.now = now
	return s
}

type userMeetings struct {
	email    string
	meetings []*entities.Meeting
}

// Run groups completed meetings by owner and sends one digest per user who
// has open items. Meetings without an owner email are left out. A failed
// store query aborts the run; publish failures are counted.
func (s *DigestService) Run(ctx context.Context) (*DigestReport, error) {
	now := s.now()

	meetings, err := s.meetingRepo.ListByStatus(ctx, entities.MeetingStatusDone)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed meetings: %w", err)
	}

	users := make(map[string]*userMeetings)
	for _, m := range meetings {
		if m.UserID == "" || m.Email == "" {
			continue
		}
		u, ok := users[m.UserID]
		if !ok {
			u = &userMeetings{email: m.Email}
			users[m.UserID] = u
		}
		u.meetings = append(u.meetings, m)
	}

	ids := make([]string, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	report := &DigestReport{
		Date:            NewWindow(now, 0).Today.Format(entities.DeadlineLayout),
		MeetingsScanned: len(meetings),
		Users:           len(users),
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		u := users[id]
		digest := BuildDailyDigest(u.meetings, now)
		digest.UserID, digest.Email = id, u.email
		if digest.Incomplete == 0 {
			report.Skipped++
			continue
		}

		err := retryPublish(ctx, s.cfg.PublishMaxElapsed, func() error {
			return s.channel.PublishTo(ctx, digest.Email, digest.Subject(), digest.Render())
		})
		if err != nil {
			report.Failed++
			s.logger.Error("digest.publish.failed",
				zap.String("user_id", id),
				zap.Int("pending", digest.Incomplete),
				zap.Error(err),
			)
			continue
		}

		report.Sent++
		s.logger.Info("digest.sent",
			zap.String("user_id", id),
			zap.Int("pending", digest.Incomplete),
			zap.Int("overdue", len(digest.Overdue)),
			zap.Int("critical", len(digest.Critical)),
		)
	}
	return report, nil
}
