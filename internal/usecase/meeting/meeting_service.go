package meeting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
	"github.com/johnquangdev/meetingmind/internal/usecase/team"
)

// UploadPresigner issues time-limited upload URLs for object keys
type UploadPresigner interface {
	PresignUpload(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Options tunes the meeting service
type Options struct {
	// DemoUserID marks the account whose meetings expire after DemoTTL
	DemoUserID   string
	DemoTTL      time.Duration
	UploadExpiry time.Duration
}

// MeetingService handles meeting business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	teamRepo    repositories.TeamRepository
	presigner   UploadPresigner
	opts        Options
	logger      *zap.Logger
	now         func() time.Time
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetingRepo repositories.MeetingRepository,
	teamRepo repositories.TeamRepository,
	presigner UploadPresigner,
	opts Options,
	logger *zap.Logger,
) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.UploadExpiry <= 0 {
		opts.UploadExpiry = time.Hour
	}
	if opts.DemoTTL <= 0 {
		opts.DemoTTL = 30 * time.Minute
	}
	return &MeetingService{
		meetingRepo: meetingRepo,
		teamRepo:    teamRepo,
		presigner:   presigner,
		opts:        opts,
		logger:      logger,
		now:         time.Now,
	}
}

// GetMeeting retrieves one of the caller's meetings
func (s *MeetingService) GetMeeting(ctx context.Context, callerID, meetingID string) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, callerID, meetingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings lists the caller's meetings, or a team's after a membership check
func (s *MeetingService) ListMeetings(ctx context.Context, callerID, teamID string) ([]*entities.Meeting, error) {
	if teamID == "" {
		meetings, err := s.meetingRepo.ListByOwner(ctx, callerID)
		if err != nil {
			return nil, fmt.Errorf("failed to list meetings: %w", err)
		}
		return meetings, nil
	}

	if _, err := team.RequireMember(ctx, s.teamRepo, callerID, teamID); err != nil {
		return nil, err
	}
	meetings, err := s.meetingRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team meetings: %w", err)
	}
	return meetings, nil
}

// UpdateActionInput represents input for toggling an action item
type UpdateActionInput struct {
	CallerID  string
	MeetingID string
	ActionID  string
	Completed bool
}

// UpdateActionCompletion marks an embedded action item complete or open
func (s *MeetingService) UpdateActionCompletion(ctx context.Context, input UpdateActionInput) (*entities.ActionItem, error) {
	meeting, err := s.GetMeeting(ctx, input.CallerID, input.MeetingID)
	if err != nil {
		return nil, err
	}

	idx := meeting.FindActionItem(input.ActionID)
	if idx < 0 {
		return nil, usecaseErrors.ErrActionItemNotFound
	}

	now := s.now().UTC()
	items := make([]entities.ActionItem, len(meeting.ActionItems))
	copy(items, meeting.ActionItems)
	items[idx].SetCompleted(input.Completed, now)

	if err := s.meetingRepo.UpdateActionItems(ctx, input.CallerID, input.MeetingID, items, now); err != nil {
		// deleted or expired between the read and the write
		if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, repositories.ErrConditionFailed) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to update action items: %w", err)
	}

	s.logger.Info("meeting.action.updated",
		zap.String("meeting_id", input.MeetingID),
		zap.String("action_id", input.ActionID),
		zap.Bool("completed", input.Completed),
	)
	updated := items[idx]
	return &updated, nil
}

// ActionFilter selects action items by completion
type ActionFilter string

const (
	ActionFilterAll        ActionFilter = "all"
	ActionFilterIncomplete ActionFilter = "incomplete"
	ActionFilterComplete   ActionFilter = "complete"
)

// ParseActionFilter maps a query value to a filter; empty means all
func ParseActionFilter(raw string) (ActionFilter, error) {
	switch f := ActionFilter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return ActionFilterAll, nil
	case ActionFilterAll, ActionFilterIncomplete, ActionFilterComplete:
		return f, nil
	}
	return "", usecaseErrors.ErrInvalidActionFilter
}

func (f ActionFilter) keep(completed bool) bool {
	switch f {
	case ActionFilterIncomplete:
		return !completed
	case ActionFilterComplete:
		return completed
	}
	return true
}

// ListActionsInput represents the filters of an action overview
type ListActionsInput struct {
	CallerID string
	TeamID   string
	Status   ActionFilter
	Owner    string
}

// ActionWithContext is an action item plus the meeting it came from
type ActionWithContext struct {
	entities.ActionItem
	MeetingID    string
	MeetingTitle string
	MeetingDate  *time.Time
}

// ActionStats counts the items of an overview
type ActionStats struct {
	Total          int
	Completed      int
	Incomplete     int
	CompletionRate float64
}

// ActionOverview is the flattened action list with its stats
type ActionOverview struct {
	Actions []ActionWithContext
	Stats   ActionStats
}

const (
	untitledMeeting = "Untitled Meeting"
	noDeadlineSort  = "9999-12-31"
)

// ListActions flattens action items across meetings, soonest deadline first
// and riskiest first within a day.
func (s *MeetingService) ListActions(ctx context.Context, input ListActionsInput) (*ActionOverview, error) {
	filter := input.Status
	if filter == "" {
		filter = ActionFilterAll
	}

	meetings, err := s.ListMeetings(ctx, input.CallerID, input.TeamID)
	if err != nil {
		return nil, err
	}

	out := &ActionOverview{Actions: []ActionWithContext{}}
	for _, m := range meetings {
		title := m.Title
		if title == "" {
			title = untitledMeeting
		}
		date := meetingDate(m)
		for _, item := range m.ActionItems {
			if !filter.keep(item.Completed) {
				continue
			}
			if input.Owner != "" && item.Owner != input.Owner {
				continue
			}
			item.Owner = item.OwnerOrUnassigned()
			item.Status = item.EffectiveStatus()
			if item.RiskLevel == "" {
				item.RiskLevel = entities.RiskLevelLow
			}
			out.Actions = append(out.Actions, ActionWithContext{
				ActionItem:   item,
				MeetingID:    m.MeetingID,
				MeetingTitle: title,
				MeetingDate:  date,
			})
		}
	}

	sort.SliceStable(out.Actions, func(i, j int) bool {
		di, dj := sortDeadline(out.Actions[i].Deadline), sortDeadline(out.Actions[j].Deadline)
		if di != dj {
			return di < dj
		}
		return out.Actions[i].RiskScore > out.Actions[j].RiskScore
	})

	out.Stats.Total = len(out.Actions)
	for _, a := range out.Actions {
		if a.Completed {
			out.Stats.Completed++
		}
	}
	out.Stats.Incomplete = out.Stats.Total - out.Stats.Completed
	if out.Stats.Total > 0 {
		out.Stats.CompletionRate = math.Round(float64(out.Stats.Completed)/float64(out.Stats.Total)*100) / 100
	}
	return out, nil
}

func sortDeadline(d string) string {
	if d == "" {
		return noDeadlineSort
	}
	return d
}

func meetingDate(m *entities.Meeting) *time.Time {
	if !m.CreatedAt.IsZero() {
		t := m.CreatedAt
		return &t
	}
	return m.UpdatedAt
}

// Upload limits
const (
	MaxUploadBytes     int64 = 500 * 1024 * 1024
	defaultContentType       = "audio/mpeg"
	maxSafeTitleRunes        = 60
)

// allowedContentTypes maps accepted upload types to object key extensions
var allowedContentTypes = map[string]string{
	"audio/mpeg":               "mp3",
	"audio/mp3":                "mp3",
	"audio/wav":                "wav",
	"audio/wave":               "wav",
	"audio/mp4":                "mp4",
	"video/mp4":                "mp4",
	"audio/x-m4a":              "mp4",
	"audio/m4a":                "mp4",
	"audio/webm":               "webm",
	"video/webm":               "webm",
	"audio/ogg":                "ogg",
	"application/octet-stream": "mp3",
}

// ExtensionFor returns the object extension for an accepted content type
func ExtensionFor(contentType string) (string, bool) {
	ext, ok := allowedContentTypes[contentType]
	return ext, ok
}

// CreateUploadInput represents input for registering an upload
type CreateUploadInput struct {
	CallerID    string
	Email       string
	Title       string
	ContentType string
	FileSize    int64
	TeamID      string
}

// CreateUploadOutput tells the client where to PUT the audio
type CreateUploadOutput struct {
	MeetingID string
	UploadURL string
	S3Key     string
	ExpiresAt time.Time
}

// CreateUpload registers a pending meeting and returns a presigned upload URL
func (s *MeetingService) CreateUpload(ctx context.Context, input CreateUploadInput) (*CreateUploadOutput, error) {
	contentType := strings.TrimSpace(input.ContentType)
	if contentType == "" {
		contentType = defaultContentType
	}
	ext, ok := ExtensionFor(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", usecaseErrors.ErrUnsupportedContentType, contentType)
	}
	if input.FileSize > MaxUploadBytes {
		return nil, usecaseErrors.ErrUploadTooLarge
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = untitledMeeting
	}

	if input.TeamID != "" {
		if _, err := team.RequireMember(ctx, s.teamRepo, input.CallerID, input.TeamID); err != nil {
			return nil, err
		}
	}

	meetingID := uuid.New().String()
	key := ObjectKey(input.CallerID, meetingID, title, ext)

	url, err := s.presigner.PresignUpload(ctx, key, s.opts.UploadExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecaseErrors.ErrUploadURLUnavailable, err)
	}

	now := s.now().UTC()
	meeting := &entities.Meeting{
		UserID:    input.CallerID,
		MeetingID: meetingID,
		Title:     title,
		Status:    entities.MeetingStatusPending,
		S3Key:     key,
		Email:     input.Email,
		CreatedAt: now,
	}
	if input.TeamID != "" {
		teamID := input.TeamID
		meeting.TeamID = &teamID
	}
	if s.opts.DemoUserID != "" && input.CallerID == s.opts.DemoUserID {
		ttl := now.Add(s.opts.DemoTTL).Unix()
		meeting.TTL = &ttl
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	s.logger.Info("meeting.upload.created",
		zap.String("meeting_id", meetingID),
		zap.String("s3_key", key),
		zap.Bool("demo", meeting.TTL != nil),
	)
	return &CreateUploadOutput{
		MeetingID: meetingID,
		UploadURL: url,
		S3Key:     key,
		ExpiresAt: now.Add(s.opts.UploadExpiry),
	}, nil
}

// ObjectKey builds the audio object key for a meeting
func ObjectKey(userID, meetingID, title, ext string) string {
	safe := strings.NewReplacer(" ", "-", "/", "-").Replace(title)
	if r := []rune(safe); len(r) > maxSafeTitleRunes {
		safe = string(r[:maxSafeTitleRunes])
	}
	return fmt.Sprintf("audio/%s__%s__%s.%s", userID, meetingID, safe, ext)
}
