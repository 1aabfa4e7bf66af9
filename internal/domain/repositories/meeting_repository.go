package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// Store errors shared by every backend
var (
	// ErrNotFound is returned when a keyed record is absent (or expired)
	ErrNotFound = errors.New("record not found")

	// ErrConditionFailed is returned when a conditional write did not apply
	ErrConditionFailed = errors.New("condition check failed")
)

// MeetingRepository defines the record store operations the core needs
type MeetingRepository interface {
	// FindByID retrieves a meeting by its composite key
	FindByID(ctx context.Context, userID, meetingID string) (*entities.Meeting, error)

	// ListByOwner retrieves a user's meetings, newest first
	ListByOwner(ctx context.Context, userID string) ([]*entities.Meeting, error)

	// ListByStatus queries the status+createdAt index, exhausting all pages
	ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]*entities.Meeting, error)

	// ListByTeam queries the teamId+createdAt index, newest first
	ListByTeam(ctx context.Context, teamID string) ([]*entities.Meeting, error)

	// Create inserts a new meeting; fails if the key already exists
	Create(ctx context.Context, meeting *entities.Meeting) error

	// UpdateActionItems replaces the embedded action items of an existing meeting
	UpdateActionItems(ctx context.Context, userID, meetingID string, items []entities.ActionItem, updatedAt time.Time) error
}

// ExpiredMeetingPurger is implemented by stores without native record
// expiry. DeleteExpired removes records whose ttl is at or before now.
type ExpiredMeetingPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
