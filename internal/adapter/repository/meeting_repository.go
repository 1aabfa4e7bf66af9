package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface on PostgreSQL
type meetingRepository struct {
	db      *gorm.DB
	table   string
	timeout time.Duration
	now     func() time.Time
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB, table string, timeout time.Duration) repositories.MeetingRepository {
	if table == "" {
		table = entities.Meeting{}.TableName()
	}
	return &meetingRepository{db: db, table: table, timeout: timeout, now: time.Now}
}

var _ repositories.ExpiredMeetingPurger = (*meetingRepository)(nil)

func (r *meetingRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// FindByID retrieves a meeting by owner and meeting id
func (r *meetingRepository) FindByID(ctx context.Context, userID, meetingID string) (*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var meeting entities.Meeting
	err := r.query(ctx).
		Scopes(notExpired(r.now())).
		Where("user_id = ? AND meeting_id = ?", userID, meetingID).
		First(&meeting).Error
	if err != nil {
		return nil, translate("find meeting", err)
	}
	return &meeting, nil
}

// ListByOwner retrieves a user's meetings, newest first
func (r *meetingRepository) ListByOwner(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	return r.list(ctx, "list meetings by owner", "created_at DESC", "user_id = ?", userID)
}

// ListByStatus retrieves every meeting in a status, oldest first
func (r *meetingRepository) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]*entities.Meeting, error) {
	return r.list(ctx, "list meetings by status", "created_at ASC", "status = ?", status)
}

// ListByTeam retrieves a team's meetings, newest first
func (r *meetingRepository) ListByTeam(ctx context.Context, teamID string) ([]*entities.Meeting, error) {
	return r.list(ctx, "list meetings by team", "created_at DESC", "team_id = ?", teamID)
}

func (r *meetingRepository) list(ctx context.Context, op, order, where string, arg interface{}) ([]*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var meetings []*entities.Meeting
	err := r.query(ctx).
		Scopes(notExpired(r.now())).
		Where(where, arg).
		Order(order).
		Find(&meetings).Error
	if err != nil {
		return nil, translate(op, err)
	}
	return meetings, nil
}

// Create inserts a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	return translate("create meeting", r.query(ctx).Create(meeting).Error)
}

// UpdateActionItems replaces the embedded action items of a live meeting
func (r *meetingRepository) UpdateActionItems(ctx context.Context, userID, meetingID string, items []entities.ActionItem, updatedAt time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.query(ctx).
		Scopes(notExpired(r.now())).
		Where("user_id = ? AND meeting_id = ?", userID, meetingID).
		Updates(map[string]interface{}{
			"action_items": datatypes.JSONSlice[entities.ActionItem](items),
			"updated_at":   updatedAt,
		})
	if result.Error != nil {
		return translate("update action items", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("update action items", gorm.ErrRecordNotFound)
	}
	return nil
}

// DeleteExpired removes demo meetings whose ttl has passed
func (r *meetingRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result := r.query(ctx).
		Where("ttl IS NOT NULL AND ttl <= ?", now.Unix()).
		Delete(&entities.Meeting{})
	if result.Error != nil {
		return 0, translate("delete expired meetings", result.Error)
	}
	return result.RowsAffected, nil
}
