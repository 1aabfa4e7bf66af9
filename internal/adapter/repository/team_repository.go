package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// teamRepository implements the TeamRepository interface on PostgreSQL.
// Members live in a jsonb column on the team row and are mirrored into
// team_memberships so a user's teams can be listed without a scan.
type teamRepository struct {
	db      *gorm.DB
	table   string
	timeout time.Duration
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB, table string, timeout time.Duration) repositories.TeamRepository {
	if table == "" {
		table = entities.Team{}.TableName()
	}
	return &teamRepository{db: db, table: table, timeout: timeout}
}

func (r *teamRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

// FindByID retrieves a team by its id
func (r *teamRepository) FindByID(ctx context.Context, teamID string) (*entities.Team, error) {
	return r.findOne(ctx, "find team", "team_id = ?", teamID)
}

// FindByInviteCode retrieves a team by its invite code
func (r *teamRepository) FindByInviteCode(ctx context.Context, inviteCode string) (*entities.Team, error) {
	return r.findOne(ctx, "find team by invite code", "invite_code = ?", inviteCode)
}

func (r *teamRepository) findOne(ctx context.Context, op, where string, arg interface{}) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var team entities.Team
	if err := r.query(ctx).Where(where, arg).First(&team).Error; err != nil {
		return nil, translate(op, err)
	}
	return &team, nil
}

// Scan reads every team
func (r *teamRepository) Scan(ctx context.Context) ([]*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var teams []*entities.Team
	if err := r.query(ctx).Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, translate("scan teams", err)
	}
	return teams, nil
}

// ListByMember retrieves a user's teams through team_memberships
func (r *teamRepository) ListByMember(ctx context.Context, userID string) ([]*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	memberships := r.db.WithContext(ctx).
		Model(&entities.TeamMembership{}).
		Select("team_id").
		Where("user_id = ?", userID)

	var teams []*entities.Team
	err := r.query(ctx).
		Where("team_id IN (?)", memberships).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, translate("list teams by member", err)
	}
	return teams, nil
}

// Create inserts a team and its membership rows in one transaction
func (r *teamRepository) Create(ctx context.Context, team *entities.Team) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(r.table).Create(team).Error; err != nil {
			return err
		}
		rows := make([]entities.TeamMembership, 0, len(team.Members))
		for _, m := range team.Members {
			rows = append(rows, membershipRow(team.TeamID, m, team.CreatedAt))
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
	return translate("create team", err)
}

// AddMember appends a member unless the user is already listed. Legacy
// rows may hold bare user-id strings, so both shapes are checked.
func (r *teamRepository) AddMember(ctx context.Context, teamID string, member entities.Member) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	entry, err := json.Marshal([]entities.Member{member})
	if err != nil {
		return fmt.Errorf("encode member: %w", err)
	}
	byObject, _ := json.Marshal([]map[string]string{{"userId": member.UserID}})
	byString, _ := json.Marshal([]string{member.UserID})

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(r.table).
			Where("team_id = ?", teamID).
			Where("NOT (members @> ?::jsonb OR members @> ?::jsonb)", string(byObject), string(byString)).
			Update("members", gorm.Expr("members || ?::jsonb", string(entry)))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Table(r.table).Where("team_id = ?", teamID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return repositories.ErrConditionFailed
		}

		row := membershipRow(teamID, member, time.Now().UTC())
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	})
	return translate("add team member", err)
}

// IndexMembers inserts the team_memberships rows missing for a team
func (r *teamRepository) IndexMembers(ctx context.Context, team *entities.Team) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows := make([]entities.TeamMembership, 0, len(team.Members))
	for _, m := range team.Members {
		rows = append(rows, membershipRow(team.TeamID, m, team.CreatedAt))
	}
	if len(rows) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return 0, translate("index team members", result.Error)
	}
	return int(result.RowsAffected), nil
}

func membershipRow(teamID string, m entities.Member, fallback time.Time) entities.TeamMembership {
	joinedAt := fallback
	if m.JoinedAt != nil {
		joinedAt = *m.JoinedAt
	}
	role := m.Role
	if role == "" {
		role = entities.TeamRoleMember
	}
	return entities.TeamMembership{
		UserID:   m.UserID,
		TeamID:   teamID,
		Role:     role,
		JoinedAt: joinedAt,
	}
}
