package entities

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Team is a named group of users sharing visibility into meetings
type Team struct {
	TeamID     string                      `gorm:"type:varchar(64);primaryKey" json:"teamId"`
	TeamName   string                      `gorm:"type:varchar(255);not null" json:"teamName"`
	InviteCode string                      `gorm:"type:varchar(16);uniqueIndex" json:"inviteCode"`
	CreatedBy  string                      `gorm:"type:varchar(128)" json:"createdBy,omitempty"`
	Members    datatypes.JSONSlice[Member] `gorm:"type:jsonb;not null;default:'[]'" json:"members"`
	CreatedAt  time.Time                   `gorm:"not null" json:"createdAt"`
}

// TableName specifies the table name for Team
func (Team) TableName() string {
	return "teams"
}

// Member is a denormalized team member entry
type Member struct {
	UserID   string     `json:"userId"`
	Name     string     `json:"name,omitempty"`
	Email    string     `json:"email,omitempty"`
	Role     TeamRole   `json:"role"`
	JoinedAt *time.Time `json:"joinedAt,omitempty"`
}

// UnmarshalJSON accepts the bare user-id strings older teams stored
// as members alongside the current object form.
func (m *Member) UnmarshalJSON(data []byte) error {
	var userID string
	if err := json.Unmarshal(data, &userID); err == nil {
		*m = Member{UserID: userID, Role: TeamRoleMember}
		return nil
	}
	type plain Member
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Member(p)
	return nil
}

// HasMember reports whether userID appears among the team's members
func (t *Team) HasMember(userID string) bool {
	_, ok := t.memberByID(userID)
	return ok
}

// RoleOf returns the member's role, falling back to member
func (t *Team) RoleOf(userID string) TeamRole {
	if m, ok := t.memberByID(userID); ok && m.Role != "" {
		return m.Role
	}
	return TeamRoleMember
}

func (t *Team) memberByID(userID string) (Member, bool) {
	if userID == "" {
		return Member{}, false
	}
	for _, m := range t.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}

// TeamMembership indexes team ids by member so listing a user's teams
// does not need a full table scan.
type TeamMembership struct {
	UserID   string    `gorm:"type:varchar(128);primaryKey" json:"userId"`
	TeamID   string    `gorm:"type:varchar(64);primaryKey;index" json:"teamId"`
	Role     TeamRole  `gorm:"type:varchar(20);not null" json:"role"`
	JoinedAt time.Time `gorm:"not null" json:"joinedAt"`
}

// TableName specifies the table name for TeamMembership
func (TeamMembership) TableName() string {
	return "team_memberships"
}
