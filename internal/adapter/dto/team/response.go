package team

import "time"

// MemberResponse represents one team member
type MemberResponse struct {
	UserID   string     `json:"userId"`
	Name     string     `json:"name,omitempty"`
	Email    string     `json:"email,omitempty"`
	Role     string     `json:"role"`
	JoinedAt *time.Time `json:"joinedAt,omitempty"`
}

// TeamResponse represents the team detail shown to members
type TeamResponse struct {
	TeamID     string           `json:"teamId"`
	TeamName   string           `json:"teamName"`
	InviteCode string           `json:"inviteCode"`
	Members    []MemberResponse `json:"members"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// TeamSummaryResponse is one row of a team listing
type TeamSummaryResponse struct {
	TeamID      string `json:"teamId"`
	TeamName    string `json:"teamName"`
	MemberCount int    `json:"memberCount"`
	Role        string `json:"role"`
}

// ListTeamsResponse represents the caller's teams
type ListTeamsResponse struct {
	Teams []TeamSummaryResponse `json:"teams"`
}

// CreateTeamResponse represents a newly created team
type CreateTeamResponse struct {
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	InviteCode string `json:"inviteCode"`
}

// JoinTeamResponse represents the team that was joined
type JoinTeamResponse struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
}
