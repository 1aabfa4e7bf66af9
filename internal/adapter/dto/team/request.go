package team

// CreateTeamRequest represents the body of a create-team request
type CreateTeamRequest struct {
	TeamName string `json:"teamName" validate:"max=255" example:"Platform"`
}

// JoinTeamRequest represents the body of a join-team request
type JoinTeamRequest struct {
	InviteCode string `json:"inviteCode" validate:"max=16" example:"K7Q2ZP"`
}
