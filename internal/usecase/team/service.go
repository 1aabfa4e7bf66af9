package team

import (
	"context"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// Service defines the interface for team use case
type Service interface {
	// GetTeam retrieves a team the caller belongs to
	GetTeam(ctx context.Context, callerID, teamID string) (*entities.Team, error)

	// ListUserTeams lists the caller's teams using the configured strategy
	ListUserTeams(ctx context.Context, callerID string) ([]TeamSummary, error)

	// ListTeamsForMemberByScan lists the caller's teams by scanning every team
	ListTeamsForMemberByScan(ctx context.Context, callerID string) ([]TeamSummary, error)

	// CreateTeam creates a team owned by the caller
	CreateTeam(ctx context.Context, input CreateTeamInput) (*entities.Team, error)

	// JoinTeam adds the caller to the team behind an invite code
	JoinTeam(ctx context.Context, input JoinTeamInput) (*entities.Team, error)
}

// Ensure TeamService implements Service interface
var _ Service = (*TeamService)(nil)
