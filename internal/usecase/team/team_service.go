package team

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
)

// ListingStrategy selects how a user's teams are found
type ListingStrategy string

const (
	// ListingByIndex reads the member index; cost follows the caller's memberships
	ListingByIndex ListingStrategy = "index"
	// ListingByScan reads the whole team table and filters in process
	ListingByScan ListingStrategy = "scan"
)

const (
	inviteCodeLength   = 6
	inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeAttempts = 5
)

// TeamSummary is one row of a user's team listing
type TeamSummary struct {
	TeamID      string
	TeamName    string
	MemberCount int
	Role        entities.TeamRole
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	CallerID string
	Email    string
	TeamName string
}

// JoinTeamInput represents input for joining a team
type JoinTeamInput struct {
	CallerID   string
	Email      string
	InviteCode string
}

// TeamService handles team business logic
type TeamService struct {
	teamRepo repositories.TeamRepository
	listing  ListingStrategy
	logger   *zap.Logger
	now      func() time.Time
}

// NewTeamService creates a new team service
func NewTeamService(
	teamRepo repositories.TeamRepository,
	listing ListingStrategy,
	logger *zap.Logger,
) *TeamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if listing == "" {
		listing = ListingByIndex
	}
	return &TeamService{
		teamRepo: teamRepo,
		listing:  listing,
		logger:   logger,
		now:      time.Now,
	}
}

// RequireMember loads a team and checks that userID is one of its members
func RequireMember(ctx context.Context, repo repositories.TeamRepository, userID, teamID string) (*entities.Team, error) {
	team, err := repo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, usecaseErrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if !team.HasMember(userID) {
		return nil, usecaseErrors.ErrNotTeamMember
	}
	return team, nil
}

// GetTeam retrieves a team the caller belongs to
func (s *TeamService) GetTeam(ctx context.Context, callerID, teamID string) (*entities.Team, error) {
	return RequireMember(ctx, s.teamRepo, callerID, teamID)
}

// ListUserTeams lists the caller's teams using the configured strategy
func (s *TeamService) ListUserTeams(ctx context.Context, callerID string) ([]TeamSummary, error) {
	if s.listing == ListingByScan {
		return s.ListTeamsForMemberByScan(ctx, callerID)
	}

	teams, err := s.teamRepo.ListByMember(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams by member: %w", err)
	}
	return summarize(teams, callerID), nil
}

// ListTeamsForMemberByScan reads every team and keeps the ones listing the
// caller. Kept as the reference path and as a fallback for stores without
// a member index.
func (s *TeamService) ListTeamsForMemberByScan(ctx context.Context, callerID string) ([]TeamSummary, error) {
	teams, err := s.teamRepo.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan teams: %w", err)
	}
	return summarize(teams, callerID), nil
}

func summarize(teams []*entities.Team, callerID string) []TeamSummary {
	out := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		if !t.HasMember(callerID) {
			continue
		}
		out = append(out, TeamSummary{
			TeamID:      t.TeamID,
			TeamName:    t.TeamName,
			MemberCount: len(t.Members),
			Role:        t.RoleOf(callerID),
		})
	}
	return out
}

// CreateTeam creates a team owned by the caller
func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*entities.Team, error) {
	name := strings.TrimSpace(input.TeamName)
	if name == "" {
		return nil, usecaseErrors.ErrTeamNameRequired
	}

	code, err := s.uniqueInviteCode(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	team := &entities.Team{
		TeamID:     uuid.New().String(),
		TeamName:   name,
		InviteCode: code,
		CreatedBy:  input.CallerID,
		CreatedAt:  now,
		Members: []entities.Member{{
			UserID:   input.CallerID,
			Email:    input.Email,
			Role:     entities.TeamRoleOwner,
			JoinedAt: &now,
		}},
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.logger.Info("team.created",
		zap.String("team_id", team.TeamID),
		zap.String("user_id", input.CallerID),
	)
	return team, nil
}

// JoinTeam adds the caller to the team behind an invite code
func (s *TeamService) JoinTeam(ctx context.Context, input JoinTeamInput) (*entities.Team, error) {
	code := strings.ToUpper(strings.TrimSpace(input.InviteCode))
	if code == "" {
		return nil, usecaseErrors.ErrInviteCodeRequired
	}

	team, err := s.teamRepo.FindByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, usecaseErrors.ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find team by invite code: %w", err)
	}
	if team.HasMember(input.CallerID) {
		return nil, usecaseErrors.ErrAlreadyTeamMember
	}

	now := s.now().UTC()
	member := entities.Member{
		UserID:   input.CallerID,
		Email:    input.Email,
		Role:     entities.TeamRoleMember,
		JoinedAt: &now,
	}
	if err := s.teamRepo.AddMember(ctx, team.TeamID, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, usecaseErrors.ErrInvalidInviteCode
		case errors.Is(err, repositories.ErrConditionFailed):
			// lost a race with another join of the same user
			return nil, usecaseErrors.ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}
	team.Members = append(team.Members, member)

	s.logger.Info("team.joined",
		zap.String("team_id", team.TeamID),
		zap.String("user_id", input.CallerID),
	)
	return team, nil
}

// uniqueInviteCode draws codes until one is not already taken
func (s *TeamService) uniqueInviteCode(ctx context.Context) (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := NewInviteCode()
		if err != nil {
			return "", err
		}
		_, err = s.teamRepo.FindByInviteCode(ctx, code)
		if errors.Is(err, repositories.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
	}
	return "", fmt.Errorf("failed to generate a free invite code after %d attempts", inviteCodeAttempts)
}

// NewInviteCode returns a random 6-character code over A-Z and 0-9
func NewInviteCode() (string, error) {
	limit := big.NewInt(int64(len(inviteCodeAlphabet)))
	b := make([]byte, inviteCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		b[i] = inviteCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}
