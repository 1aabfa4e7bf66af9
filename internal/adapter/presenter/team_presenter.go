package presenter

import (
	"github.com/johnquangdev/meetingmind/internal/adapter/dto/team"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	teamUsecase "github.com/johnquangdev/meetingmind/internal/usecase/team"
)

// ToTeamResponse converts a Team entity to the detail DTO
func ToTeamResponse(t *entities.Team) *team.TeamResponse {
	if t == nil {
		return nil
	}

	members := make([]team.MemberResponse, len(t.Members))
	for i, m := range t.Members {
		role := m.Role
		if role == "" {
			role = entities.TeamRoleMember
		}
		members[i] = team.MemberResponse{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			Role:     string(role),
			JoinedAt: m.JoinedAt,
		}
	}

	return &team.TeamResponse{
		TeamID:     t.TeamID,
		TeamName:   t.TeamName,
		InviteCode: t.InviteCode,
		Members:    members,
		CreatedAt:  t.CreatedAt,
	}
}

// ToTeamListResponse converts team summaries
func ToTeamListResponse(summaries []teamUsecase.TeamSummary) *team.ListTeamsResponse {
	rows := make([]team.TeamSummaryResponse, len(summaries))
	for i, s := range summaries {
		rows[i] = team.TeamSummaryResponse{
			TeamID:      s.TeamID,
			TeamName:    s.TeamName,
			MemberCount: s.MemberCount,
			Role:        string(s.Role),
		}
	}
	return &team.ListTeamsResponse{Teams: rows}
}
