package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/johnquangdev/meetingmind/internal/adapter/dto/team"
	"github.com/johnquangdev/meetingmind/internal/adapter/presenter"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	teamUsecase "github.com/johnquangdev/meetingmind/internal/usecase/team"
)

// Team handles team-related HTTP requests
type Team struct {
	teamService teamUsecase.Service
	logger      *zap.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamService teamUsecase.Service, logger *zap.Logger) *Team {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Team{
		teamService: teamService,
		logger:      logger,
	}
}

// GetTeam handles GET /teams/:teamId
// @Summary      Get team details
// @Description  Returns a team the caller is a member of
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        teamId  path      string  true  "Team ID"
// @Success      200     {object}  team.TeamResponse
// @Failure      403     {object}  common.ErrorResponse  "Not a member of the team"
// @Failure      404     {object}  common.ErrorResponse  "Team not found"
// @Router       /teams/{teamId} [get]
func (h *Team) GetTeam(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.teamService.GetTeam(c.Request().Context(), userID, c.Param("teamId"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTeamResponse(t))
}

// ListTeams handles GET /teams
// @Summary      List the caller's teams
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  team.ListTeamsResponse
// @Failure      401  {object}  common.ErrorResponse  "User not authenticated"
// @Router       /teams [get]
func (h *Team) ListTeams(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	teams, err := h.teamService.ListUserTeams(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToTeamListResponse(teams))
}

// CreateTeam handles POST /teams
// @Summary      Create a team
// @Description  Creates a team with the caller as owner and returns its invite code
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      team.CreateTeamRequest  true  "Team name"
// @Success      200      {object}  team.CreateTeamResponse
// @Failure      400      {object}  common.ErrorResponse  "Team name is required"
// @Router       /teams [post]
func (h *Team) CreateTeam(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.CreateTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.teamService.CreateTeam(c.Request().Context(), teamUsecase.CreateTeamInput{
		CallerID: userID,
		Email:    httpmw.Email(c),
		TeamName: req.TeamName,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &dto.CreateTeamResponse{
		TeamID:     t.TeamID,
		TeamName:   t.TeamName,
		InviteCode: t.InviteCode,
	})
}

// JoinTeam handles POST /teams/join
// @Summary      Join a team
// @Description  Adds the caller to the team behind an invite code
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      team.JoinTeamRequest  true  "Invite code"
// @Success      200      {object}  team.JoinTeamResponse
// @Failure      400      {object}  common.ErrorResponse  "Invite code is required or already a member"
// @Failure      404      {object}  common.ErrorResponse  "Invalid invite code"
// @Router       /teams/join [post]
func (h *Team) JoinTeam(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.JoinTeamRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	t, err := h.teamService.JoinTeam(c.Request().Context(), teamUsecase.JoinTeamInput{
		CallerID:   userID,
		Email:      httpmw.Email(c),
		InviteCode: req.InviteCode,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &dto.JoinTeamResponse{
		TeamID:   t.TeamID,
		TeamName: t.TeamName,
	})
}
