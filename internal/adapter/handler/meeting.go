package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/johnquangdev/meetingmind/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetingmind/internal/adapter/presenter"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	meetingUsecase "github.com/johnquangdev/meetingmind/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// GetMeeting handles GET /meetings/:meetingId
// @Summary      Get meeting details
// @Description  Returns one of the caller's meetings. The transcript is not included.
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        meetingId  path      string  true  "Meeting ID"
// @Success      200        {object}  meeting.MeetingResponse
// @Failure      401        {object}  common.ErrorResponse  "User not authenticated"
// @Failure      404        {object}  common.ErrorResponse  "Meeting not found"
// @Failure      500        {object}  common.ErrorResponse
// @Router       /meetings/{meetingId} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), userID, c.Param("meetingId"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Lists the caller's meetings newest first, or a team's meetings when teamId is given
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        teamId  query     string  false  "Team ID"
// @Success      200     {object}  meeting.ListMeetingsResponse
// @Failure      403     {object}  common.ErrorResponse  "Not a member of the team"
// @Failure      404     {object}  common.ErrorResponse  "Team not found"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meetings, err := h.meetingService.ListMeetings(c.Request().Context(), userID, c.QueryParam("teamId"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// UpdateAction handles PUT /meetings/:meetingId/actions/:actionId
// @Summary      Update an action item
// @Description  Marks one embedded action item complete or reopens it
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        meetingId  path      string                   true  "Meeting ID"
// @Param        actionId   path      string                   true  "Action item ID"
// @Param        request    body      meeting.UpdateActionRequest  true  "Completion flag"
// @Success      200        {object}  meeting.UpdateActionResponse
// @Failure      400        {object}  common.ErrorResponse  "Invalid payload"
// @Failure      404        {object}  common.ErrorResponse  "Meeting or action item not found"
// @Router       /meetings/{meetingId}/actions/{actionId} [put]
func (h *Meeting) UpdateAction(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	item, err := h.meetingService.UpdateActionCompletion(c.Request().Context(), meetingUsecase.UpdateActionInput{
		CallerID:  userID,
		MeetingID: c.Param("meetingId"),
		ActionID:  c.Param("actionId"),
		Completed: *req.Completed,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &dto.UpdateActionResponse{
		Success:   true,
		ActionID:  item.ID,
		Completed: item.Completed,
	})
}

// ListActions handles GET /actions
// @Summary      Action overview
// @Description  Flattens action items across the caller's meetings, or a team's meetings
// @Tags         Actions
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "all, incomplete or complete"
// @Param        owner   query     string  false  "Owner name"
// @Param        teamId  query     string  false  "Team ID"
// @Success      200     {object}  meeting.ListActionsResponse
// @Failure      400     {object}  common.ErrorResponse  "Invalid status filter"
// @Failure      403     {object}  common.ErrorResponse  "Not a member of the team"
// @Router       /actions [get]
func (h *Meeting) ListActions(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	filter, err := meetingUsecase.ParseActionFilter(c.QueryParam("status"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	overview, err := h.meetingService.ListActions(c.Request().Context(), meetingUsecase.ListActionsInput{
		CallerID: userID,
		TeamID:   c.QueryParam("teamId"),
		Status:   filter,
		Owner:    c.QueryParam("owner"),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToListActionsResponse(overview))
}

// DebtAnalytics handles GET /actions/analytics
// @Summary      Meeting debt analytics
// @Description  Prices unfinished action items by cause, with completion rate against the industry benchmark and an eight week trend
// @Tags         Actions
// @Produce      json
// @Security     BearerAuth
// @Param        teamId  query     string  false  "Team ID"
// @Success      200     {object}  meeting.DebtAnalyticsResponse
// @Failure      403     {object}  common.ErrorResponse  "Not a member of the team"
// @Failure      404     {object}  common.ErrorResponse  "Team not found"
// @Router       /actions/analytics [get]
func (h *Meeting) DebtAnalytics(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	analytics, err := h.meetingService.DebtAnalytics(c.Request().Context(), userID, c.QueryParam("teamId"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToDebtAnalyticsResponse(analytics))
}

// CreateUploadURL handles POST /upload-url
// @Summary      Request an upload URL
// @Description  Registers a pending meeting and returns a presigned PUT URL for its audio
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateUploadRequest  true  "Upload details"
// @Success      200      {object}  meeting.CreateUploadResponse
// @Failure      400      {object}  common.ErrorResponse  "Unsupported file type or file too large"
// @Failure      403      {object}  common.ErrorResponse  "Not a member of the team"
// @Router       /upload-url [post]
func (h *Meeting) CreateUploadURL(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.CreateUploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.meetingService.CreateUpload(c.Request().Context(), meetingUsecase.CreateUploadInput{
		CallerID:    userID,
		Email:       httpmw.Email(c),
		Title:       req.Title,
		ContentType: req.ContentType,
		FileSize:    req.FileSize,
		TeamID:      req.TeamID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToCreateUploadResponse(out))
}
