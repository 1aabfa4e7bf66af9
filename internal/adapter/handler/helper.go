package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meetingmind/errors"
	"github.com/johnquangdev/meetingmind/internal/adapter/dto/common"
	httpmw "github.com/johnquangdev/meetingmind/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
)

// getRequestID tries to read X-Request-ID from the request or response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// callerID returns the verified caller identity set by the auth middleware
func callerID(c echo.Context) (string, error) {
	userID := httpmw.UserID(c)
	if userID == "" {
		return "", errors.ErrUnauthenticated()
	}
	return userID, nil
}

// bindAndValidate decodes the JSON body into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload(err)
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if stdErrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Tag() == "required" {
				return errors.ErrInvalidArgument(fmt.Sprintf("%s is required", fe.Field()))
			}
			return errors.ErrInvalidArgument(fmt.Sprintf("%s is invalid", fe.Field()))
		}
		return errors.ErrInvalidPayload(err)
	}
	return nil
}

// toAppError translates use case sentinels into client-facing errors
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(c.Param("meetingId"))
	case stdErrors.Is(err, usecaseErrors.ErrActionItemNotFound):
		return errors.ErrActionItemNotFound(c.Param("actionId"))
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedContentType):
		return errors.ErrUnsupportedMediaType(detailOf(err, usecaseErrors.ErrUnsupportedContentType))
	case stdErrors.Is(err, usecaseErrors.ErrUploadTooLarge):
		return errors.ErrUploadTooLarge()
	case stdErrors.Is(err, usecaseErrors.ErrInvalidActionFilter):
		return errors.ErrInvalidActionFilter(c.QueryParam("status"))
	case stdErrors.Is(err, usecaseErrors.ErrUploadURLUnavailable):
		return errors.ErrStorageFailed("presign_upload", err)
	case stdErrors.Is(err, usecaseErrors.ErrTeamNotFound):
		return errors.ErrTeamNotFound(teamIDOf(c))
	case stdErrors.Is(err, usecaseErrors.ErrNotTeamMember):
		return errors.ErrNotTeamMember(teamIDOf(c))
	case stdErrors.Is(err, usecaseErrors.ErrAlreadyTeamMember):
		return errors.ErrAlreadyTeamMember(teamIDOf(c))
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInviteCode):
		return errors.ErrInvalidInviteCode()
	case stdErrors.Is(err, usecaseErrors.ErrTeamNameRequired):
		return errors.ErrTeamNameRequired()
	case stdErrors.Is(err, usecaseErrors.ErrInviteCodeRequired):
		return errors.ErrInviteCodeRequired()
	}

	return errors.ErrInternal(err)
}

// detailOf returns the text a use case appended to sentinel with
// fmt.Errorf("%w: <detail>")
func detailOf(err, sentinel error) string {
	if detail, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
		return detail
	}
	return ""
}

func teamIDOf(c echo.Context) string {
	if id := c.Param("teamId"); id != "" {
		return id
	}
	return c.QueryParam("teamId")
}

// HandleSuccess writes a JSON success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	if logger != nil {
		logger.Debug("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(http.StatusOK, data)
}

// HandleError centralizes error handling and logging using provided logger.
// Server-side failures are logged with full detail and answered with a
// generic message.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Int("status", appErr.HTTPCode),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Info("http.response.error", fields...)
		}
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		return c.JSON(appErr.HTTPCode, common.ErrorResponse{
			Error: "Internal server error",
			Code:  appErr.Code,
		})
	}
	return c.JSON(appErr.HTTPCode, common.NewErrorResponse(appErr))
}

// NewHTTPErrorHandler renders errors that escape handlers (unknown routes,
// middleware failures) in the same body shape as HandleError
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code < http.StatusInternalServerError {
			msg := http.StatusText(he.Code)
			if s, ok := he.Message.(string); ok {
				msg = s
			}
			_ = c.JSON(he.Code, common.ErrorResponse{Error: msg})
			return
		}

		_ = HandleError(logger, c, err)
	}
}
