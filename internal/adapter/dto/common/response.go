package common

import "github.com/johnquangdev/meetingmind/errors"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    errors.ErrorCode  `json:"code,omitempty" swaggertype:"integer"`
	Details map[string]string `json:"details,omitempty"`
}

// NewErrorResponse builds the client-facing body of an AppError. The raw
// cause is never included.
func NewErrorResponse(appErr errors.AppError) ErrorResponse {
	return ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}
}

// HealthResponse represents the health check body
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Store       string `json:"store"`
}
