package errors

import "fmt"

// ErrorCode is the numeric code carried in every error response body
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED ErrorCode = 0
	ErrorCode_HTTP_OK     ErrorCode = 200

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	// Meetings
	ErrorCode_MEETING_NOT_FOUND      ErrorCode = 3000
	ErrorCode_ACTION_ITEM_NOT_FOUND  ErrorCode = 3001
	ErrorCode_UNSUPPORTED_MEDIA_TYPE ErrorCode = 3002
	ErrorCode_UPLOAD_TOO_LARGE       ErrorCode = 3003
	ErrorCode_INVALID_ACTION_FILTER  ErrorCode = 3004

	// Teams
	ErrorCode_TEAM_NOT_FOUND       ErrorCode = 4000
	ErrorCode_NOT_TEAM_MEMBER      ErrorCode = 4001
	ErrorCode_ALREADY_TEAM_MEMBER  ErrorCode = 4002
	ErrorCode_INVALID_INVITE_CODE  ErrorCode = 4003
	ErrorCode_TEAM_NAME_REQUIRED   ErrorCode = 4004
	ErrorCode_INVITE_CODE_REQUIRED ErrorCode = 4005

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 5000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                "UNSPECIFIED",
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                  "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:             "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:          "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:            "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                  "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:            "INVALID_PAYLOAD",
	ErrorCode_AUTH_INVALID_TOKEN:         "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:         "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:          "MEETING_NOT_FOUND",
	ErrorCode_ACTION_ITEM_NOT_FOUND:      "ACTION_ITEM_NOT_FOUND",
	ErrorCode_UNSUPPORTED_MEDIA_TYPE:     "UNSUPPORTED_MEDIA_TYPE",
	ErrorCode_UPLOAD_TOO_LARGE:           "UPLOAD_TOO_LARGE",
	ErrorCode_INVALID_ACTION_FILTER:      "INVALID_ACTION_FILTER",
	ErrorCode_TEAM_NOT_FOUND:             "TEAM_NOT_FOUND",
	ErrorCode_NOT_TEAM_MEMBER:            "NOT_TEAM_MEMBER",
	ErrorCode_ALREADY_TEAM_MEMBER:        "ALREADY_TEAM_MEMBER",
	ErrorCode_INVALID_INVITE_CODE:        "INVALID_INVITE_CODE",
	ErrorCode_TEAM_NAME_REQUIRED:         "TEAM_NAME_REQUIRED",
	ErrorCode_INVITE_CODE_REQUIRED:       "INVITE_CODE_REQUIRED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}
