package errors

import "errors"

// Meeting errors
var (
	ErrMeetingNotFound        = errors.New("meeting not found")
	ErrActionItemNotFound     = errors.New("action item not found")
	ErrUnsupportedContentType = errors.New("unsupported content type")
	ErrUploadTooLarge         = errors.New("upload too large")
	ErrInvalidActionFilter    = errors.New("invalid action status filter")
	ErrUploadURLUnavailable   = errors.New("failed to presign upload")
)

// Team errors
var (
	ErrTeamNotFound       = errors.New("team not found")
	ErrNotTeamMember      = errors.New("user is not a member of this team")
	ErrAlreadyTeamMember  = errors.New("user is already a member of this team")
	ErrInvalidInviteCode  = errors.New("invalid invite code")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrInviteCodeRequired = errors.New("invite code is required")
)
