package meeting

import (
	"context"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// Service defines the interface for meeting use case
type Service interface {
	// GetMeeting retrieves one of the caller's meetings
	GetMeeting(ctx context.Context, callerID, meetingID string) (*entities.Meeting, error)

	// ListMeetings lists the caller's meetings, or a team's when teamID is set
	ListMeetings(ctx context.Context, callerID, teamID string) ([]*entities.Meeting, error)

	// UpdateActionCompletion marks an embedded action item complete or open
	UpdateActionCompletion(ctx context.Context, input UpdateActionInput) (*entities.ActionItem, error)

	// ListActions flattens action items across meetings with filters applied
	ListActions(ctx context.Context, input ListActionsInput) (*ActionOverview, error)

	// DebtAnalytics prices unfinished action items for the caller or a team
	DebtAnalytics(ctx context.Context, callerID, teamID string) (*DebtAnalytics, error)

	// CreateUpload registers a pending meeting and returns where to upload its audio
	CreateUpload(ctx context.Context, input CreateUploadInput) (*CreateUploadOutput, error)
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
