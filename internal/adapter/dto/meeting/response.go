package meeting

import (
	"encoding/json"
	"time"

	"github.com/johnquangdev/meetingmind/pkg/extrafields"
)

// MeetingResponse is the meeting detail. The transcript is never included;
// stored attributes without a field here are passed through from Extra.
type MeetingResponse struct {
	MeetingID   string                   `json:"meetingId"`
	UserID      string                   `json:"userId"`
	Title       string                   `json:"title"`
	Status      string                   `json:"status"`
	TeamID      *string                  `json:"teamId,omitempty"`
	Email       string                   `json:"email,omitempty"`
	S3Key       string                   `json:"s3Key,omitempty"`
	Summary     string                   `json:"summary,omitempty"`
	ActionItems []ActionItemResponse     `json:"actionItems"`
	Decisions   []interface{}            `json:"decisions"`
	FollowUps   []interface{}            `json:"followUps"`
	HealthScore *float64                 `json:"healthScore,omitempty"`
	HealthGrade string                   `json:"healthGrade,omitempty"`
	ROI         map[string]interface{}   `json:"roi,omitempty"`
	Autopsy     *string                  `json:"autopsy,omitempty"`
	TTL         *int64                   `json:"ttl,omitempty"`
	CreatedAt   time.Time                `json:"createdAt"`
	UpdatedAt   *time.Time               `json:"updatedAt,omitempty"`

	Extra map[string]interface{} `json:"-"`
}

type meetingResponseJSON MeetingResponse

// MarshalJSON writes the declared fields followed by Extra
func (r MeetingResponse) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(meetingResponseJSON(r))
	if err != nil {
		return nil, err
	}
	return extrafields.Merge(data, r.Extra)
}

// ActionItemResponse represents an embedded action item
type ActionItemResponse struct {
	ID          string     `json:"id"`
	Task        string     `json:"task"`
	Owner       string     `json:"owner"`
	Status      string     `json:"status"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	Deadline    string     `json:"deadline,omitempty"`
	RiskScore   float64    `json:"riskScore"`
	RiskLevel   string     `json:"riskLevel,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`

	Extra map[string]interface{} `json:"-"`
}

type actionItemResponseJSON ActionItemResponse

// MarshalJSON writes the declared fields followed by Extra
func (r ActionItemResponse) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(actionItemResponseJSON(r))
	if err != nil {
		return nil, err
	}
	return extrafields.Merge(data, r.Extra)
}

// MeetingSummaryResponse is one row of a meeting listing
type MeetingSummaryResponse struct {
	MeetingID   string     `json:"meetingId"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	HealthScore *float64   `json:"healthScore,omitempty"`
	TeamID      *string    `json:"teamId,omitempty"`
}

// ListMeetingsResponse represents a meeting listing
type ListMeetingsResponse struct {
	Meetings []MeetingSummaryResponse `json:"meetings"`
}

// UpdateActionResponse confirms an action item update
type UpdateActionResponse struct {
	Success   bool   `json:"success"`
	ActionID  string `json:"actionId"`
	Completed bool   `json:"completed"`
}

// ActionWithContextResponse is an action item plus its meeting
type ActionWithContextResponse struct {
	ActionItemResponse
	MeetingID    string     `json:"meetingId"`
	MeetingTitle string     `json:"meetingTitle"`
	MeetingDate  *time.Time `json:"meetingDate,omitempty"`
}

// MarshalJSON flattens the action item next to its meeting context. The
// embedded item's own MarshalJSON would otherwise hide the context fields.
func (r ActionWithContextResponse) MarshalJSON() ([]byte, error) {
	item, err := json.Marshal(r.ActionItemResponse)
	if err != nil {
		return nil, err
	}
	members, err := extrafields.Split(item, nil)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(struct {
		MeetingID    string     `json:"meetingId"`
		MeetingTitle string     `json:"meetingTitle"`
		MeetingDate  *time.Time `json:"meetingDate,omitempty"`
	}{r.MeetingID, r.MeetingTitle, r.MeetingDate})
	if err != nil {
		return nil, err
	}
	return extrafields.Merge(data, members)
}

// ActionStatsResponse counts the items of an overview
type ActionStatsResponse struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Incomplete     int     `json:"incomplete"`
	CompletionRate float64 `json:"completionRate"`
}

// ListActionsResponse represents the action overview
type ListActionsResponse struct {
	Actions []ActionWithContextResponse `json:"actions"`
	Stats   ActionStatsResponse         `json:"stats"`
}

// DebtBreakdownResponse splits the debt by cause, in dollars
type DebtBreakdownResponse struct {
	Forgotten  float64 `json:"forgotten"`
	Overdue    float64 `json:"overdue"`
	Unassigned float64 `json:"unassigned"`
	AtRisk     float64 `json:"atRisk"`
}

// DebtPointResponse is one week of the debt trend
type DebtPointResponse struct {
	Date string  `json:"date"`
	Debt float64 `json:"debt"`
}

// DebtAnalyticsResponse is the cost of unfinished action items
type DebtAnalyticsResponse struct {
	TotalDebt         float64               `json:"totalDebt"`
	Breakdown         DebtBreakdownResponse `json:"breakdown"`
	Trend             []DebtPointResponse   `json:"trend"`
	CompletionRate    float64               `json:"completionRate"`
	IndustryBenchmark float64               `json:"industryBenchmark"`
	TotalActions      int                   `json:"totalActions"`
	CompletedActions  int                   `json:"completedActions"`
	IncompleteActions int                   `json:"incompleteActions"`
	BlockedHours      float64               `json:"blockedHours"`
	DebtVelocity      float64               `json:"debtVelocity"`
}

// CreateUploadResponse tells the client where to PUT the audio
type CreateUploadResponse struct {
	MeetingID string `json:"meetingId"`
	UploadURL string `json:"uploadUrl"`
	S3Key     string `json:"s3Key"`
}
