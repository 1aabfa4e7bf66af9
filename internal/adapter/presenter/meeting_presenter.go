package presenter

import (
	"github.com/johnquangdev/meetingmind/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/meetingmind/internal/usecase/meeting"
	"github.com/johnquangdev/meetingmind/pkg/extrafields"
)

// ToMeetingResponse converts a Meeting entity to the detail DTO, leaving
// the transcript out. Unmodelled stored attributes are passed through.
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	items := make([]meeting.ActionItemResponse, len(m.ActionItems))
	for i, item := range m.ActionItems {
		items[i] = ToActionItemResponse(item)
	}

	return &meeting.MeetingResponse{
		MeetingID:   m.MeetingID,
		UserID:      m.UserID,
		Title:       m.Title,
		Status:      string(m.Status),
		TeamID:      m.TeamID,
		Email:       m.Email,
		S3Key:       m.S3Key,
		Summary:     m.Summary,
		ActionItems: items,
		Decisions:   notes(m.Decisions),
		FollowUps:   notes(m.FollowUps),
		HealthScore: m.HealthScore,
		HealthGrade: m.HealthGrade,
		ROI:         map[string]interface{}(m.ROI),
		Autopsy:     m.Autopsy,
		TTL:         m.TTL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Extra:       extrafields.Without(m.Extra, "transcript"),
	}
}

// ToActionItemResponse converts an embedded action item
func ToActionItemResponse(a entities.ActionItem) meeting.ActionItemResponse {
	return meeting.ActionItemResponse{
		ID:          a.ID,
		Task:        a.Task,
		Owner:       a.OwnerOrUnassigned(),
		Status:      string(a.EffectiveStatus()),
		Completed:   a.Completed,
		CompletedAt: a.CompletedAt,
		Deadline:    a.Deadline,
		RiskScore:   a.RiskScore,
		RiskLevel:   string(a.RiskLevel),
		CreatedAt:   a.CreatedAt,
		Extra:       extrafields.Without(a.Extra),
	}
}

// ToMeetingListResponse projects meetings to listing rows
func ToMeetingListResponse(meetings []*entities.Meeting) *meeting.ListMeetingsResponse {
	rows := make([]meeting.MeetingSummaryResponse, 0, len(meetings))
	for _, m := range meetings {
		rows = append(rows, meeting.MeetingSummaryResponse{
			MeetingID:   m.MeetingID,
			Title:       m.Title,
			Status:      string(m.Status),
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
			HealthScore: m.HealthScore,
			TeamID:      m.TeamID,
		})
	}
	return &meeting.ListMeetingsResponse{Meetings: rows}
}

// ToListActionsResponse converts an action overview
func ToListActionsResponse(o *meetingUsecase.ActionOverview) *meeting.ListActionsResponse {
	actions := make([]meeting.ActionWithContextResponse, len(o.Actions))
	for i, a := range o.Actions {
		actions[i] = meeting.ActionWithContextResponse{
			ActionItemResponse: ToActionItemResponse(a.ActionItem),
			MeetingID:          a.MeetingID,
			MeetingTitle:       a.MeetingTitle,
			MeetingDate:        a.MeetingDate,
		}
	}
	return &meeting.ListActionsResponse{
		Actions: actions,
		Stats: meeting.ActionStatsResponse{
			Total:          o.Stats.Total,
			Completed:      o.Stats.Completed,
			Incomplete:     o.Stats.Incomplete,
			CompletionRate: o.Stats.CompletionRate,
		},
	}
}

// ToDebtAnalyticsResponse converts debt analytics
func ToDebtAnalyticsResponse(a *meetingUsecase.DebtAnalytics) *meeting.DebtAnalyticsResponse {
	trend := make([]meeting.DebtPointResponse, len(a.Trend))
	for i, p := range a.Trend {
		trend[i] = meeting.DebtPointResponse{Date: p.Date, Debt: p.Debt}
	}
	return &meeting.DebtAnalyticsResponse{
		TotalDebt: a.TotalDebt,
		Breakdown: meeting.DebtBreakdownResponse{
			Forgotten:  a.Breakdown.Forgotten,
			Overdue:    a.Breakdown.Overdue,
			Unassigned: a.Breakdown.Unassigned,
			AtRisk:     a.Breakdown.AtRisk,
		},
		Trend:             trend,
		CompletionRate:    a.CompletionRate,
		IndustryBenchmark: a.IndustryBenchmark,
		TotalActions:      a.TotalActions,
		CompletedActions:  a.CompletedActions,
		IncompleteActions: a.IncompleteActions,
		BlockedHours:      a.BlockedHours,
		DebtVelocity:      a.DebtVelocity,
	}
}

// ToCreateUploadResponse converts an upload registration
func ToCreateUploadResponse(o *meetingUsecase.CreateUploadOutput) *meeting.CreateUploadResponse {
	return &meeting.CreateUploadResponse{
		MeetingID: o.MeetingID,
		UploadURL: o.UploadURL,
		S3Key:     o.S3Key,
	}
}

func notes(in []entities.Note) []interface{} {
	out := make([]interface{}, len(in))
	for i, n := range in {
		out[i] = n.Raw()
	}
	return out
}
