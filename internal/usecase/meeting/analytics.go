package meeting

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// Debt model constants
const (
	// HourlyRate is the assumed cost of an hour of blocked work
	HourlyRate = 75.0

	// BlockedHoursPerAction is the time one open action item blocks
	BlockedHoursPerAction = 3.2

	// IndustryBenchmark is the typical action item completion rate
	IndustryBenchmark = 0.67

	forgottenAfterDays = 30
	trendWeeks         = 8
)

// DebtBreakdown splits the cost of open action items by cause
type DebtBreakdown struct {
	Forgotten  float64
	Overdue    float64
	Unassigned float64
	AtRisk     float64
}

// DebtPoint is the debt created in the week containing Date
type DebtPoint struct {
	Date string
	Debt float64
}

// DebtAnalytics is the cost of unfinished action items across meetings
type DebtAnalytics struct {
	TotalDebt         float64
	Breakdown         DebtBreakdown
	Trend             []DebtPoint
	CompletionRate    float64
	IndustryBenchmark float64
	TotalActions      int
	CompletedActions  int
	IncompleteActions int
	BlockedHours      float64
	DebtVelocity      float64
}

// DebtAnalytics prices the caller's open action items, or a team's when
// teamID is set
func (s *MeetingService) DebtAnalytics(ctx context.Context, callerID, teamID string) (*DebtAnalytics, error) {
	meetings, err := s.ListMeetings(ctx, callerID, teamID)
	if err != nil {
		return nil, err
	}
	return ComputeDebt(meetings, s.now().UTC()), nil
}

// ComputeDebt prices every open action item at BlockedHoursPerAction hours
// and files it under the first matching cause: older than 30 days, past its
// deadline, without an owner, otherwise at risk.
func ComputeDebt(meetings []*entities.Meeting, now time.Time) *DebtAnalytics {
	cost := BlockedHoursPerAction * HourlyRate
	out := &DebtAnalytics{IndustryBenchmark: IndustryBenchmark}
	var b DebtBreakdown
	weekly := make(map[string]float64)

	for _, m := range meetings {
		for _, item := range m.ActionItems {
			out.TotalActions++
			if item.Completed {
				out.CompletedActions++
				continue
			}
			out.IncompleteActions++

			created, hasCreated := itemCreatedAt(m, item)
			ageDays := 0
			if hasCreated {
				ageDays = int(math.Floor(now.Sub(created).Hours() / 24))
			}

			switch {
			case ageDays > forgottenAfterDays:
				b.Forgotten += cost
			case item.Deadline != "":
				if d, ok := item.DeadlineDate(); ok && d.Before(now) {
					b.Overdue += cost
				} else {
					b.AtRisk += cost
				}
			case item.OwnerOrUnassigned() == entities.UnassignedOwner:
				b.Unassigned += cost
			default:
				b.AtRisk += cost
			}

			if hasCreated {
				weekly[weekKey(created)] += cost
			}
		}
	}

	out.Breakdown = DebtBreakdown{
		Forgotten:  round2(b.Forgotten),
		Overdue:    round2(b.Overdue),
		Unassigned: round2(b.Unassigned),
		AtRisk:     round2(b.AtRisk),
	}
	out.TotalDebt = round2(b.Forgotten + b.Overdue + b.Unassigned + b.AtRisk)
	if out.TotalActions > 0 {
		out.CompletionRate = round2(float64(out.CompletedActions) / float64(out.TotalActions))
	}
	out.BlockedHours = round2(float64(out.IncompleteActions) * BlockedHoursPerAction)

	out.Trend = make([]DebtPoint, 0, trendWeeks)
	for i := trendWeeks - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -7*i)
		out.Trend = append(out.Trend, DebtPoint{
			Date: day.Format(entities.DeadlineLayout),
			Debt: round2(weekly[weekKey(day)]),
		})
	}
	last := len(out.Trend) - 1
	out.DebtVelocity = round2(out.Trend[last].Debt - out.Trend[last-1].Debt)
	return out
}

// itemCreatedAt falls back to the meeting's creation time
func itemCreatedAt(m *entities.Meeting, item entities.ActionItem) (time.Time, bool) {
	if item.CreatedAt != nil && !item.CreatedAt.IsZero() {
		return item.CreatedAt.UTC(), true
	}
	if !m.CreatedAt.IsZero() {
		return m.CreatedAt.UTC(), true
	}
	return time.Time{}, false
}

// weekKey numbers weeks from the first Sunday of the year; days before it
// fall in week 0
func weekKey(t time.Time) string {
	week := (t.YearDay() + 6 - int(t.Weekday())) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
