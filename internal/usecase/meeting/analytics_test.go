package meeting

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/meetingmind/internal/usecase/errors"
)

func debtMeeting() *entities.Meeting {
	longAgo := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return &entities.Meeting{
		UserID:    "user-1",
		MeetingID: "m-debt",
		Title:     "Roadmap",
		Status:    entities.MeetingStatusDone,
		CreatedAt: time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC),
		ActionItems: datatypes.JSONSlice[entities.ActionItem]{
			{ID: "d1", Task: "Closed", Completed: true},
			{ID: "d2", Task: "Late", Owner: "Alice", Deadline: "2026-02-19"},
			{ID: "d3", Task: "Next week", Owner: "Alice", Deadline: "2026-2-25"},
			{ID: "d4", Task: "Nobody", Owner: entities.UnassignedOwner},
			{ID: "d5", Task: "Owned", Owner: "Bob"},
			{ID: "d6", Task: "Ancient", Owner: "Bob", Deadline: "2026-03-01", CreatedAt: &longAgo},
		},
	}
}

func TestComputeDebt(t *testing.T) {
	got := ComputeDebt([]*entities.Meeting{debtMeeting()}, fixedNow)

	if got.TotalActions != 6 || got.CompletedActions != 1 || got.IncompleteActions != 5 {
		t.Fatalf("unexpected counts %+v", got)
	}
	want := DebtBreakdown{Forgotten: 240, Overdue: 240, Unassigned: 240, AtRisk: 480}
	if got.Breakdown != want {
		t.Fatalf("breakdown = %+v, want %+v", got.Breakdown, want)
	}
	if got.TotalDebt != 1200 || got.BlockedHours != 16 {
		t.Fatalf("total debt %v, blocked hours %v", got.TotalDebt, got.BlockedHours)
	}
	if got.CompletionRate != 0.17 || got.IndustryBenchmark != 0.67 {
		t.Fatalf("rate %v vs benchmark %v", got.CompletionRate, got.IndustryBenchmark)
	}

	if len(got.Trend) != 8 {
		t.Fatalf("expected 8 trend points, got %d", len(got.Trend))
	}
	if p := got.Trend[7]; p.Date != "2026-02-20" || p.Debt != 960 {
		t.Fatalf("unexpected current week %+v", p)
	}
	if p := got.Trend[1]; p.Date != "2026-01-09" || p.Debt != 240 {
		t.Fatalf("unexpected week of the old item %+v", p)
	}
	if got.Trend[6].Debt != 0 || got.DebtVelocity != 960 {
		t.Fatalf("unexpected velocity %v over %+v", got.DebtVelocity, got.Trend[6])
	}
}

func TestComputeDebtEmpty(t *testing.T) {
	got := ComputeDebt(nil, fixedNow)
	if got.TotalDebt != 0 || got.CompletionRate != 0 || got.DebtVelocity != 0 || len(got.Trend) != 8 {
		t.Fatalf("unexpected analytics %+v", got)
	}
	if got.Trend[0].Date != "2026-01-02" {
		t.Fatalf("oldest trend point = %s", got.Trend[0].Date)
	}
}

func TestWeekKeyStartsOnSunday(t *testing.T) {
	cases := map[string]string{
		"2026-01-03": "2026-W00",
		"2026-01-04": "2026-W01",
		"2026-01-10": "2026-W01",
		"2026-02-15": "2026-W07",
		"2026-02-20": "2026-W07",
	}
	for day, want := range cases {
		d, _ := time.Parse(entities.DeadlineLayout, day)
		if got := weekKey(d); got != want {
			t.Fatalf("weekKey(%s) = %s, want %s", day, got, want)
		}
	}
}

func TestDebtAnalyticsForTeamRequiresMembership(t *testing.T) {
	teams := &fakeTeamRepo{teams: map[string]*entities.Team{
		"team-1": {TeamID: "team-1", Members: []entities.Member{{UserID: "user-1"}}},
	}}
	svc := newTestService(newFakeMeetingRepo(sampleMeeting(), debtMeeting()), teams, nil, Options{})

	got, err := svc.DebtAnalytics(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalActions != 9 {
		t.Fatalf("expected the caller's 9 items, got %d", got.TotalActions)
	}

	got, err = svc.DebtAnalytics(context.Background(), "user-1", "team-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalActions != 3 {
		t.Fatalf("expected the team's 3 items, got %d", got.TotalActions)
	}

	if _, err := svc.DebtAnalytics(context.Background(), "outsider", "team-1"); !errors.Is(err, usecaseErrors.ErrNotTeamMember) {
		t.Fatalf("expected ErrNotTeamMember, got %v", err)
	}
}
