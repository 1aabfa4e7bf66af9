package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// pipelineMeeting decodes a record shaped the way the analysis pipeline
// writes it: string decisions, null deadlines and extra item attributes.
func pipelineMeeting(t *testing.T, userID, email, id, title, items string) *entities.Meeting {
	t.Helper()
	raw := fmt.Sprintf(`{"userId":%q,"email":%q,"meetingId":%q,"title":%q,"status":"DONE",`+
		`"createdAt":"2026-02-10T09:00:00.000001+00:00","decisions":["Ship on Friday"],"followUps":["Check the budget"],`+
		`"actionItems":[%s]}`, userID, email, id, title, items)
	var m entities.Meeting
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return &m
}

func TestBuildDailyDigest(t *testing.T) {
	m := pipelineMeeting(t, "user-1", "alice@example.com", "m-1", "",
		`{"id":"a1","task":"Overdue","deadline":"2026-02-19","completed":false},`+
			`{"id":"a2","task":"Today","deadline":"2026-2-20","completed":false,"riskLevel":"HIGH"},`+
			`{"id":"a3","task":"Tomorrow","deadline":"2026-02-21","completed":false,"owner":"Bob"},`+
			`{"id":"a4","task":"This week","deadline":"2026-02-27","completed":false},`+
			`{"id":"a5","task":"Later","deadline":"2026-02-28","completed":false},`+
			`{"id":"a6","task":"Undated","deadline":null,"completed":false,"epitaph":"rip"},`+
			`{"id":"a7","task":"Done","deadline":"2026-02-19","completed":true}`)

	d := BuildDailyDigest([]*entities.Meeting{m}, jobClock())

	if d.TotalActions != 7 || d.CompletedActions != 1 || d.Incomplete != 6 {
		t.Fatalf("unexpected totals %+v", d)
	}
	if d.CompletionRate != 14.3 {
		t.Fatalf("completion rate = %v, want 14.3", d.CompletionRate)
	}
	if len(d.Overdue) != 1 || d.Overdue[0].Task != "Overdue" || d.Overdue[0].Owner != entities.UnassignedOwner {
		t.Fatalf("unexpected overdue %+v", d.Overdue)
	}
	if len(d.Critical) != 2 || d.Critical[0].RiskLevel != entities.RiskLevelHigh || d.Critical[1].RiskLevel != entities.RiskLevelLow {
		t.Fatalf("unexpected critical %+v", d.Critical)
	}
	if len(d.Upcoming) != 1 || d.Upcoming[0].Task != "This week" || d.Upcoming[0].MeetingTitle != untitledMeetingTitle {
		t.Fatalf("unexpected upcoming %+v", d.Upcoming)
	}
}

func TestDailyDigestRenderCapsSections(t *testing.T) {
	d := DailyDigest{Incomplete: 7, CompletedActions: 3, CompletionRate: 30}
	for i := 0; i < 7; i++ {
		d.Overdue = append(d.Overdue, DigestAction{Task: fmt.Sprintf("task-%d", i), Owner: "Alice", Deadline: "2026-02-01", MeetingTitle: "Planning"})
	}

	out := d.Render()
	if !strings.Contains(out, "Completion: 30.0%   Completed: 3   Pending: 7") {
		t.Fatalf("missing stats line in %q", out)
	}
	if !strings.Contains(out, "task-4") || strings.Contains(out, "task-5") || !strings.Contains(out, "...and 2 more") {
		t.Fatalf("section not capped: %q", out)
	}
	if strings.Contains(out, "Critical") || strings.Contains(out, "Upcoming") {
		t.Fatalf("empty sections rendered: %q", out)
	}
	if d.Subject() != "Daily Action Items Summary: 7 item(s) need attention" {
		t.Fatalf("unexpected subject %q", d.Subject())
	}
}

func TestDigestRunSendsOnePerUser(t *testing.T) {
	repo := &fakeMeetingRepo{byStatus: []*entities.Meeting{
		pipelineMeeting(t, "user-1", "alice@example.com", "m-1", "Planning", `{"id":"a1","task":"Ship API","deadline":"2026-02-19","completed":false}`),
		pipelineMeeting(t, "user-1", "alice@example.com", "m-2", "Retro", `{"id":"a2","task":"Notes","completed":true}`),
		pipelineMeeting(t, "user-2", "bob@example.com", "m-3", "Sync", `{"id":"b1","task":"Closed","completed":true}`),
		pipelineMeeting(t, "user-3", "", "m-4", "No email", `{"id":"c1","task":"Orphan","completed":false}`),
	}}
	ch := &fakeRecipientChannel{}

	report, err := NewDigestService(repo, ch, Config{}, nil).WithClock(jobClock).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Users != 2 || report.Sent != 1 || report.Skipped != 1 || report.Failed != 0 || report.MeetingsScanned != 4 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.Date != "2026-02-20" {
		t.Fatalf("unexpected date %s", report.Date)
	}
	if len(ch.sent) != 1 || ch.sent[0].to != "alice@example.com" {
		t.Fatalf("unexpected deliveries %+v", ch.sent)
	}
	if !strings.Contains(ch.sent[0].message, "Completion: 50.0%") || !strings.Contains(ch.sent[0].message, "Ship API") {
		t.Fatalf("unexpected message %q", ch.sent[0].message)
	}
}

func TestDigestRunCountsFailures(t *testing.T) {
	repo := &fakeMeetingRepo{byStatus: []*entities.Meeting{
		pipelineMeeting(t, "user-1", "alice@example.com", "m-1", "Planning", `{"id":"a1","task":"Ship API","completed":false}`),
		pipelineMeeting(t, "user-2", "bob@example.com", "m-2", "Sync", `{"id":"b1","task":"Review","completed":false}`),
	}}
	ch := &fakeRecipientChannel{failing: map[string]bool{"alice@example.com": true}}

	report, err := NewDigestService(repo, ch, Config{}, nil).WithClock(jobClock).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Sent != 1 || report.Failed != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestDigestRunAbortsOnStoreFailure(t *testing.T) {
	repo := &fakeMeetingRepo{err: errors.New("throttled")}
	ch := &fakeRecipientChannel{}

	if _, err := NewDigestService(repo, ch, Config{}, nil).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(ch.sent) != 0 {
		t.Fatal("nothing should be sent")
	}
}

func TestRunRemindsOnPipelineRecords(t *testing.T) {
	repo := &fakeMeetingRepo{byStatus: []*entities.Meeting{
		pipelineMeeting(t, "user-1", "alice@example.com", "m-1", "Planning",
			`{"id":"a1","task":"Ship API","deadline":"2026-2-19","completed":false,"embedding":[0.1]},`+
				`{"id":"a2","task":"Someday","deadline":null,"completed":false}`),
	}}
	ch := &fakeChannel{}

	report, err := newTestService(repo, ch, nil, Config{LeadDays: 2}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if report.Sent != 1 || len(ch.sent) != 1 || !strings.Contains(ch.sent[0].message, "[OVERDUE] Ship API") {
		t.Fatalf("unexpected result %+v %+v", report, ch.sent)
	}
}
