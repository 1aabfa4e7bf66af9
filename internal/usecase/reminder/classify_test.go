package reminder

import (
	"testing"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

func TestWindowClassify(t *testing.T) {
	window := NewWindow(time.Date(2026, 2, 20, 23, 59, 0, 0, time.UTC), DefaultLeadDays)

	tests := []struct {
		name      string
		item      entities.ActionItem
		wantClass Class
		wantOK    bool
	}{
		{"yesterday is overdue", entities.ActionItem{Deadline: "2026-02-19"}, ClassOverdue, true},
		{"today is due soon", entities.ActionItem{Deadline: "2026-02-20"}, ClassDueSoon, true},
		{"limit day is due soon", entities.ActionItem{Deadline: "2026-02-22"}, ClassDueSoon, true},
		{"after limit is skipped", entities.ActionItem{Deadline: "2026-02-23"}, "", false},
		{"completed overdue is skipped", entities.ActionItem{Deadline: "2026-02-19", Completed: true}, "", false},
		{"missing deadline", entities.ActionItem{}, "", false},
		{"wrong layout", entities.ActionItem{Deadline: "20/02/2026"}, "", false},
		{"impossible date", entities.ActionItem{Deadline: "2026-02-30"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, ok := window.Classify(tt.item)
			if ok != tt.wantOK || class != tt.wantClass {
				t.Fatalf("Classify(%q) = (%q, %v), want (%q, %v)", tt.item.Deadline, class, ok, tt.wantClass, tt.wantOK)
			}
		})
	}
}

func TestNewWindowUsesUTCDate(t *testing.T) {
	// 01:00 on the 21st in UTC+3 is still the 20th in UTC
	loc := time.FixedZone("UTC+3", 3*60*60)
	window := NewWindow(time.Date(2026, 2, 21, 1, 0, 0, 0, loc), 2)

	if got := window.Today.Format(entities.DeadlineLayout); got != "2026-02-20" {
		t.Fatalf("today = %s, want 2026-02-20", got)
	}
	if got := window.Soon.Format(entities.DeadlineLayout); got != "2026-02-22" {
		t.Fatalf("soon = %s, want 2026-02-22", got)
	}
}

func TestBuildDigest(t *testing.T) {
	meeting := &entities.Meeting{MeetingID: "m-1", Title: "Sprint Planning"}
	items := []ClassifiedItem{
		{Item: entities.ActionItem{Task: "Ship API", Owner: "Alice", Deadline: "2026-02-19"}, Class: ClassOverdue},
		{Item: entities.ActionItem{Task: "Write docs", Deadline: "2026-02-21"}, Class: ClassDueSoon},
	}

	digest := BuildDigest(meeting, items)

	if digest.Subject != "MeetingMind Reminder: 2 action item(s) need attention" {
		t.Fatalf("unexpected subject %q", digest.Subject)
	}
	want := "📋 Action Item Reminder — Sprint Planning\n" +
		"\n  [OVERDUE] Ship API\n" +
		"     Owner: Alice\n" +
		"     Due:   2026-02-19\n" +
		"\n  [DUE SOON] Write docs\n" +
		"     Owner: Unassigned\n" +
		"     Due:   2026-02-21\n"
	if digest.Message != want {
		t.Fatalf("unexpected message:\n%q\nwant:\n%q", digest.Message, want)
	}
	if digest.MeetingID != "m-1" {
		t.Fatalf("unexpected meeting id %q", digest.MeetingID)
	}
}

func TestBuildDigestDefaults(t *testing.T) {
	digest := BuildDigest(&entities.Meeting{}, []ClassifiedItem{
		{Item: entities.ActionItem{Deadline: "2026-02-19"}, Class: ClassOverdue},
	})

	want := "📋 Action Item Reminder — Unknown Meeting\n\n  [OVERDUE] ?\n     Owner: Unassigned\n     Due:   2026-02-19\n"
	if digest.Message != want {
		t.Fatalf("unexpected message %q", digest.Message)
	}
}
