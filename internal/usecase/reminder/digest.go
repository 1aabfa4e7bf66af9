package reminder

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

const unknownMeetingTitle = "Unknown Meeting"

// Digest is one notification covering a single meeting
type Digest struct {
	MeetingID string
	Subject   string
	Message   string
}

// BuildDigest renders the plain-text reminder for a meeting's classified items
func BuildDigest(meeting *entities.Meeting, items []ClassifiedItem) Digest {
	title := meeting.Title
	if title == "" {
		title = unknownMeetingTitle
	}

	lines := make([]string, 0, 1+3*len(items))
	lines = append(lines, fmt.Sprintf("📋 Action Item Reminder — %s\n", title))
	for _, ci := range items {
		task := ci.Item.Task
		if task == "" {
			task = "?"
		}
		lines = append(lines,
			fmt.Sprintf("  [%s] %s", ci.Class, task),
			fmt.Sprintf("     Owner: %s", ci.Item.OwnerOrUnassigned()),
			fmt.Sprintf("     Due:   %s\n", ci.Item.Deadline),
		)
	}

	return Digest{
		MeetingID: meeting.MeetingID,
		Subject:   fmt.Sprintf("MeetingMind Reminder: %d action item(s) need attention", len(items)),
		Message:   strings.Join(lines, "\n"),
	}
}
