package reminder

import (
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// Class is the urgency bucket of an action item on a given day
type Class string

const (
	ClassOverdue Class = "OVERDUE"
	ClassDueSoon Class = "DUE SOON"
)

// DefaultLeadDays is how far ahead an open deadline counts as due soon
const DefaultLeadDays = 2

// ClassifiedItem is an action item selected for a digest
type ClassifiedItem struct {
	Item  entities.ActionItem
	Class Class
}

// Window holds the calendar dates an item is judged against
type Window struct {
	Today time.Time
	Soon  time.Time
}

// NewWindow truncates now to its UTC calendar date and derives the due-soon limit
func NewWindow(now time.Time, leadDays int) Window {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Today: today, Soon: today.AddDate(0, 0, leadDays)}
}

// Classify returns the urgency of an item. ok is false when the item is
// completed, has no usable deadline, or is not yet due soon.
func (w Window) Classify(item entities.ActionItem) (Class, bool) {
	if item.Completed {
		return "", false
	}
	deadline, ok := item.DeadlineDate()
	if !ok {
		return "", false
	}
	switch {
	case deadline.Before(w.Today):
		return ClassOverdue, true
	case !deadline.After(w.Soon):
		return ClassDueSoon, true
	default:
		return "", false
	}
}
