package entities

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/johnquangdev/meetingmind/pkg/extrafields"
)

// UnassignedOwner is shown when an action item has no owner
const UnassignedOwner = "Unassigned"

// DeadlineLayout is the calendar-date layout action item deadlines use
const DeadlineLayout = "2006-01-02"

// deadlineLayouts also admits unpadded month and day, e.g. 2026-2-5
var deadlineLayouts = []string{DeadlineLayout, "2006-1-2"}

// ActionItem is a task extracted from a meeting, embedded in the meeting
// record. Attributes added by other producers (embedding, epitaph) live in
// Extra.
type ActionItem struct {
	ID          string       `json:"id"`
	Task        string       `json:"task"`
	Owner       string       `json:"owner,omitempty"`
	Status      ActionStatus `json:"status,omitempty"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completedAt"`
	Deadline    string       `json:"deadline,omitempty"`
	RiskScore   float64      `json:"riskScore,omitempty"`
	RiskLevel   RiskLevel    `json:"riskLevel,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`

	Extra map[string]interface{} `json:"-"`
}

var actionItemFields = extrafields.Names(reflect.TypeOf(ActionItem{}))

type actionItemJSON ActionItem

// MarshalJSON writes the modelled attributes followed by Extra
func (a ActionItem) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(actionItemJSON(a))
	if err != nil {
		return nil, err
	}
	return extrafields.Merge(data, a.Extra)
}

// UnmarshalJSON decodes the modelled attributes and collects the rest in Extra
func (a *ActionItem) UnmarshalJSON(data []byte) error {
	var v actionItemJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := extrafields.Split(data, actionItemFields)
	if err != nil {
		return err
	}
	v.Extra = extra
	*a = ActionItem(v)
	return nil
}

// OwnerOrUnassigned returns the owner name, or the sentinel when empty
func (a ActionItem) OwnerOrUnassigned() string {
	if strings.TrimSpace(a.Owner) == "" {
		return UnassignedOwner
	}
	return a.Owner
}

// DeadlineDate parses the deadline as a UTC calendar date. ok is false when
// the deadline is absent or not a valid date.
func (a ActionItem) DeadlineDate() (date time.Time, ok bool) {
	if a.Deadline == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if d, err := time.Parse(layout, a.Deadline); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// EffectiveStatus returns the stored status, or one derived from the
// completed flag when the record carries none.
func (a ActionItem) EffectiveStatus() ActionStatus {
	if a.Status != "" {
		return a.Status
	}
	if a.Completed {
		return ActionStatusDone
	}
	return ActionStatusTodo
}

// SetCompleted toggles completion and keeps status and completedAt in step
func (a *ActionItem) SetCompleted(completed bool, now time.Time) {
	a.Completed = completed
	if completed {
		t := now.UTC()
		a.CompletedAt = &t
		a.Status = ActionStatusDone
		return
	}
	a.CompletedAt = nil
	if a.Status == ActionStatusDone {
		a.Status = ActionStatusTodo
	}
}
