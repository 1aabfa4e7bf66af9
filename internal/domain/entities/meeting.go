package entities

import (
	"encoding/json"
	"reflect"
	"time"

	"gorm.io/datatypes"

	"github.com/johnquangdev/meetingmind/pkg/extrafields"
)

// Meeting is one uploaded and (eventually) analysed meeting, keyed by
// owner and meeting id. Action items, decisions and follow-ups are
// embedded in the record. Attributes the struct does not model are kept in
// Extra and written back unchanged.
type Meeting struct {
	UserID      string                              `gorm:"type:varchar(128);primaryKey" json:"userId"`
	MeetingID   string                              `gorm:"type:varchar(64);primaryKey" json:"meetingId"`
	Title       string                              `gorm:"type:varchar(255);not null;default:''" json:"title"`
	Status      MeetingStatus                       `gorm:"type:varchar(20);not null;index:idx_meetings_status_created,priority:1" json:"status"`
	TeamID      *string                             `gorm:"type:varchar(64);index:idx_meetings_team_created,priority:1" json:"teamId,omitempty"`
	Email       string                              `gorm:"type:varchar(255)" json:"email,omitempty"`
	S3Key       string                              `gorm:"column:s3_key;type:varchar(512)" json:"s3Key,omitempty"`
	Transcript  *string                             `gorm:"type:text" json:"transcript,omitempty"`
	Summary     string                              `gorm:"type:text" json:"summary,omitempty"`
	ActionItems datatypes.JSONSlice[ActionItem]     `gorm:"type:jsonb;not null;default:'[]'" json:"actionItems,omitempty"`
	Decisions   datatypes.JSONSlice[Note]           `gorm:"type:jsonb;not null;default:'[]'" json:"decisions,omitempty"`
	FollowUps   datatypes.JSONSlice[Note]           `gorm:"type:jsonb;not null;default:'[]'" json:"followUps,omitempty"`
	HealthScore *float64                            `gorm:"type:numeric(6,2)" json:"healthScore,omitempty"`
	HealthGrade string                              `gorm:"type:varchar(4)" json:"healthGrade,omitempty"`
	ROI         datatypes.JSONMap                   `gorm:"column:roi;type:jsonb" json:"roi,omitempty"`
	Autopsy     *string                             `gorm:"type:text" json:"autopsy,omitempty"`
	TTL         *int64                              `gorm:"column:ttl;index" json:"ttl,omitempty"`
	CreatedAt   time.Time                           `gorm:"not null;index:idx_meetings_status_created,priority:2;index:idx_meetings_team_created,priority:2" json:"createdAt"`
	UpdatedAt   *time.Time                          `json:"updatedAt,omitempty"`
	Extra       datatypes.JSONMap                   `gorm:"column:extra;type:jsonb" json:"-"`
}

var meetingFields = extrafields.Names(reflect.TypeOf(Meeting{}))

type meetingJSON Meeting

// MarshalJSON writes the modelled attributes followed by Extra
func (m Meeting) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(meetingJSON(m))
	if err != nil {
		return nil, err
	}
	return extrafields.Merge(data, m.Extra)
}

// UnmarshalJSON decodes the modelled attributes and collects the rest in Extra
func (m *Meeting) UnmarshalJSON(data []byte) error {
	var v meetingJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	extra, err := extrafields.Split(data, meetingFields)
	if err != nil {
		return err
	}
	v.Extra = extra
	*m = Meeting(v)
	return nil
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}

// IsDone reports whether analysis has completed for the meeting
func (m *Meeting) IsDone() bool {
	return m.Status == MeetingStatusDone
}

// IsExpired reports whether a demo record has passed its time-to-live
func (m *Meeting) IsExpired(now time.Time) bool {
	return m.TTL != nil && *m.TTL <= now.Unix()
}

// FindActionItem returns the index of the action item with the given id, or -1
func (m *Meeting) FindActionItem(actionID string) int {
	for i := range m.ActionItems {
		if m.ActionItems[i].ID == actionID {
			return i
		}
	}
	return -1
}

// UnmarshalJSON accepts both the current string form and the object form
// written by older records.
func (s *MeetingStatus) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NormalizeMeetingStatus(raw)
	return nil
}
