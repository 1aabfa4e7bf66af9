package entities

import "strings"

// ActionStatus is the workflow status of an action item. Completion is
// judged by ActionItem.Completed, so this value may lag behind it.
type ActionStatus string

const (
	ActionStatusTodo       ActionStatus = "todo"
	ActionStatusInProgress ActionStatus = "in_progress"
	ActionStatusBlocked    ActionStatus = "blocked"
	ActionStatusDone       ActionStatus = "done"
)

// IsValid reports whether s is a known action status
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusTodo, ActionStatusInProgress, ActionStatusBlocked, ActionStatusDone:
		return true
	}
	return false
}

// MeetingStatus is the processing status of a meeting record
type MeetingStatus string

const (
	MeetingStatusPending      MeetingStatus = "PENDING"
	MeetingStatusTranscribing MeetingStatus = "TRANSCRIBING"
	MeetingStatusAnalyzing    MeetingStatus = "ANALYZING"
	MeetingStatusDone         MeetingStatus = "DONE"
	MeetingStatusFailed       MeetingStatus = "FAILED"
)

// IsValid reports whether s is a known meeting status
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingStatusPending, MeetingStatusTranscribing, MeetingStatusAnalyzing,
		MeetingStatusDone, MeetingStatusFailed:
		return true
	}
	return false
}

// RiskLevel grades how likely an action item is to slip
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// IsValid reports whether l is a known risk level
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	}
	return false
}

// TeamRole is a member's role inside a team
type TeamRole string

const (
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
	// TeamRoleOwner is written for the creator of a team
	TeamRoleOwner TeamRole = "owner"
)

// IsValid reports whether r is a known team role
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleAdmin, TeamRoleMember, TeamRoleOwner:
		return true
	}
	return false
}

// NormalizeMeetingStatus maps the shapes older records used for status
// (plain string, {"S": "..."} or {"value": "..."}) onto a MeetingStatus.
// Unknown values are returned upper-cased rather than rejected.
func NormalizeMeetingStatus(raw interface{}) MeetingStatus {
	switch v := raw.(type) {
	case string:
		return MeetingStatus(strings.ToUpper(strings.TrimSpace(v)))
	case MeetingStatus:
		return NormalizeMeetingStatus(string(v))
	case map[string]interface{}:
		for _, key := range []string{"S", "value", "Value", "status"} {
			if inner, ok := v[key]; ok {
				return NormalizeMeetingStatus(inner)
			}
		}
	case map[string]string:
		for _, key := range []string{"S", "value", "Value", "status"} {
			if inner, ok := v[key]; ok {
				return NormalizeMeetingStatus(inner)
			}
		}
	}
	return ""
}
