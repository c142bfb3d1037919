package domain

import "time"

type ActivityAction string

const (
	ActionLogin  ActivityAction = "login"
	ActionLogout ActivityAction = "logout"
	ActionCreate ActivityAction = "create"
	ActionUpdate ActivityAction = "update"
	ActionDelete ActivityAction = "delete"
)

// Resource names used in activity events and metrics.
const (
	ResourceSession = "session"
	ResourceCompany = "company"
	ResourceContact = "contact"
	ResourceDeal    = "deal"
	ResourceTask    = "task"
	ResourceMeeting = "meeting"
)

// ActivityEvent is one entry of a user's audit trail.
type ActivityEvent struct {
	Username   string         `json:"username"              bson:"username"`
	Action     ActivityAction `json:"action"                bson:"action"`
	Resource   string         `json:"resource"              bson:"resource"`
	ResourceID int64          `json:"resource_id,omitempty" bson:"resource_id,omitempty"`
	RequestID  string         `json:"request_id,omitempty"  bson:"request_id,omitempty"`
	At         time.Time      `json:"at"                    bson:"at"`
}
