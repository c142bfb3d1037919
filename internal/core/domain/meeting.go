package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type MeetingType string

const (
	MeetingInPerson MeetingType = "in_person"
	MeetingVirtual  MeetingType = "virtual"
	MeetingPhone    MeetingType = "phone"
)

type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingInProgress MeetingStatus = "in_progress"
	MeetingCompleted  MeetingStatus = "completed"
	MeetingCancelled  MeetingStatus = "cancelled"
)

// DefaultMeetingDuration is used when a write omits duration.
const DefaultMeetingDuration = 60

// currentUserMarker is how the backend flags the requesting user in a
// participant list when they are not a listed contact.
const currentUserMarker = "current_user"

// ParticipantRef is one entry of a meeting participant list: either a
// contact id or the current-user marker.
type ParticipantRef struct {
	ContactID   int64
	CurrentUser bool
}

// ParticipantContact returns a ParticipantRef for a contact id.
func ParticipantContact(id int64) ParticipantRef { return ParticipantRef{ContactID: id} }

func (p ParticipantRef) MarshalJSON() ([]byte, error) {
	if p.CurrentUser {
		return json.Marshal(currentUserMarker)
	}
	return []byte(strconv.FormatInt(p.ContactID, 10)), nil
}

func (p *ParticipantRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s != currentUserMarker {
			return fmt.Errorf("participant: unexpected marker %q", s)
		}
		*p = ParticipantRef{CurrentUser: true}
		return nil
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("participant: %w", err)
	}
	*p = ParticipantRef{ContactID: id}
	return nil
}

// Meeting mirrors the read payload of the backend meeting views. The filter
// endpoint returns a subset of these fields.
type Meeting struct {
	ID           int64            `json:"id,omitempty"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	DateTime     time.Time        `json:"date_time"`
	Duration     int              `json:"duration"`
	Location     string           `json:"location,omitempty"`
	MeetingType  MeetingType      `json:"meeting_type,omitempty"`
	Status       MeetingStatus    `json:"status,omitempty"`
	Deal         *int64           `json:"deal"`
	DealTitle    string           `json:"deal_title,omitempty"`
	Company      *int64           `json:"company"`
	CompanyName  string           `json:"company_name,omitempty"`
	Participants []ParticipantRef `json:"participants"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
	Upcoming     bool             `json:"is_upcoming,omitempty"`
}

// EndTime is the scheduled end of the meeting.
func (m Meeting) EndTime() time.Time {
	return m.DateTime.Add(time.Duration(m.Duration) * time.Minute)
}

// IsUpcoming reports whether the meeting starts after now and is still open.
func (m Meeting) IsUpcoming(now time.Time) bool {
	if m.Status == MeetingCompleted || m.Status == MeetingCancelled {
		return false
	}
	return m.DateTime.After(now)
}

// MeetingAck is the envelope returned by the meeting write endpoints.
type MeetingAck struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	MeetingID int64  `json:"meeting_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// MeetingCount is the response of the today's-meetings endpoint.
type MeetingCount struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Date    string `json:"date"`
}

// MeetingFilter selects meetings by deal, company and/or status. Zero
// values are not sent.
type MeetingFilter struct {
	Deal    int64         `query:"deal"`
	Company int64         `query:"company"`
	Status  MeetingStatus `query:"status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
}
