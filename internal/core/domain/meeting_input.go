package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// LocalTimeLayout is the zone-less ISO layout the meeting views accept.
const LocalTimeLayout = "2006-01-02T15:04:05"

var localTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// LocalTime is a wall-clock meeting time. It is sent without a zone, the
// backend localises it itself, and it parses both zoned and naive input.
// A zoned input keeps its wall clock and drops the offset.
type LocalTime struct {
	time.Time
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(LocalTimeLayout))
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date_time: %w", err)
	}
	for _, layout := range localTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("date_time: cannot parse %q", s)
}

// OptionalID is a nullable foreign key that remembers whether the caller
// sent it at all. Absent keys are left out of the request; an explicit
// null is forwarded so the backend clears the link.
type OptionalID struct {
	Set bool
	ID  *int64
}

// SetID returns an OptionalID linking to id.
func SetID(id int64) OptionalID { return OptionalID{Set: true, ID: &id} }

// IsZero reports whether the key was absent.
func (o OptionalID) IsZero() bool { return !o.Set }

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.ID == nil {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(*o.ID, 10)), nil
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.ID = nil
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}

// MeetingInput is the write payload of the meeting views. Only the keys
// the caller sent are forwarded: the update view changes exactly the keys
// present in the body.
type MeetingInput struct {
	Title        *string           `json:"title,omitempty"        validate:"omitempty,min=1,max=200"`
	Description  *string           `json:"description,omitempty"`
	DateTime     *LocalTime        `json:"date_time,omitempty"`
	Duration     *int              `json:"duration,omitempty"     validate:"omitempty,gt=0"`
	Location     *string           `json:"location,omitempty"`
	MeetingType  *MeetingType      `json:"meeting_type,omitempty" validate:"omitempty,oneof=in_person virtual phone"`
	Status       *MeetingStatus    `json:"status,omitempty"       validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	Deal         OptionalID        `json:"deal,omitzero"`
	Company      OptionalID        `json:"company,omitzero"`
	Participants *[]ParticipantRef `json:"participants,omitempty"`
}

// MissingForCreate lists the JSON names of the fields the create view
// reads unconditionally and that have no default.
func (in *MeetingInput) MissingForCreate() []string {
	var missing []string
	if in.Title == nil {
		missing = append(missing, "title")
	}
	if in.DateTime == nil {
		missing = append(missing, "date_time")
	}
	return missing
}

// ApplyCreateDefaults fills the keys the create view requires but a
// caller may omit.
func (in *MeetingInput) ApplyCreateDefaults() {
	if in.Duration == nil {
		d := DefaultMeetingDuration
		in.Duration = &d
	}
	if in.MeetingType == nil {
		t := MeetingInPerson
		in.MeetingType = &t
	}
	if in.Status == nil {
		s := MeetingScheduled
		in.Status = &s
	}
	if in.Participants == nil || *in.Participants == nil {
		empty := []ParticipantRef{}
		in.Participants = &empty
	}
}

// normalize turns an explicit participants null into an absent key; the
// views iterate over the list whenever the key is present.
func (in *MeetingInput) normalize() {
	if in.Participants != nil && *in.Participants == nil {
		in.Participants = nil
	}
}

// MarshalJSON drops a null participants list before encoding.
func (in MeetingInput) MarshalJSON() ([]byte, error) {
	in.normalize()
	type plain MeetingInput
	return json.Marshal(plain(in))
}
