package cronofy

import (
	"time"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// Native event payload shapes as the aggregator returns them.
type nativeEvent struct {
	CalendarID          string              `json:"calendar_id"`
	EventUID            string              `json:"event_uid"`
	Summary             string              `json:"summary"`
	Description         string              `json:"description"`
	Start               string              `json:"start"`
	End                 string              `json:"end"`
	Deleted             bool                `json:"deleted"`
	Created             string              `json:"created"`
	Updated             string              `json:"updated"`
	Recurring           bool                `json:"recurring"`
	EventPrivate        bool                `json:"event_private"`
	ParticipationStatus string              `json:"participation_status"`
	Transparency        string              `json:"transparency"`
	Status              string              `json:"status"`
	MeetingURL          string              `json:"meeting_url"`
	Location            *nativeLocation     `json:"location"`
	Organizer           *nativeContact      `json:"organizer"`
	Attendees           []nativeAttendee    `json:"attendees"`
	Conferencing        *nativeConferencing `json:"conferencing"`
	Options             *nativeOptions      `json:"options"`
}

type nativeLocation struct {
	Description string `json:"description"`
}

type nativeContact struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type nativeAttendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
}

type nativeConferencing struct {
	Profile string `json:"profile_name"`
	JoinURL string `json:"join_url"`
}

// nativeOptions is the aggregator's per-event rights object; it maps
// one-to-one onto the unified permissions.
type nativeOptions struct {
	Delete                    bool `json:"delete"`
	Update                    bool `json:"update"`
	ChangeParticipationStatus bool `json:"change_participation_status"`
}

type nativePages struct {
	Current  int    `json:"current"`
	Total    int    `json:"total"`
	NextPage string `json:"next_page"`
}

// mapEvent converts a native aggregator event into the unified shape.
func mapEvent(e nativeEvent) domain.Event {
	return domain.Event{
		ID:                  e.EventUID,
		CalendarID:          e.CalendarID,
		Summary:             e.Summary,
		Description:         e.Description,
		Location:            locationDescription(e.Location),
		Start:               parseEventTime(e.Start),
		End:                 parseEventTime(e.End),
		Deleted:             e.Deleted,
		Recurring:           e.Recurring,
		Private:             e.EventPrivate,
		Created:             parseEventTime(e.Created),
		Updated:             parseEventTime(e.Updated),
		MeetingURL:          meetingURL(e),
		ParticipationStatus: e.ParticipationStatus,
		Organizer:           mapOrganizer(e.Organizer),
		Attendees:           mapAttendees(e.Attendees),
		Transparency:        e.Transparency,
		Status:              e.Status,
		Permissions:         mapPermissions(e.Options),
	}
}

// parseEventTime handles both timestamped and all-day (date-only) values.
func parseEventTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func locationDescription(l *nativeLocation) string {
	if l == nil {
		return ""
	}
	return l.Description
}

// meetingURL prefers the explicit field and falls back to the
// conferencing join link.
func meetingURL(e nativeEvent) string {
	if e.MeetingURL != "" {
		return e.MeetingURL
	}
	if e.Conferencing != nil {
		return e.Conferencing.JoinURL
	}
	return ""
}

func mapOrganizer(o *nativeContact) domain.Organizer {
	if o == nil {
		return domain.Organizer{}
	}
	return domain.Organizer{Email: o.Email, DisplayName: o.DisplayName}
}

// mapAttendees always returns a slice, empty when the payload omits the
// field.
func mapAttendees(attendees []nativeAttendee) []domain.Attendee {
	mapped := make([]domain.Attendee, 0, len(attendees))
	for _, a := range attendees {
		mapped = append(mapped, domain.Attendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
			Status:      a.Status,
		})
	}
	return mapped
}

func mapPermissions(o *nativeOptions) domain.Permissions {
	if o == nil {
		return domain.Permissions{}
	}
	return domain.Permissions{
		Delete:                    o.Delete,
		Update:                    o.Update,
		ChangeParticipationStatus: o.ChangeParticipationStatus,
	}
}
