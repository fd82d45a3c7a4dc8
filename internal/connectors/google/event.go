package google

import (
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// cancelledStatus is the status Google assigns to deleted events.
const cancelledStatus = "cancelled"

// mapEvent converts a native Calendar API event into the unified shape.
// Pure projection: no network, no state.
func mapEvent(e *calendar.Event, calendarID string) domain.Event {
	return domain.Event{
		ID:                  e.Id,
		CalendarID:          calendarID,
		Summary:             e.Summary,
		Description:         e.Description,
		Location:            e.Location,
		Start:               eventTime(e.Start),
		End:                 eventTime(e.End),
		Deleted:             e.Status == cancelledStatus,
		Recurring:           len(e.Recurrence) > 0 || e.RecurringEventId != "",
		Private:             isPrivate(e.Visibility),
		Created:             parseTimestamp(e.Created),
		Updated:             parseTimestamp(e.Updated),
		MeetingURL:          meetingURL(e.ConferenceData),
		ParticipationStatus: participationStatus(e.Attendees),
		Organizer:           mapOrganizer(e.Organizer),
		Attendees:           mapAttendees(e.Attendees),
		Transparency:        e.Transparency,
		Status:              e.Status,
		Permissions:         mapPermissions(e),
	}
}

// eventTime prefers the timestamp-with-time field and falls back to the
// date-only field for all-day events.
func eventTime(dt *calendar.EventDateTime) time.Time {
	if dt == nil {
		return time.Time{}
	}
	if dt.DateTime != "" {
		return parseTimestamp(dt.DateTime)
	}
	if dt.Date != "" {
		if t, err := time.Parse("2006-01-02", dt.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isPrivate derives the unified privacy flag from the visibility enum.
// Only an explicit "default" or "public" marks an event shareable; any
// other value, including an absent one, fails safe toward privacy.
func isPrivate(visibility string) bool {
	return visibility != "default" && visibility != "public"
}

// meetingURL returns the URI of the first video-type conference entry
// point, empty when none exists.
func meetingURL(cd *calendar.ConferenceData) string {
	if cd == nil {
		return ""
	}
	for _, ep := range cd.EntryPoints {
		if ep != nil && ep.EntryPointType == "video" {
			return ep.Uri
		}
	}
	return ""
}

func mapOrganizer(o *calendar.EventOrganizer) domain.Organizer {
	if o == nil {
		return domain.Organizer{}
	}
	return domain.Organizer{
		Email:       o.Email,
		DisplayName: o.DisplayName,
	}
}

// mapAttendees always returns a slice, empty when the native payload
// omits the field.
func mapAttendees(attendees []*calendar.EventAttendee) []domain.Attendee {
	mapped := make([]domain.Attendee, 0, len(attendees))
	for _, a := range attendees {
		if a == nil {
			continue
		}
		mapped = append(mapped, domain.Attendee{
			Email:       a.Email,
			DisplayName: a.DisplayName,
			Status:      a.ResponseStatus,
		})
	}
	return mapped
}

// participationStatus is the authenticated user's own response status.
func participationStatus(attendees []*calendar.EventAttendee) string {
	for _, a := range attendees {
		if a != nil && a.Self {
			return a.ResponseStatus
		}
	}
	return ""
}

func mapPermissions(e *calendar.Event) domain.Permissions {
	organiserSelf := e.Organizer != nil && e.Organizer.Self

	selfAttendee := false
	for _, a := range e.Attendees {
		if a != nil && a.Self {
			selfAttendee = true
			break
		}
	}

	return domain.Permissions{
		Delete:                    organiserSelf,
		Update:                    organiserSelf || e.GuestsCanModify,
		ChangeParticipationStatus: selfAttendee,
	}
}
