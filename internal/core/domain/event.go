package domain

import "time"

// Attendee is one entry in an event's guest list.
type Attendee struct {
	Email string `json:"email"`
	// DisplayName is empty, never absent, when the provider omits it.
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
}

// Organizer identifies the event owner.
type Organizer struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Permissions are the three independent rights a caller has on an event.
type Permissions struct {
	Delete                    bool `json:"delete"`
	Update                    bool `json:"update"`
	ChangeParticipationStatus bool `json:"change_participation_status"`
}

// Event is the unified event resource returned by every connector.
type Event struct {
	ID         string `json:"id"`
	CalendarID string `json:"calendar_id"`

	Summary     string `json:"summary"`
	Description string `json:"description"`
	Location    string `json:"location"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Deleted   bool `json:"deleted"`
	Recurring bool `json:"recurring"`
	Private   bool `json:"private"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`

	// MeetingURL is the video conferencing link, empty when none exists.
	MeetingURL string `json:"meeting_url,omitempty"`

	ParticipationStatus string `json:"participation_status"`

	Organizer Organizer `json:"organizer"`
	// Attendees is always a slice, empty when the provider omits the field.
	Attendees []Attendee `json:"attendees"`

	// Transparency and Status are provider strings passed through as-is.
	Transparency string `json:"transparency"`
	Status       string `json:"status"`

	Permissions Permissions `json:"permissions"`
}

// EventPage is a page of unified events plus the continuation cursor.
type EventPage struct {
	Events []Event `json:"events"`
	// NextPageToken is the opaque cursor for the next page, empty on the
	// last page. Meaningful only to the connector that issued it.
	NextPageToken string `json:"next_page_token,omitempty"`
	// Native holds the verbatim upstream item array when the query asked
	// for raw mode; Events is nil in that case.
	Native any `json:"-"`
}

// EventResult is a single unified event, or the native payload in raw mode.
type EventResult struct {
	Event  *Event `json:"event"`
	Native any    `json:"-"`
}

// WatchChannel is the opaque handle for a push-notification subscription.
// Backends that issue two identifiers pack them into ChannelID; the packed
// form is part of the unified contract and must round-trip through
// stop-watch unchanged.
type WatchChannel struct {
	ChannelID string `json:"channel_id"`
}
