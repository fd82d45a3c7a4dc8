package domain

import "time"

// Query carries the request parameters recognised by connector operations.
// Each backend independently clamps the window and page size to its own
// supported range, silently narrowing out-of-range values rather than
// failing.
type Query struct {
	// CalendarID scopes event queries to one calendar.
	CalendarID string
	// EventID targets a single event.
	EventID string
	// ChannelID targets a watch channel for teardown. For backends that
	// pack two identifiers this is the packed form.
	ChannelID string
	// CallbackURL is where the provider delivers watch notifications.
	CallbackURL string
	// TimeZone interprets naive date boundaries.
	TimeZone string
	// From and To are the inclusive window bounds.
	From time.Time
	To   time.Time
	// LastModified filters to records changed since the given instant.
	LastModified time.Time
	// PageToken is the opaque cursor echoed from a prior response.
	PageToken string
	// SyncToken resumes an incremental calendar listing.
	SyncToken string
	// MaxResults is the page size, capped at a backend-specific ceiling.
	MaxResults int64
	// Raw bypasses field mapping and returns the upstream payload
	// verbatim on the Native field of the result.
	Raw bool
}
