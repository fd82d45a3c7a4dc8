package domain

// Calendar is the unified calendar resource returned by every connector.
type Calendar struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// ProviderName identifies the backend that produced the calendar.
	ProviderName string `json:"provider_name"`
	// ProfileID and ProfileName are set only by backends with a
	// multi-profile concept.
	ProfileID   string `json:"profile_id,omitempty"`
	ProfileName string `json:"profile_name,omitempty"`

	ReadOnly bool `json:"readonly"`
	Primary  bool `json:"primary"`
	Deleted  bool `json:"deleted"`
}

// CalendarPage is a page of unified calendars plus continuation cursors.
type CalendarPage struct {
	Calendars     []Calendar `json:"calendars"`
	NextPageToken string     `json:"next_page_token,omitempty"`
	// NextSyncToken resumes incremental listing where the backend
	// supports it.
	NextSyncToken string `json:"next_sync_token,omitempty"`
	// Native holds the verbatim upstream item array in raw mode.
	Native any `json:"-"`
}

// CalendarResult is a single unified calendar, or the native payload in
// raw mode.
type CalendarResult struct {
	Calendar *Calendar `json:"calendar"`
	Native   any       `json:"-"`
}
