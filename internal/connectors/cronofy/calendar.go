package cronofy

import "github.com/custodia-labs/unical/internal/core/domain"

// nativeCalendar is the aggregator's calendar payload. Unlike the direct
// provider it carries profile fields and its own provider_name, because
// the aggregator fronts several underlying calendar services.
type nativeCalendar struct {
	ProviderName     string `json:"provider_name"`
	ProfileID        string `json:"profile_id"`
	ProfileName      string `json:"profile_name"`
	CalendarID       string `json:"calendar_id"`
	CalendarName     string `json:"calendar_name"`
	CalendarReadonly bool   `json:"calendar_readonly"`
	CalendarDeleted  bool   `json:"calendar_deleted"`
	CalendarPrimary  bool   `json:"calendar_primary"`
}

// mapCalendar converts a native aggregator calendar into the unified
// shape. Direct field renames; the flags arrive as booleans already.
func mapCalendar(c nativeCalendar) domain.Calendar {
	return domain.Calendar{
		ID:           c.CalendarID,
		Name:         c.CalendarName,
		ProviderName: c.ProviderName,
		ProfileID:    c.ProfileID,
		ProfileName:  c.ProfileName,
		ReadOnly:     c.CalendarReadonly,
		Primary:      c.CalendarPrimary,
		Deleted:      c.CalendarDeleted,
	}
}
