package google

import (
	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// mapCalendar converts a native calendar-list entry into the unified
// shape. Google has no multi-profile concept, so the profile fields stay
// empty.
func mapCalendar(entry *calendar.CalendarListEntry) domain.Calendar {
	name := entry.Summary
	if entry.SummaryOverride != "" {
		name = entry.SummaryOverride
	}

	return domain.Calendar{
		ID:           entry.Id,
		Name:         name,
		ProviderName: Name,
		ReadOnly:     isReadOnly(entry.AccessRole),
		Primary:      entry.Primary,
		Deleted:      entry.Deleted,
	}
}

// isReadOnly derives the unified read-only flag from the access-role
// enum. Only "writer" and "owner" grant writes; unknown roles fail safe
// toward read-only.
func isReadOnly(accessRole string) bool {
	return accessRole != "writer" && accessRole != "owner"
}
