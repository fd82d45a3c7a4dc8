package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/calendar/v3"
)

func TestMapCalendar_ReadOnlyDerivation(t *testing.T) {
	tests := []struct {
		accessRole string
		want       bool
	}{
		{"owner", false},
		{"writer", false},
		{"reader", true},
		{"freeBusyReader", true},
		{"", true},
		{"mystery-role", true},
	}

	for _, tt := range tests {
		t.Run("accessRole="+tt.accessRole, func(t *testing.T) {
			mapped := mapCalendar(&calendar.CalendarListEntry{Id: "cal", AccessRole: tt.accessRole})
			assert.Equal(t, tt.want, mapped.ReadOnly)
		})
	}
}

func TestMapCalendar_Fields(t *testing.T) {
	entry := &calendar.CalendarListEntry{
		Id:         "team@group.calendar.google.com",
		Summary:    "Team",
		AccessRole: "owner",
		Primary:    true,
	}

	mapped := mapCalendar(entry)

	assert.Equal(t, "team@group.calendar.google.com", mapped.ID)
	assert.Equal(t, "Team", mapped.Name)
	assert.Equal(t, "google", mapped.ProviderName)
	assert.True(t, mapped.Primary)
	assert.False(t, mapped.Deleted)
	assert.Empty(t, mapped.ProfileID)
	assert.Empty(t, mapped.ProfileName)
}

func TestMapCalendar_SummaryOverride(t *testing.T) {
	entry := &calendar.CalendarListEntry{
		Id:              "cal",
		Summary:         "Holidays in Ireland",
		SummaryOverride: "Bank Holidays",
		AccessRole:      "reader",
	}

	assert.Equal(t, "Bank Holidays", mapCalendar(entry).Name)
}
