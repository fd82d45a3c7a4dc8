package cronofy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapEvent_AttendeesNeverNil(t *testing.T) {
	mapped := mapEvent(nativeEvent{EventUID: "evt-1"})

	assert.NotNil(t, mapped.Attendees)
	assert.Empty(t, mapped.Attendees)
}

func TestMapEvent_FullProjection(t *testing.T) {
	event := nativeEvent{
		CalendarID:          "cal_123",
		EventUID:            "evt_456",
		Summary:             "Board meeting",
		Description:         "Agenda attached",
		Start:               "2026-08-26T09:30:00Z",
		End:                 "2026-08-26T10:30:00Z",
		Created:             "2026-08-01T08:00:00Z",
		Updated:             "2026-08-20T12:00:00Z",
		Recurring:           true,
		EventPrivate:        true,
		ParticipationStatus: "needs_action",
		Transparency:        "opaque",
		Status:              "confirmed",
		Location:            &nativeLocation{Description: "Boardroom"},
		Organizer:           &nativeContact{Email: "chair@example.com", DisplayName: "Chair"},
		Attendees: []nativeAttendee{
			{Email: "a@example.com", Status: "accepted"},
			{Email: "b@example.com", DisplayName: "B", Status: "declined"},
		},
		Options: &nativeOptions{Delete: true, Update: false, ChangeParticipationStatus: true},
	}

	mapped := mapEvent(event)

	assert.Equal(t, "evt_456", mapped.ID)
	assert.Equal(t, "cal_123", mapped.CalendarID)
	assert.Equal(t, "Board meeting", mapped.Summary)
	assert.Equal(t, "Boardroom", mapped.Location)
	assert.Equal(t, time.Date(2026, 8, 26, 9, 30, 0, 0, time.UTC), mapped.Start)
	assert.True(t, mapped.Recurring)
	assert.True(t, mapped.Private)
	assert.Equal(t, "needs_action", mapped.ParticipationStatus)
	assert.Equal(t, "Chair", mapped.Organizer.DisplayName)

	// Display names missing upstream map to empty string, never absent.
	assert.Equal(t, "", mapped.Attendees[0].DisplayName)
	assert.Equal(t, "B", mapped.Attendees[1].DisplayName)

	assert.True(t, mapped.Permissions.Delete)
	assert.False(t, mapped.Permissions.Update)
	assert.True(t, mapped.Permissions.ChangeParticipationStatus)
}

func TestMapEvent_AllDayDateFallback(t *testing.T) {
	mapped := mapEvent(nativeEvent{
		EventUID: "evt",
		Start:    "2026-08-26",
		End:      "2026-08-27",
	})

	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), mapped.Start)
	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), mapped.End)
}

func TestMeetingURL(t *testing.T) {
	tests := []struct {
		name  string
		event nativeEvent
		want  string
	}{
		{
			name:  "explicit field wins",
			event: nativeEvent{MeetingURL: "https://example.com/join"},
			want:  "https://example.com/join",
		},
		{
			name: "conferencing join link fallback",
			event: nativeEvent{
				Conferencing: &nativeConferencing{Profile: "zoom", JoinURL: "https://zoom.us/j/1"},
			},
			want: "https://zoom.us/j/1",
		},
		{
			name:  "absent yields empty",
			event: nativeEvent{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meetingURL(tt.event))
		})
	}
}

func TestMapEvent_NoPermissionsObject(t *testing.T) {
	mapped := mapEvent(nativeEvent{EventUID: "evt"})

	assert.False(t, mapped.Permissions.Delete)
	assert.False(t, mapped.Permissions.Update)
	assert.False(t, mapped.Permissions.ChangeParticipationStatus)
}
