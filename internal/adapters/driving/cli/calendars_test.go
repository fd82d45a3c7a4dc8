package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/unical/internal/core/domain"
)

func TestCalendarsCmd_RequiresConnectorFlag(t *testing.T) {
	setupTestCLI(t)

	_, err := execute(t, "calendars")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connector")
}

func TestCalendarsCmd_ListsCalendars(t *testing.T) {
	stub := setupTestCLI(t)
	stub.calendarPage = &domain.CalendarPage{Calendars: []domain.Calendar{
		{ID: "cal-1", Name: "Work", Primary: true},
		{ID: "cal-2", Name: "Shared", ReadOnly: true},
	}}

	out, err := execute(t, "calendars", "--connector", "stub")

	require.NoError(t, err)
	assert.Contains(t, out, "cal-1")
	assert.Contains(t, out, "[primary]")
	assert.Contains(t, out, "[read-only]")
}

func TestCalendarsCmd_JSONOutput(t *testing.T) {
	stub := setupTestCLI(t)
	stub.calendarPage = &domain.CalendarPage{Calendars: []domain.Calendar{
		{ID: "cal-1", Name: "Work"},
	}}

	out, err := execute(t, "calendars", "--connector", "stub", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"id": "cal-1"`)
}

func TestCalendarsCmd_PassesQueryFields(t *testing.T) {
	stub := setupTestCLI(t)
	stub.calendarPage = &domain.CalendarPage{}

	_, err := execute(t, "calendars", "--connector", "stub",
		"--page-token", "cursor", "--sync-token", "sync")

	require.NoError(t, err)
	assert.Equal(t, "cursor", stub.lastQuery.PageToken)
	assert.Equal(t, "sync", stub.lastQuery.SyncToken)
}

func TestCalendarsCmd_MissingCredentials(t *testing.T) {
	setupTestCLI(t)

	_, err := execute(t, "calendars", "--connector", "unknown")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no stored credentials")
}

func TestCalendarsCmd_UnknownConnectorWithStoredAuth(t *testing.T) {
	stub := setupTestCLI(t)
	stub.calendarPage = &domain.CalendarPage{}
	require.NoError(t, store.SetAuth("ghost", domain.Auth{
		AccessToken:    "a",
		RefreshToken:   "r",
		ExpirationDate: stub.refreshed.ExpirationDate,
	}))

	_, err := execute(t, "calendars", "--connector", "ghost")

	assert.ErrorIs(t, err, domain.ErrConnectorNotFound)
}
