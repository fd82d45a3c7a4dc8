package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/unical/internal/core/domain"
)

func TestWatchCmd_RequiresCallback(t *testing.T) {
	setupTestCLI(t)

	_, err := execute(t, "watch", "--connector", "stub")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "callback")
}

func TestWatchCmd_OpensChannel(t *testing.T) {
	stub := setupTestCLI(t)
	stub.channel = &domain.WatchChannel{ChannelID: "chn-1"}

	out, err := execute(t, "watch", "--connector", "stub",
		"--calendar", "cal-1", "--callback", "https://example.com/hook")

	require.NoError(t, err)
	assert.Contains(t, out, "chn-1")
	assert.Equal(t, "https://example.com/hook", stub.lastQuery.CallbackURL)
	assert.Equal(t, "cal-1", stub.lastQuery.CalendarID)
}

func TestUnwatchCmd_ClosesChannel(t *testing.T) {
	stub := setupTestCLI(t)
	stub.channel = &domain.WatchChannel{ChannelID: "chn-1"}

	out, err := execute(t, "unwatch", "--connector", "stub", "--channel", "chn-1")

	require.NoError(t, err)
	assert.Contains(t, out, "Channel closed: chn-1")
	assert.Equal(t, "chn-1", stub.lastQuery.ChannelID)
}
