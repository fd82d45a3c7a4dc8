package google

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/unical/internal/core/domain"
)

func TestChannelID_RoundTrip(t *testing.T) {
	packed := packChannelID("A", "B")

	channelID, resourceID, err := unpackChannelID(packed)
	require.NoError(t, err)
	assert.Equal(t, "A", channelID)
	assert.Equal(t, "B", resourceID)
}

func TestUnpackChannelID_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		packed string
	}{
		{"no delimiter", "just-one-id"},
		{"empty", ""},
		{"missing resource id", "A:::"},
		{"missing channel id", ":::B"},
		{"two delimiters", "A:::B:::C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := unpackChannelID(tt.packed)
			assert.True(t, errors.Is(err, domain.ErrValidation))
		})
	}
}
