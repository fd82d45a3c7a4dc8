package google

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/logger"
)

// watchDelimiter joins the caller-chosen channel id and the
// server-assigned resource id into the single opaque channel identifier
// the unified contract requires. Three characters, not expected to appear
// in either id.
const watchDelimiter = ":::"

// packChannelID builds the packed channel identifier.
func packChannelID(channelID, resourceID string) string {
	return channelID + watchDelimiter + resourceID
}

// unpackChannelID splits a packed channel identifier back into its two
// parts. Fails when the split does not yield exactly two parts.
func unpackChannelID(packed string) (channelID, resourceID string, err error) {
	parts := strings.Split(packed, watchDelimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: malformed channel id %q", domain.ErrValidation, packed)
	}
	return parts[0], parts[1], nil
}

// WatchEvents registers a push-notification channel for a calendar.
// Google issues two identifiers on creation; the returned handle packs
// them so stop-watch needs only one opaque string.
func (c *Connector) WatchEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.WatchChannel, error) {
	if q.CallbackURL == "" {
		return nil, fmt.Errorf("%w: missing callbackUrl", domain.ErrValidation)
	}

	auth, err := c.ensureFresh(ctx, auth)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := c.service(ctx, auth)
	if err != nil {
		return nil, err
	}

	channel := &calendar.Channel{
		Id:      uuid.NewString(),
		Type:    "web_hook",
		Address: q.CallbackURL,
	}

	res, err := svc.Events.Watch(targetCalendar(q), channel).Context(ctx).Do()
	if err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	logger.Debug("google: watch channel %s opened for %s", res.Id, targetCalendar(q))
	return &domain.WatchChannel{ChannelID: packChannelID(res.Id, res.ResourceId)}, nil
}

// StopWatchEvents tears down a push-notification channel created by
// WatchEvents. The packed channel identifier must split back into its
// two original parts.
func (c *Connector) StopWatchEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.WatchChannel, error) {
	channelID, resourceID, err := unpackChannelID(q.ChannelID)
	if err != nil {
		return nil, err
	}

	auth, err = c.ensureFresh(ctx, auth)
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	svc, err := c.service(ctx, auth)
	if err != nil {
		return nil, err
	}

	stop := &calendar.Channel{Id: channelID, ResourceId: resourceID}
	if err := svc.Channels.Stop(stop).Context(ctx).Do(); err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	logger.Debug("google: watch channel %s stopped", channelID)
	return &domain.WatchChannel{ChannelID: q.ChannelID}, nil
}
