// Package cronofy implements the unified connector for the Cronofy
// calendar-aggregation API.
package cronofy

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/custodia-labs/unical/internal/connectors/oauth"
	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/ports/driven"
	"github.com/custodia-labs/unical/internal/logger"
)

// Name is the connector identifier.
const Name = "cronofy"

const (
	tokenPath     = "/oauth/token"
	revokePath    = "/oauth/token/revoke"
	calendarsPath = "/v1/calendars"
	eventsPath    = "/v1/events"
	channelsPath  = "/v1/channels"
)

// refreshThreshold is the remaining lifetime below which credentials are
// refreshed. An auth with more than a day left is treated as valid.
const refreshThreshold = 24 * time.Hour

// Ensure Connector implements the capability interfaces it advertises.
// Single-calendar and single-event fetch are deliberately absent: the
// aggregator has no such endpoints.
var (
	_ driven.Connector           = (*Connector)(nil)
	_ driven.CalendarLister      = (*Connector)(nil)
	_ driven.EventLister         = (*Connector)(nil)
	_ driven.NextEventGetter     = (*Connector)(nil)
	_ driven.EventWatcher        = (*Connector)(nil)
	_ driven.CredentialRefresher = (*Connector)(nil)
	_ driven.CredentialRevoker   = (*Connector)(nil)
)

// Connector exposes the unified capability set over the aggregator API.
type Connector struct {
	cfg      *Config
	api      *client
	exchange *oauth.Client
	notify   domain.CredentialListener
	now      func() time.Time
}

// Option customises a Connector.
type Option func(*Connector)

// WithCredentialListener subscribes a listener to credential-update
// notifications.
func WithCredentialListener(l domain.CredentialListener) Option {
	return func(c *Connector) { c.notify = l }
}

// WithClock overrides the time source. Useful for testing.
func WithClock(now func() time.Time) Option {
	return func(c *Connector) { c.now = now }
}

// New creates a Cronofy connector.
func New(cfg *Config, opts ...Option) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.baseURL()
	c := &Connector{
		cfg:      cfg,
		api:      newClient(base),
		exchange: oauth.NewClient(Name, cfg.ClientID, cfg.ClientSecret, base+tokenPath, base+revokePath),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the connector identifier.
func (c *Connector) Name() string {
	return Name
}

// ensureFresh validates the auth and refreshes it when less than a day
// of lifetime remains. The credential-update notification fires before
// the caller issues its primary API call.
func (c *Connector) ensureFresh(ctx context.Context, auth domain.Auth) (domain.Auth, error) {
	if err := auth.Validate(); err != nil {
		return domain.Auth{}, err
	}

	if auth.ExpirationDate.Sub(c.now()) > refreshThreshold {
		return auth, nil
	}

	resp, err := c.exchange.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		return domain.Auth{}, err
	}

	next := auth
	next.AccessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		next.RefreshToken = resp.RefreshToken
	}
	if !resp.Expiry.IsZero() {
		next.ExpirationDate = resp.Expiry
	}

	logger.Debug("cronofy: access token refreshed, expires %s", next.ExpirationDate.Format(time.RFC3339))
	if c.notify != nil {
		c.notify(domain.NewCredentialUpdate(next))
	}
	return next, nil
}

// RefreshCredentials refreshes an expiring auth and returns the new
// value. An auth with more than a day remaining is returned unchanged
// with no notification.
func (c *Connector) RefreshCredentials(ctx context.Context, auth domain.Auth) (domain.Auth, error) {
	return c.ensureFresh(ctx, auth)
}

// RevokeCredentials invalidates the refresh token server-side.
func (c *Connector) RevokeCredentials(ctx context.Context, auth domain.Auth) error {
	if err := auth.Validate(); err != nil {
		return err
	}
	return c.exchange.Revoke(ctx, auth.RefreshToken)
}

type calendarsResponse struct {
	Calendars []nativeCalendar `json:"calendars"`
}

type rawCalendarsResponse struct {
	Calendars []any `json:"calendars"`
}

// ListCalendars lists the calendars across every profile the account has
// linked. The aggregator returns the full set in one response.
func (c *Connector) ListCalendars(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.CalendarPage, error) {
	auth, err := c.ensureFresh(ctx, auth)
	if err != nil {
		return nil, err
	}

	if q.Raw {
		var res rawCalendarsResponse
		if err := c.api.get(ctx, auth.AccessToken, calendarsPath, nil, &res); err != nil {
			return nil, err
		}
		return &domain.CalendarPage{Native: res.Calendars}, nil
	}

	var res calendarsResponse
	if err := c.api.get(ctx, auth.AccessToken, calendarsPath, nil, &res); err != nil {
		return nil, err
	}

	calendars := make([]domain.Calendar, 0, len(res.Calendars))
	for _, item := range res.Calendars {
		calendars = append(calendars, mapCalendar(item))
	}
	return &domain.CalendarPage{Calendars: calendars}, nil
}

type eventsResponse struct {
	Pages  nativePages   `json:"pages"`
	Events []nativeEvent `json:"events"`
}

type rawEventsResponse struct {
	Pages  nativePages `json:"pages"`
	Events []any       `json:"events"`
}

// eventsQuery builds the request parameters, clamping the window to the
// supported range.
func (c *Connector) eventsQuery(q domain.Query) url.Values {
	values := url.Values{}
	values.Set("tzid", eventTimeZone(q))

	from, to := clampWindow(c.now(), q.From, q.To)
	if !from.IsZero() {
		values.Set("from", from.Format(time.RFC3339))
	}
	if !to.IsZero() {
		values.Set("to", to.Format(time.RFC3339))
	}
	if !q.LastModified.IsZero() {
		values.Set("last_modified", q.LastModified.Format(time.RFC3339))
	}
	if q.CalendarID != "" {
		values.Set("calendar_ids[]", q.CalendarID)
	}
	values.Set("include_deleted", strconv.FormatBool(true))
	return values
}

// ListEvents lists events within the query window. A prior response's
// next_page_token is a complete continuation URL and is fetched
// verbatim.
func (c *Connector) ListEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventPage, error) {
	auth, err := c.ensureFresh(ctx, auth)
	if err != nil {
		return nil, err
	}

	path := eventsPath
	var query url.Values
	if q.PageToken != "" {
		path = q.PageToken
	} else {
		query = c.eventsQuery(q)
	}

	if q.Raw {
		var res rawEventsResponse
		if err := c.api.get(ctx, auth.AccessToken, path, query, &res); err != nil {
			return nil, err
		}
		return &domain.EventPage{Native: res.Events, NextPageToken: res.Pages.NextPage}, nil
	}

	var res eventsResponse
	if err := c.api.get(ctx, auth.AccessToken, path, query, &res); err != nil {
		return nil, err
	}

	events := make([]domain.Event, 0, len(res.Events))
	for _, item := range res.Events {
		events = append(events, mapEvent(item))
	}
	return &domain.EventPage{Events: events, NextPageToken: res.Pages.NextPage}, nil
}

// GetNextEvent returns the earliest future event for a calendar, or a
// nil event when none is scheduled. Scans the first page of the future
// window.
func (c *Connector) GetNextEvent(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventResult, error) {
	now := c.now()
	listQuery := q
	listQuery.From = now
	listQuery.To = time.Time{}
	listQuery.Raw = false

	page, err := c.ListEvents(ctx, auth, listQuery)
	if err != nil {
		return nil, err
	}

	var next *domain.Event
	for i := range page.Events {
		event := &page.Events[i]
		if event.Deleted || !event.Start.After(now) {
			continue
		}
		if next == nil || event.Start.Before(next.Start) {
			next = event
		}
	}

	if next == nil {
		return &domain.EventResult{}, nil
	}
	return &domain.EventResult{Event: next}, nil
}

type channelResponse struct {
	Channel struct {
		ChannelID string `json:"channel_id"`
	} `json:"channel"`
}

// WatchEvents registers a push-notification channel. The aggregator
// issues a single identifier, so no packing is needed.
func (c *Connector) WatchEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.WatchChannel, error) {
	if q.CallbackURL == "" {
		return nil, fmt.Errorf("%w: missing callbackUrl", domain.ErrValidation)
	}

	auth, err := c.ensureFresh(ctx, auth)
	if err != nil {
		return nil, err
	}

	body := map[string]any{"callback_url": q.CallbackURL}
	if q.CalendarID != "" {
		body["filters"] = map[string]any{"calendar_ids": []string{q.CalendarID}}
	}

	var res channelResponse
	if err := c.api.post(ctx, auth.AccessToken, channelsPath, body, &res); err != nil {
		return nil, err
	}

	logger.Debug("cronofy: channel %s opened", res.Channel.ChannelID)
	return &domain.WatchChannel{ChannelID: res.Channel.ChannelID}, nil
}

// StopWatchEvents tears down a push-notification channel.
func (c *Connector) StopWatchEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.WatchChannel, error) {
	if q.ChannelID == "" {
		return nil, fmt.Errorf("%w: missing channelId", domain.ErrValidation)
	}

	auth, err := c.ensureFresh(ctx, auth)
	if err != nil {
		return nil, err
	}

	if err := c.api.delete(ctx, auth.AccessToken, channelsPath+"/"+url.PathEscape(q.ChannelID)); err != nil {
		return nil, err
	}

	logger.Debug("cronofy: channel %s closed", q.ChannelID)
	return &domain.WatchChannel{ChannelID: q.ChannelID}, nil
}

// eventTimeZone resolves the zone used to interpret date boundaries.
func eventTimeZone(q domain.Query) string {
	if q.TimeZone != "" {
		return q.TimeZone
	}
	return "Etc/UTC"
}
