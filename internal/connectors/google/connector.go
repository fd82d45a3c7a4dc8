// Package google implements the unified connector for the Google
// Calendar API, the direct-provider backend.
package google

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/unical/internal/connectors/oauth"
	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/ports/driven"
	"github.com/custodia-labs/unical/internal/logger"
)

// Name is the connector identifier and the provider_name literal on
// unified calendars.
const Name = "google"

const (
	googleTokenURL  = "https://oauth2.googleapis.com/token"
	googleRevokeURL = "https://oauth2.googleapis.com/revoke"
)

// Ensure Connector implements the capability interfaces it advertises.
var (
	_ driven.Connector           = (*Connector)(nil)
	_ driven.CalendarLister      = (*Connector)(nil)
	_ driven.CalendarGetter      = (*Connector)(nil)
	_ driven.EventLister         = (*Connector)(nil)
	_ driven.EventGetter         = (*Connector)(nil)
	_ driven.NextEventGetter     = (*Connector)(nil)
	_ driven.EventWatcher        = (*Connector)(nil)
	_ driven.CredentialRefresher = (*Connector)(nil)
	_ driven.CredentialRevoker   = (*Connector)(nil)
)

// Connector exposes the full unified capability set over the Google
// Calendar API. It holds only static configuration; per-call auth is a
// parameter, so concurrent calls with different credentials do not
// interfere.
type Connector struct {
	cfg      *Config
	exchange *oauth.Client
	limiter  *RateLimiter
	notify   domain.CredentialListener
	endpoint string
	now      func() time.Time
}

// Option customises a Connector.
type Option func(*Connector)

// WithCredentialListener subscribes a listener to credential-update
// notifications. The connector never persists rotated tokens itself.
func WithCredentialListener(l domain.CredentialListener) Option {
	return func(c *Connector) { c.notify = l }
}

// WithEndpoint overrides the Calendar API base URL. Useful for testing.
func WithEndpoint(url string) Option {
	return func(c *Connector) { c.endpoint = url }
}

// WithTokenEndpoints overrides the OAuth endpoints. Useful for testing.
func WithTokenEndpoints(tokenURL, revokeURL string) Option {
	return func(c *Connector) {
		c.exchange = oauth.NewClient(Name, c.cfg.ClientID, c.cfg.ClientSecret, tokenURL, revokeURL)
	}
}

// WithClock overrides the time source. Useful for testing.
func WithClock(now func() time.Time) Option {
	return func(c *Connector) { c.now = now }
}

// New creates a Google connector.
func New(cfg *Config, opts ...Option) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Connector{
		cfg:     cfg,
		limiter: NewRateLimiter(),
		now:     time.Now,
	}
	c.exchange = oauth.NewClient(Name, cfg.ClientID, cfg.ClientSecret, googleTokenURL, googleRevokeURL)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the connector identifier.
func (c *Connector) Name() string {
	return Name
}

// service builds a Calendar API client bound to the given access token.
// A fresh client per call keeps the connector free of request state.
func (c *Connector) service(ctx context.Context, auth domain.Auth) (*calendar.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: auth.AccessToken,
		TokenType:   "Bearer",
	})
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint))
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	return svc, nil
}

// ensureFresh validates the auth and refreshes it when needed. Google
// policy: an auth with an explicit future expiration is treated as valid.
// The credential-update notification fires before the caller issues its
// primary API call.
func (c *Connector) ensureFresh(ctx context.Context, auth domain.Auth) (domain.Auth, error) {
	if err := auth.Validate(); err != nil {
		return domain.Auth{}, err
	}

	if auth.ExpirationDate.After(c.now()) {
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

	logger.Debug("google: access token refreshed, expires %s", next.ExpirationDate.Format(time.RFC3339))
	if c.notify != nil {
		c.notify(domain.NewCredentialUpdate(next))
	}
	return next, nil
}

// RefreshCredentials refreshes an expiring auth and returns the new
// value. A non-expiring auth is returned unchanged with no notification.
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

// ListCalendars lists the calendars on the account's calendar list.
func (c *Connector) ListCalendars(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.CalendarPage, error) {
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

	call := svc.CalendarList.List().
		MaxResults(clampMaxResults(q.MaxResults, c.cfg.MaxResults)).
		ShowDeleted(true)
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}
	if q.SyncToken != "" {
		call = call.SyncToken(q.SyncToken)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	if q.Raw {
		return &domain.CalendarPage{
			Native:        res.Items,
			NextPageToken: res.NextPageToken,
			NextSyncToken: res.NextSyncToken,
		}, nil
	}

	calendars := make([]domain.Calendar, 0, len(res.Items))
	for _, item := range res.Items {
		calendars = append(calendars, mapCalendar(item))
	}
	return &domain.CalendarPage{
		Calendars:     calendars,
		NextPageToken: res.NextPageToken,
		NextSyncToken: res.NextSyncToken,
	}, nil
}

// GetCalendar fetches one calendar-list entry.
func (c *Connector) GetCalendar(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.CalendarResult, error) {
	if q.CalendarID == "" {
		return nil, fmt.Errorf("%w: missing calendarId", domain.ErrValidation)
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

	entry, err := svc.CalendarList.Get(q.CalendarID).Context(ctx).Do()
	if err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	if q.Raw {
		return &domain.CalendarResult{Native: entry}, nil
	}
	mapped := mapCalendar(entry)
	return &domain.CalendarResult{Calendar: &mapped}, nil
}

// ListEvents lists events on one calendar within the query window.
func (c *Connector) ListEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventPage, error) {
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

	calendarID := targetCalendar(q)
	call := svc.Events.List(calendarID).
		MaxResults(clampMaxResults(q.MaxResults, c.cfg.MaxResults)).
		SingleEvents(true).
		ShowDeleted(true)
	if q.TimeZone != "" {
		call = call.TimeZone(q.TimeZone)
	}
	if !q.From.IsZero() {
		call = call.TimeMin(q.From.Format(time.RFC3339))
	}
	if !q.To.IsZero() {
		call = call.TimeMax(q.To.Format(time.RFC3339))
	}
	if !q.LastModified.IsZero() {
		call = call.UpdatedMin(q.LastModified.Format(time.RFC3339))
	}
	if q.PageToken != "" {
		call = call.PageToken(q.PageToken)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	if q.Raw {
		return &domain.EventPage{Native: res.Items, NextPageToken: res.NextPageToken}, nil
	}

	events := make([]domain.Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, mapEvent(item, calendarID))
	}
	return &domain.EventPage{Events: events, NextPageToken: res.NextPageToken}, nil
}

// GetEvent fetches a single event.
func (c *Connector) GetEvent(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventResult, error) {
	if q.EventID == "" {
		return nil, fmt.Errorf("%w: missing eventId", domain.ErrValidation)
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

	calendarID := targetCalendar(q)
	event, err := svc.Events.Get(calendarID, q.EventID).Context(ctx).Do()
	if err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	if q.Raw {
		return &domain.EventResult{Native: event}, nil
	}
	mapped := mapEvent(event, calendarID)
	return &domain.EventResult{Event: &mapped}, nil
}

// GetNextEvent returns the earliest future event on a calendar, or a nil
// event when the calendar has none.
func (c *Connector) GetNextEvent(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventResult, error) {
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

	calendarID := targetCalendar(q)
	call := svc.Events.List(calendarID).
		TimeMin(c.now().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(1)
	if q.TimeZone != "" {
		call = call.TimeZone(q.TimeZone)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		if isRateLimited(err) {
			c.limiter.RecordRateLimitError()
		}
		return nil, wrapError(err)
	}

	if len(res.Items) == 0 {
		return &domain.EventResult{}, nil
	}
	if q.Raw {
		return &domain.EventResult{Native: res.Items[0]}, nil
	}
	mapped := mapEvent(res.Items[0], calendarID)
	return &domain.EventResult{Event: &mapped}, nil
}

// targetCalendar resolves the calendar a query addresses, defaulting to
// the account's primary calendar.
func targetCalendar(q domain.Query) string {
	if q.CalendarID != "" {
		return q.CalendarID
	}
	return "primary"
}
