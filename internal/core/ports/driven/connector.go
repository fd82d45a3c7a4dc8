package driven

import (
	"context"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// Connector is the minimal contract every backend implements. A connector
// instance holds only static configuration (client id/secret); auth and
// query state flow through each call and are never stored on the instance,
// so concurrent calls with different credentials do not interfere.
type Connector interface {
	// Name returns the connector identifier used for registration and
	// dispatch. Lookup is case-insensitive.
	Name() string
}

// CalendarLister lists the calendars an account can access.
type CalendarLister interface {
	ListCalendars(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.CalendarPage, error)
}

// CalendarGetter fetches a single calendar. Optional: not every backend
// exposes a single-calendar endpoint.
type CalendarGetter interface {
	GetCalendar(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.CalendarResult, error)
}

// EventLister lists events within a query window.
type EventLister interface {
	ListEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventPage, error)
}

// EventGetter fetches a single event. Optional.
type EventGetter interface {
	GetEvent(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventResult, error)
}

// NextEventGetter returns the earliest future event for a calendar.
// Optional.
type NextEventGetter interface {
	GetNextEvent(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.EventResult, error)
}

// EventWatcher registers and tears down push-notification channels.
// Optional.
type EventWatcher interface {
	WatchEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.WatchChannel, error)
	StopWatchEvents(ctx context.Context, auth domain.Auth, q domain.Query) (*domain.WatchChannel, error)
}

// CredentialRefresher exchanges an expiring refresh token for new
// credentials. The returned Auth is a new value; the caller's copy is
// never mutated. A refresh that actually rotates the token emits a
// credential-update notification before returning.
type CredentialRefresher interface {
	RefreshCredentials(ctx context.Context, auth domain.Auth) (domain.Auth, error)
}

// CredentialRevoker invalidates the refresh token server-side. Revoking an
// already-revoked token reports domain.ErrAlreadyRevoked, which callers
// may treat as success.
type CredentialRevoker interface {
	RevokeCredentials(ctx context.Context, auth domain.Auth) error
}
