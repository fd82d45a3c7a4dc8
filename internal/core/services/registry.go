// Package services holds the connector registry, the uniform call surface
// over the registered backends.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/ports/driven"
)

// Dispatchable method names. The registry routes a (connector, method)
// pair to the matching capability interface.
const (
	MethodListCalendars  = "calendars.list"
	MethodGetCalendar    = "calendars.get"
	MethodListEvents     = "events.list"
	MethodGetEvent       = "events.get"
	MethodGetNextEvent   = "events.next"
	MethodWatchEvents    = "events.watch"
	MethodStopWatch      = "events.stopWatch"
	MethodRefresh        = "credentials.refresh"
	MethodRevoke         = "credentials.revoke"
)

// Registry maps connector names to connector instances and routes calls
// uniformly. It is an explicit instance owned by the application, built
// once at startup; there is no process-global table.
type Registry struct {
	connectors map[string]driven.Connector
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		connectors: make(map[string]driven.Connector),
	}
}

// Register stores a connector under its lower-cased name, overwriting any
// prior registration under that key.
func (r *Registry) Register(c driven.Connector) error {
	if c == nil {
		return fmt.Errorf("%w: nil connector", domain.ErrConfiguration)
	}
	name := strings.ToLower(strings.TrimSpace(c.Name()))
	if name == "" {
		return fmt.Errorf("%w: connector has no name", domain.ErrConfiguration)
	}
	r.connectors[name] = c
	return nil
}

// Names returns the registered lower-cased connector names. Order is not
// significant.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.connectors))
	for name := range r.connectors {
		names = append(names, name)
	}
	return names
}

// Get resolves a connector by name, case-insensitively.
func (r *Registry) Get(name string) (driven.Connector, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("%w: empty connector name", domain.ErrConnectorNotFound)
	}
	c, ok := r.connectors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrConnectorNotFound, name)
	}
	return c, nil
}

// Dispatch routes a method call to the named connector and returns its
// result unchanged. It performs no transformation and no auth handling:
// pure routing. The connector must satisfy the capability interface for
// the method, otherwise ErrUnsupportedOperation is returned.
//
//nolint:cyclop // one arm per dispatchable method
func (r *Registry) Dispatch(
	ctx context.Context,
	connector, method string,
	auth domain.Auth,
	q domain.Query,
) (any, error) {
	c, err := r.Get(connector)
	if err != nil {
		return nil, err
	}

	switch method {
	case MethodListCalendars:
		if impl, ok := c.(driven.CalendarLister); ok {
			return impl.ListCalendars(ctx, auth, q)
		}
	case MethodGetCalendar:
		if impl, ok := c.(driven.CalendarGetter); ok {
			return impl.GetCalendar(ctx, auth, q)
		}
	case MethodListEvents:
		if impl, ok := c.(driven.EventLister); ok {
			return impl.ListEvents(ctx, auth, q)
		}
	case MethodGetEvent:
		if impl, ok := c.(driven.EventGetter); ok {
			return impl.GetEvent(ctx, auth, q)
		}
	case MethodGetNextEvent:
		if impl, ok := c.(driven.NextEventGetter); ok {
			return impl.GetNextEvent(ctx, auth, q)
		}
	case MethodWatchEvents:
		if impl, ok := c.(driven.EventWatcher); ok {
			return impl.WatchEvents(ctx, auth, q)
		}
	case MethodStopWatch:
		if impl, ok := c.(driven.EventWatcher); ok {
			return impl.StopWatchEvents(ctx, auth, q)
		}
	case MethodRefresh:
		if impl, ok := c.(driven.CredentialRefresher); ok {
			return impl.RefreshCredentials(ctx, auth)
		}
	case MethodRevoke:
		if impl, ok := c.(driven.CredentialRevoker); ok {
			return nil, impl.RevokeCredentials(ctx, auth)
		}
	}

	return nil, fmt.Errorf("%w: %s does not implement %s",
		domain.ErrUnsupportedOperation, c.Name(), method)
}
