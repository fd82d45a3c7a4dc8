package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/unical/internal/adapters/driven/config/file"
	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
)

// stubConnector implements the full capability surface with canned
// responses, recording the queries it receives.
type stubConnector struct {
	name string

	calendarPage *domain.CalendarPage
	eventPage    *domain.EventPage
	eventResult  *domain.EventResult
	channel      *domain.WatchChannel
	refreshed    domain.Auth
	err          error

	lastQuery domain.Query
}

func (s *stubConnector) Name() string { return s.name }

func (s *stubConnector) ListCalendars(_ context.Context, _ domain.Auth, q domain.Query) (*domain.CalendarPage, error) {
	s.lastQuery = q
	return s.calendarPage, s.err
}

func (s *stubConnector) GetCalendar(_ context.Context, _ domain.Auth, q domain.Query) (*domain.CalendarResult, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CalendarResult{}, nil
}

func (s *stubConnector) ListEvents(_ context.Context, _ domain.Auth, q domain.Query) (*domain.EventPage, error) {
	s.lastQuery = q
	return s.eventPage, s.err
}

func (s *stubConnector) GetEvent(_ context.Context, _ domain.Auth, q domain.Query) (*domain.EventResult, error) {
	s.lastQuery = q
	if s.err != nil {
		return nil, s.err
	}
	return &domain.EventResult{}, nil
}

func (s *stubConnector) GetNextEvent(_ context.Context, _ domain.Auth, q domain.Query) (*domain.EventResult, error) {
	s.lastQuery = q
	return s.eventResult, s.err
}

func (s *stubConnector) WatchEvents(_ context.Context, _ domain.Auth, q domain.Query) (*domain.WatchChannel, error) {
	s.lastQuery = q
	return s.channel, s.err
}

func (s *stubConnector) StopWatchEvents(_ context.Context, _ domain.Auth, q domain.Query) (*domain.WatchChannel, error) {
	s.lastQuery = q
	return s.channel, s.err
}

func (s *stubConnector) RefreshCredentials(_ context.Context, _ domain.Auth) (domain.Auth, error) {
	return s.refreshed, s.err
}

func (s *stubConnector) RevokeCredentials(_ context.Context, _ domain.Auth) error {
	return s.err
}

// setupTestCLI wires a stub connector and a temp config store with
// stored credentials, returning the stub and a cleanup func.
func setupTestCLI(t *testing.T) *stubConnector {
	t.Helper()

	stub := &stubConnector{
		name: "stub",
		refreshed: domain.Auth{
			AccessToken:    "access",
			RefreshToken:   "refresh",
			ExpirationDate: time.Now().Add(time.Hour),
		},
	}

	reg := services.NewRegistry()
	require.NoError(t, reg.Register(stub))

	testStore, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, testStore.SetAuth("stub", domain.Auth{
		AccessToken:    "access",
		RefreshToken:   "refresh",
		ExpirationDate: time.Now().Add(time.Hour),
	}))

	oldRegistry, oldStore := registry, store
	Configure(reg, testStore)
	t.Cleanup(func() { Configure(oldRegistry, oldStore) })

	return stub
}

// resetFlags restores every flag in the command tree to its default so
// one test's flag values do not leak into the next Execute call.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}
