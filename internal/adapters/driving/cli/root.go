// Package cli implements the unical command-line interface. It is the
// reference caller of the connector registry: auth is loaded from the
// config store per invocation, and rotated tokens are persisted back
// through the credential listeners wired at startup.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/unical/internal/adapters/driven/config/file"
	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
	"github.com/custodia-labs/unical/internal/logger"
)

var (
	registry *services.Registry
	store    *file.ConfigStore

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "unical",
	Short: "Unified calendar access across providers",
	Long: `unical exposes calendars and events from different providers
through one uniform command surface. Each provider is a connector;
credentials live in the config file and are rotated automatically.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Configure injects the registry and config store the commands use.
func Configure(r *services.Registry, s *file.ConfigStore) {
	registry = r
	store = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func requireSetup() error {
	if registry == nil {
		return errors.New("connector registry not configured")
	}
	if store == nil {
		return errors.New("config store not configured")
	}
	return nil
}

// loadAuth reads the stored credentials for a connector.
func loadAuth(connector string) (domain.Auth, error) {
	auth, ok := store.Auth(connector)
	if !ok {
		return domain.Auth{}, fmt.Errorf(
			"no stored credentials for %q; add them under [credentials.%s] in %s",
			connector, connector, store.Path())
	}
	return auth, nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// parseTimeFlag accepts RFC 3339 timestamps and plain dates.
func parseTimeFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid --%s value %q: want RFC 3339 or YYYY-MM-DD", name, value)
}
