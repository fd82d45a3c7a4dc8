package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/unical/internal/adapters/driven/config/file"
	"github.com/custodia-labs/unical/internal/adapters/driving/cli"
	"github.com/custodia-labs/unical/internal/connectors/cronofy"
	"github.com/custodia-labs/unical/internal/connectors/google"
	"github.com/custodia-labs/unical/internal/core/domain"
	"github.com/custodia-labs/unical/internal/core/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	store, err := file.NewConfigStore(os.Getenv("UNICAL_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	registry := services.NewRegistry()
	if err := registerConnectors(registry, store); err != nil {
		return err
	}

	cli.Configure(registry, store)
	return cli.Execute()
}

// registerConnectors builds a connector for every provider with client
// settings in the config file. Each connector gets a listener that
// writes rotated tokens back to the store; the connectors themselves
// never persist credentials.
func registerConnectors(registry *services.Registry, store *file.ConfigStore) error {
	persist := func(name string) domain.CredentialListener {
		return func(update domain.CredentialUpdate) {
			if err := store.ApplyUpdate(name, update); err != nil {
				fmt.Fprintf(os.Stderr, "failed to persist %s credentials: %v\n", name, err)
			}
		}
	}

	if settings, ok := store.ConnectorSettings(google.Name); ok {
		connector, err := google.New(&google.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			MaxResults:   settings.MaxResults,
		}, google.WithCredentialListener(persist(google.Name)))
		if err != nil {
			return fmt.Errorf("configure google connector: %w", err)
		}
		if err := registry.Register(connector); err != nil {
			return err
		}
	}

	if settings, ok := store.ConnectorSettings(cronofy.Name); ok {
		connector, err := cronofy.New(&cronofy.Config{
			ClientID:     settings.ClientID,
			ClientSecret: settings.ClientSecret,
			APIBaseURL:   settings.APIBaseURL,
		}, cronofy.WithCredentialListener(persist(cronofy.Name)))
		if err != nil {
			return fmt.Errorf("configure cronofy connector: %w", err)
		}
		if err := registry.Register(connector); err != nil {
			return err
		}
	}

	return nil
}
