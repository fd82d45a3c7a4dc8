package cronofy

import (
	"fmt"
	"time"

	"github.com/custodia-labs/unical/internal/core/domain"
)

const (
	defaultAPIBaseURL = "https://api.cronofy.com"

	// The aggregator serves a bounded event window: no more than 42 days
	// into the past and 201 days into the future. Out-of-range bounds
	// are silently narrowed, not rejected.
	pastWindowDays   = 42
	futureWindowDays = 201
)

// Config holds the Cronofy connector's static configuration.
type Config struct {
	// ClientID is the OAuth client identifier.
	ClientID string
	// ClientSecret is the OAuth client secret.
	ClientSecret string
	// APIBaseURL overrides the API host, e.g. for a regional data
	// centre. Defaults to the US data centre.
	APIBaseURL string
}

// Validate checks the configuration required at construction time.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: cronofy: nil config", domain.ErrConfiguration)
	}
	if c.ClientID == "" {
		return fmt.Errorf("%w: cronofy: missing client id", domain.ErrConfiguration)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: cronofy: missing client secret", domain.ErrConfiguration)
	}
	return nil
}

func (c *Config) baseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return defaultAPIBaseURL
}

// clampWindow narrows the requested from/to bounds to the supported
// window. Zero bounds are left unset so the API applies its own default.
func clampWindow(now, from, to time.Time) (time.Time, time.Time) {
	floor := now.AddDate(0, 0, -pastWindowDays)
	ceiling := now.AddDate(0, 0, futureWindowDays)

	if !from.IsZero() && from.Before(floor) {
		from = floor
	}
	if !to.IsZero() && to.After(ceiling) {
		to = ceiling
	}
	return from, to
}
