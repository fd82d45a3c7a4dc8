package google

import (
	"fmt"

	"github.com/custodia-labs/unical/internal/core/domain"
)

const (
	// defaultMaxResults is the page size used when the query does not ask
	// for one.
	defaultMaxResults = 100
	// maxResultsCeiling is the largest page size the Calendar API accepts.
	// Larger requests are silently clamped, not rejected.
	maxResultsCeiling = 2500
)

// Config holds the Google connector's static configuration. Client
// credentials are required; per-request auth flows through each call.
type Config struct {
	// ClientID is the OAuth client identifier.
	ClientID string
	// ClientSecret is the OAuth client secret.
	ClientSecret string
	// MaxResults is the default page size for list requests.
	MaxResults int64
}

// Validate checks the configuration required at construction time.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: google: nil config", domain.ErrConfiguration)
	}
	if c.ClientID == "" {
		return fmt.Errorf("%w: google: missing client id", domain.ErrConfiguration)
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("%w: google: missing client secret", domain.ErrConfiguration)
	}
	return nil
}

// clampMaxResults applies the default and the API ceiling.
func clampMaxResults(requested, configured int64) int64 {
	n := requested
	if n <= 0 {
		n = configured
	}
	if n <= 0 {
		n = defaultMaxResults
	}
	if n > maxResultsCeiling {
		n = maxResultsCeiling
	}
	return n
}
