package domain

import (
	"fmt"
	"time"
)

// Auth holds the OAuth credentials a caller supplies with every request.
// It flows through connectors as a value and is never stored on them;
// refresh returns a new Auth rather than mutating the caller's copy.
type Auth struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is exchanged for new access tokens.
	RefreshToken string `json:"refresh_token"`
	// ExpirationDate is when the access token expires.
	ExpirationDate time.Time `json:"expiration_date"`
	// ID is an opaque caller-supplied identifier echoed back on
	// credential-update notifications so the caller can match the
	// rotated tokens to its own records.
	ID string `json:"id,omitempty"`
}

// Validate checks the fields every auth-bearing operation requires.
func (a Auth) Validate() error {
	if a.AccessToken == "" {
		return fmt.Errorf("%w: auth missing access_token", ErrValidation)
	}
	if a.RefreshToken == "" {
		return fmt.Errorf("%w: auth missing refresh_token", ErrValidation)
	}
	if a.ExpirationDate.IsZero() {
		return fmt.Errorf("%w: auth missing expiration_date", ErrValidation)
	}
	return nil
}

// CredentialUpdate is the sole asynchronous output of this layer. It fires
// when a connector rotates an access token so the caller can persist the
// new credentials; the connector itself never stores them.
type CredentialUpdate struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	// ExpirationDate is an ISO-8601 timestamp.
	ExpirationDate string `json:"expiration_date"`
	ID             string `json:"id,omitempty"`
}

// CredentialListener receives credential-update notifications.
type CredentialListener func(CredentialUpdate)

// NewCredentialUpdate builds the notification payload for a rotated Auth.
func NewCredentialUpdate(a Auth) CredentialUpdate {
	return CredentialUpdate{
		AccessToken:    a.AccessToken,
		RefreshToken:   a.RefreshToken,
		ExpirationDate: a.ExpirationDate.Format(time.RFC3339),
		ID:             a.ID,
	}
}
