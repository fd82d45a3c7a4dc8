// Package oauth provides the refresh-token grant and revocation exchanges
// shared by the backend connectors. Only the refresh-trigger policy lives
// in the connectors; the wire exchange is the same POST everywhere.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// TokenResponse holds the response from a refresh-token exchange.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int       `json:"expires_in"`
	Expiry       time.Time `json:"-"`
}

// Client performs token exchanges against one provider's OAuth endpoints.
type Client struct {
	provider     string
	clientID     string
	clientSecret string
	tokenURL     string
	revokeURL    string
	httpClient   *http.Client
}

// NewClient creates an exchange client for a provider.
func NewClient(provider, clientID, clientSecret, tokenURL, revokeURL string) *Client {
	return &Client{
		provider:     provider,
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		revokeURL:    revokeURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetHTTPClient overrides the HTTP client. Useful for testing.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Provider: c.provider, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    decodeOAuthError(resp),
		}
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}

	if tokenResp.ExpiresIn > 0 {
		tokenResp.Expiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	}

	return &tokenResp, nil
}

// Revoke invalidates a refresh token server-side. Revoking a token the
// provider no longer recognises returns domain.ErrAlreadyRevoked, which
// callers may treat as success.
func (c *Client) Revoke(ctx context.Context, token string) error {
	data := url.Values{}
	data.Set("token", token)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.revokeURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Provider: c.provider, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound:
		// Providers answer 400/404 for tokens that are already gone.
		return fmt.Errorf("%w: %s", domain.ErrAlreadyRevoked, decodeOAuthError(resp))
	default:
		return &domain.UpstreamError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Message:    decodeOAuthError(resp),
		}
	}
}

// decodeOAuthError extracts the standard OAuth error fields from a failed
// response body. Returns an empty string when the body is not an OAuth
// error document.
func decodeOAuthError(resp *http.Response) string {
	var errResp struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return ""
	}
	if errResp.Description == "" {
		return errResp.Error
	}
	return errResp.Error + " - " + errResp.Description
}
