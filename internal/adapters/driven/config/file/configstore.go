package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/unical/internal/core/domain"
)

// ConnectorSettings holds the static configuration for one connector.
type ConnectorSettings struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	MaxResults   int64  `toml:"max_results,omitempty"`
	APIBaseURL   string `toml:"api_base_url,omitempty"`
}

// storedAuth is the on-disk shape of a connector's OAuth credentials.
// The expiration date is kept as an RFC 3339 string so the file stays
// hand-editable.
type storedAuth struct {
	ID             string `toml:"id,omitempty"`
	AccessToken    string `toml:"access_token"`
	RefreshToken   string `toml:"refresh_token"`
	ExpirationDate string `toml:"expiration_date"`
}

type configData struct {
	Connectors  map[string]ConnectorSettings `toml:"connectors,omitempty"`
	Credentials map[string]storedAuth        `toml:"credentials,omitempty"`
}

// ConfigStore is a TOML-backed store for connector settings and
// credentials. Connectors never persist tokens themselves; the CLI
// routes credential-update notifications here.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     configData
}

// NewConfigStore creates a TOML-based config store.
// If configDir is empty, defaults to ~/.unical/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".unical")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// ConnectorSettings returns the stored settings for a connector.
func (s *ConfigStore) ConnectorSettings(connector string) (ConnectorSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.data.Connectors[connector]
	return settings, ok
}

// SetConnectorSettings stores a connector's settings and persists
// immediately.
func (s *ConfigStore) SetConnectorSettings(connector string, settings ConnectorSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.Connectors == nil {
		s.data.Connectors = make(map[string]ConnectorSettings)
	}
	s.data.Connectors[connector] = settings
	return s.save()
}

// Auth returns the stored credentials for a connector, if present with
// a parseable expiration date.
func (s *ConfigStore) Auth(connector string) (domain.Auth, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.data.Credentials[connector]
	if !ok {
		return domain.Auth{}, false
	}

	expiry, err := time.Parse(time.RFC3339, stored.ExpirationDate)
	if err != nil {
		return domain.Auth{}, false
	}
	return domain.Auth{
		AccessToken:    stored.AccessToken,
		RefreshToken:   stored.RefreshToken,
		ExpirationDate: expiry,
		ID:             stored.ID,
	}, true
}

// SetAuth stores a connector's credentials and persists immediately.
func (s *ConfigStore) SetAuth(connector string, auth domain.Auth) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setAuthLocked(connector, storedAuth{
		ID:             auth.ID,
		AccessToken:    auth.AccessToken,
		RefreshToken:   auth.RefreshToken,
		ExpirationDate: auth.ExpirationDate.Format(time.RFC3339),
	})
	return s.save()
}

// ApplyUpdate persists a credential-update notification. Fields the
// notification leaves empty keep their stored values, since a refresh
// response may omit the rotated refresh token.
func (s *ConfigStore) ApplyUpdate(connector string, update domain.CredentialUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.data.Credentials[connector]
	stored.AccessToken = update.AccessToken
	if update.RefreshToken != "" {
		stored.RefreshToken = update.RefreshToken
	}
	if update.ExpirationDate != "" {
		stored.ExpirationDate = update.ExpirationDate
	}
	if update.ID != "" {
		stored.ID = update.ID
	}
	s.setAuthLocked(connector, stored)
	return s.save()
}

// DeleteAuth removes a connector's stored credentials, e.g. after a
// revoke.
func (s *ConfigStore) DeleteAuth(connector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Credentials, connector)
	return s.save()
}

func (s *ConfigStore) setAuthLocked(connector string, stored storedAuth) {
	if s.data.Credentials == nil {
		s.data.Credentials = make(map[string]storedAuth)
	}
	s.data.Credentials[connector] = stored
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the TOML file (caller must hold lock). Tokens live in
// this file, so permissions stay restricted.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. A missing file is not
// an error; the store starts empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.data = configData{}
			return nil
		}
		return err
	}

	var loaded configData
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}
	s.data = loaded
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
