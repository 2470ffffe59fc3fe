// Package tokencache persists the most recent successful authentication
// response in the OS keyring (Keychain, Secret Service, Windows Credential
// Manager) so a restarted primary can resume a session without forcing a new
// interactive flow. Storage is best-effort; failures are logged and never
// block the auth result from reaching the caller.
package tokencache

import (
	"errors"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

const (
	serviceName = "tamshai-ai"
	responseKey = "last_auth_response"
)

type Cache struct {
	service string
	logger  *zap.Logger
}

func New(logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{service: serviceName, logger: logger}
}

// StoreResponse saves the latest auth response, replacing any prior one.
func (c *Cache) StoreResponse(data string) error {
	if err := keyring.Set(c.service, responseKey, data); err != nil {
		c.logger.Warn("failed to store auth response in keyring", zap.Error(err))
		return err
	}
	return nil
}

// LastResponse returns the stored auth response, or found=false when the
// keyring has none.
func (c *Cache) LastResponse() (string, bool) {
	data, err := keyring.Get(c.service, responseKey)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			c.logger.Warn("failed to read auth response from keyring", zap.Error(err))
		}
		return "", false
	}
	return data, true
}

// Clear removes the stored response. Absence is not an error.
func (c *Cache) Clear() error {
	err := keyring.Delete(c.service, responseKey)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		c.logger.Warn("failed to clear auth response from keyring", zap.Error(err))
		return err
	}
	return nil
}
