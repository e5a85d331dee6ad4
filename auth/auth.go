// Package auth validates API keys and resolves them to client identities.
package auth

import (
	"crypto/subtle"

	"github.com/kiranahq/lingocache"
)

// Validator resolves an API key to a client identity.
type Validator interface {
	// Validate returns the client id for the key, or an AuthError.
	Validate(apiKey string) (clientID string, err error)
}

// StaticValidator validates keys against a fixed key->client map loaded
// from configuration.
type StaticValidator struct {
	clients map[string]string
}

// NewStaticValidator creates a validator over the given key->client map.
func NewStaticValidator(keys map[string]string) *StaticValidator {
	clients := make(map[string]string, len(keys))
	for key, client := range keys {
		clients[key] = client
	}
	return &StaticValidator{clients: clients}
}

// Validate implements Validator. Comparison is constant-time per candidate
// key so timing does not leak key prefixes.
func (v *StaticValidator) Validate(apiKey string) (string, error) {
	if apiKey == "" {
		return "", &lingocache.AuthError{Message: "missing API key"}
	}
	for key, client := range v.clients {
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) == 1 {
			return client, nil
		}
	}
	return "", &lingocache.AuthError{Message: "invalid API key"}
}

// Verify StaticValidator implements Validator
var _ Validator = (*StaticValidator)(nil)
