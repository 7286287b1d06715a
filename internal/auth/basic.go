// Scanserv - Network Scanner HTTP API Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/scanserv

package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNoCredentials is returned when the request carries no Basic credentials.
	ErrNoCredentials = errors.New("no credentials provided")

	// ErrInvalidCredentials is returned for a malformed header or a wrong
	// username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// bcryptCost is the work factor used when hashing configured passwords.
var bcryptCost = 12

// DefaultRealm is sent in the WWW-Authenticate challenge.
const DefaultRealm = "Scanserv"

// BasicAuthManager validates HTTP Basic credentials against a set of users.
// Passwords are held only as bcrypt hashes.
type BasicAuthManager struct {
	users map[string][]byte
	realm string

	// dummy is compared for unknown users so response time does not reveal
	// which usernames exist.
	dummy []byte
}

// NewBasicAuthManager hashes the configured users' passwords. A password that
// is already a bcrypt hash ($2a$, $2b$ or $2y$) is used as is.
func NewBasicAuthManager(users map[string]string) (*BasicAuthManager, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("at least one user is required")
	}

	m := &BasicAuthManager{
		users: make(map[string][]byte, len(users)),
		realm: DefaultRealm,
	}

	for username, password := range users {
		if username == "" {
			return nil, fmt.Errorf("username is required")
		}
		if strings.Contains(username, ":") {
			return nil, fmt.Errorf("username %q must not contain ':'", username)
		}
		if password == "" {
			return nil, fmt.Errorf("password for %q is required", username)
		}

		if isBcryptHash(password) {
			if _, err := bcrypt.Cost([]byte(password)); err != nil {
				return nil, fmt.Errorf("invalid bcrypt hash for %q: %w", username, err)
			}
			m.users[username] = []byte(password)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", username, err)
		}
		m.users[username] = hash
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("scanserv-unknown-user"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	m.dummy = dummy

	return m, nil
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// WithRealm sets the realm announced in challenges.
func (m *BasicAuthManager) WithRealm(realm string) *BasicAuthManager {
	if realm != "" {
		m.realm = realm
	}
	return m
}

// Usernames returns the configured usernames, sorted.
func (m *BasicAuthManager) Usernames() []string {
	names := make([]string, 0, len(m.users))
	for name := range m.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateCredentials checks an Authorization header value and returns the
// authenticated username.
func (m *BasicAuthManager) ValidateCredentials(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrNoCredentials
	}
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", ErrInvalidCredentials
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, "Basic "))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", ErrInvalidCredentials
	}

	if !m.validateUsernamePassword(username, password) {
		return "", ErrInvalidCredentials
	}
	return username, nil
}

// validateUsernamePassword always runs one bcrypt comparison, whether or not
// the user exists.
func (m *BasicAuthManager) validateUsernamePassword(username, password string) bool {
	hash, known := m.lookup(username)
	if !known {
		hash = m.dummy
	}
	passwordMatch := bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
	return known && passwordMatch
}

// lookup finds a user's hash comparing names in constant time.
func (m *BasicAuthManager) lookup(username string) ([]byte, bool) {
	var found []byte
	for name, hash := range m.users {
		if subtle.ConstantTimeCompare([]byte(username), []byte(name)) == 1 {
			found = hash
		}
	}
	return found, found != nil
}

// GetWWWAuthenticateHeader returns the WWW-Authenticate header value sent
// with 401 responses.
func (m *BasicAuthManager) GetWWWAuthenticateHeader() string {
	return fmt.Sprintf(`Basic realm=%q, charset="UTF-8"`, m.realm)
}
