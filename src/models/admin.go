package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// AdminIdentity is the set of usernames allowed to log in, sharing one
// password. Loaded once at startup and immutable for the process lifetime.
type AdminIdentity struct {
	usernames    map[string]struct{}
	passwordHash []byte
}

// NewAdminIdentity builds the identity set from the configured usernames
// and shared password. The set must be non-empty.
func NewAdminIdentity(usernames []string, password string) (*AdminIdentity, error) {
	if len(usernames) == 0 {
		return nil, errors.New("admin identity set must not be empty")
	}
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(usernames))
	for _, u := range usernames {
		set[u] = struct{}{}
	}

	return &AdminIdentity{usernames: set, passwordHash: hash}, nil
}

// Verify reports whether the credentials match a configured admin.
// The password comparison goes through bcrypt, so it does not leak timing.
func (ai *AdminIdentity) Verify(username, password string) bool {
	if _, ok := ai.usernames[username]; !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(ai.passwordHash, []byte(password)) == nil
}
