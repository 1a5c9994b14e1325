// Package session persists the signed-in state of a browser: the backend's
// bearer token and the user's profile, always written and cleared together.
package session

import (
	"context"
	"errors"
)

// Keys held for every session.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrIncomplete is returned when a caller tries to persist a token without a
// user profile or the other way round.
var ErrIncomplete = errors.New("session: token and user must be set together")

// Values is the persisted key-value pair of a session.
type Values map[string]string

func (v Values) complete() bool {
	return v[KeyToken] != "" && v[KeyUser] != ""
}

// Store is the persistence backend for sessions. Implementations must make
// Save and Delete atomic: readers never observe one key without the other.
type Store interface {
	// Load returns the values stored for id. An unknown id yields empty
	// values and no error.
	Load(ctx context.Context, id string) (Values, error)
	Save(ctx context.Context, id string, values Values) error
	Delete(ctx context.Context, id string) error
}
