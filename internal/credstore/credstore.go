package credstore

import (
	"context"
	"errors"
)

// Credentials is the access/refresh token pair issued at login.
type Credentials struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// Empty reports whether the pair is unusable. A pair with only one
// token present counts as empty: both tokens are required to make
// authenticated calls.
func (c Credentials) Empty() bool {
	return c.Access == "" || c.Refresh == ""
}

// ErrNotFound is returned by Get when no credential pair is stored.
var ErrNotFound = errors.New("credentials not found")

// Store defines durable storage for the credential pair.
type Store interface {
	// Get returns the stored credential pair.
	// Returns ErrNotFound if nothing is stored or the pair is incomplete.
	Get(ctx context.Context) (Credentials, error)

	// Set overwrites the stored credential pair.
	Set(ctx context.Context, creds Credentials) error

	// Clear removes the stored credential pair (logout).
	Clear(ctx context.Context) error
}
