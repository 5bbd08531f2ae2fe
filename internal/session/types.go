package session

import (
	"errors"
	"net/http"
	"time"
)

// Session errors
var (
	// ErrUnauthenticated means there is no stored credential pair.
	// No network call has been made; the user has to log in first.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrSessionExpired means the access token was rejected and the
	// refresh attempt failed. The user has to log in again.
	ErrSessionExpired = errors.New("session expired")
)

// Options contains per-request options.
type Options struct {
	// Headers are merged into the request. The Authorization header is
	// always set by the client afterwards and cannot be overridden here.
	Headers http.Header
}

// Token refresh endpoint (rest_framework_simplejwt on the backend side).
const refreshPath = "/api/token/refresh/"

// Timeout
const defaultTimeout = 10 * time.Second
