package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/subikshagit/Vocab-bot/internal/credstore"
)

// Client performs authenticated requests against the vocab API.
// It attaches the stored access token as a bearer credential and, when
// a call comes back 401, refreshes the access token once and replays
// the original request once. Any other status is returned untouched.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credstore.Store

	// refreshMu serializes token refreshes so concurrent 401s result
	// in a single refresh call.
	refreshMu sync.Mutex
}

// NewClient creates a Client for the API at baseURL using the given
// credential store. timeout <= 0 falls back to the default.
func NewClient(baseURL string, creds credstore.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
	}
}

// Do issues an authenticated request to path (e.g. "/api/quiz-questions/").
// body, if non-nil, is marshalled to JSON.
//
// The returned response can carry any HTTP status; the caller interprets
// it and closes its body. Do fails with ErrUnauthenticated when no
// credential pair is stored and with ErrSessionExpired when a 401 could
// not be recovered by a token refresh.
func (c *Client) Do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	opts *Options,
) (*http.Response, error) {
	creds, err := c.creds.Get(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return nil, ErrUnauthenticated
		}

		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload, opts, creds.Access)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// Access token rejected: refresh once and replay the request once.
	// Whatever the retry returns is final, even another 401.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	access, err := c.refreshAccess(ctx, creds)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, method, path, payload, opts, access)
}

// DoPublic issues an unauthenticated request (login, register). No
// bearer header is attached and a 401 is returned to the caller like
// any other status.
func (c *Client) DoPublic(
	ctx context.Context,
	method string,
	path string,
	body interface{},
) (*http.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	return resp, nil
}

// send issues one HTTP request with the given access token.
func (c *Client) send(
	ctx context.Context,
	method string,
	path string,
	payload []byte,
	opts *Options,
	access string,
) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	if opts != nil {
		for key, values := range opts.Headers {
			for _, value := range values {
				request.Header.Add(key, value)
			}
		}
	}

	// Always last so caller headers cannot drop the bearer credential.
	request.Header.Set("Authorization", "Bearer "+access)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}

	return resp, nil
}

// refreshAccess exchanges the refresh token for a new access token and
// stores it. The refresh token itself is never rotated by the backend.
// On failure the stale pair is left untouched and ErrSessionExpired is
// returned.
func (c *Client) refreshAccess(ctx context.Context, stale credstore.Credentials) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have finished a refresh while we waited for
	// the lock. Use its token instead of refreshing again.
	current, err := c.creds.Get(ctx)
	if err == nil && current.Access != stale.Access {
		return current.Access, nil
	}

	reqBody, err := json.Marshal(map[string]string{"refresh": stale.Refresh})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+refreshPath,
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("%w: refresh request failed: %v", ErrSessionExpired, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: refresh returned status %d", ErrSessionExpired, resp.StatusCode)
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&refreshed); err != nil {
		return "", fmt.Errorf("%w: invalid refresh response: %v", ErrSessionExpired, err)
	}

	if refreshed.Access == "" {
		return "", fmt.Errorf("%w: refresh response missing access token", ErrSessionExpired)
	}

	newCreds := credstore.Credentials{Access: refreshed.Access, Refresh: stale.Refresh}
	if err = c.creds.Set(ctx, newCreds); err != nil {
		return "", fmt.Errorf("failed to store refreshed credentials: %w", err)
	}

	slog.Debug("access token refreshed")

	return refreshed.Access, nil
}
