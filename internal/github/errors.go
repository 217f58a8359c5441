package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	gh "github.com/google/go-github/v82/github"
)

// ErrTimeout indicates the GitHub API did not respond within the configured
// bound. There is no automatic retry; the user re-invokes the action.
var ErrTimeout = errors.New("github: request timed out")

// AuthError indicates the token was rejected (invalid or expired).
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("github: authentication failed (HTTP %d): %s", e.StatusCode, e.Message)
}

// APIError indicates a non-2xx response other than an authentication
// failure. It carries the remote-reported message and status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// mapError applies the shared policy: timeout -> ErrTimeout, 401/403 ->
// AuthError, any other non-2xx -> APIError.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		if status == 401 || status == 403 {
			return &AuthError{StatusCode: status, Message: ghErr.Message}
		}
		return &APIError{StatusCode: status, Message: ghErr.Message}
	}

	return err
}
