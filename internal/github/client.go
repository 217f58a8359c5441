// Package github wraps the two GitHub REST calls the workflow needs: token
// validation and repository creation.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v82/github"
)

// DefaultTimeout bounds every API call when no other timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client issues authenticated calls against the GitHub REST API. The zero
// base URL targets api.github.com; tests inject an httptest server URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a Client against the production API.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{timeout: timeout}
}

// NewClientWithBaseURL creates a Client against an alternate API root,
// typically an httptest server.
func NewClientWithBaseURL(baseURL string, httpClient *http.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, timeout: timeout}
}

func (c *Client) api(token string) (*gh.Client, error) {
	client := gh.NewClient(c.httpClient).WithAuthToken(token)
	if c.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing API base URL: %w", err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// ValidateToken checks the token against the authenticated-user endpoint and
// returns the canonical login reported by GitHub. The canonical value wins
// over whatever the user typed.
func (c *Client) ValidateToken(ctx context.Context, token string) (string, error) {
	api, err := c.api(token)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	user, _, err := api.Users.Get(ctx, "")
	if err != nil {
		return "", mapError(err)
	}
	login := user.GetLogin()
	if login == "" {
		return "", errors.New("github: user endpoint returned no login")
	}
	return login, nil
}

// CreateRepository creates a repository under the authenticated user and
// returns its clone URL. Anything but HTTP 201 aborts the operation; nothing
// local has changed at that point, so there is no cleanup.
func (c *Client) CreateRepository(ctx context.Context, token, name string, private bool) (string, error) {
	api, err := c.api(token)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	repo, resp, err := api.Repositories.Create(ctx, "", &gh.Repository{
		Name:    gh.Ptr(name),
		Private: gh.Ptr(private),
	})
	if err != nil {
		return "", mapError(err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "unexpected status creating repository"}
	}

	cloneURL := repo.GetCloneURL()
	if cloneURL == "" {
		return "", errors.New("github: created repository has no clone URL")
	}
	return cloneURL, nil
}
