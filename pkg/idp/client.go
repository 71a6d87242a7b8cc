package idp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Client talks to the identity provider over HTTPS. It is stateless and
// safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client. Useful for tests
// and for callers that need custom transport settings or retry policy;
// this package itself never retries.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a provider client from config.
func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	if base == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("base URL is required"))
	}
	if _, err := url.Parse(base); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	c := &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CurrentPrincipal resolves the principal behind a session token.
// Returns ErrSessionInvalid for missing, expired or malformed sessions and
// ErrProviderUnavailable when the provider cannot be reached.
func (c *Client) CurrentPrincipal(ctx context.Context, sessionToken string) (*Principal, error) {
	if sessionToken == "" {
		return nil, ErrSessionInvalid
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/v1/session")
	if err != nil {
		return nil, errors.Join(ErrProviderUnavailable, err)
	}
	req.Header.Set("X-Session-Token", sessionToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var p Principal
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, errors.Join(ErrProviderUnavailable, err)
		}
		if p.ID == uuid.Nil {
			return nil, errors.Join(ErrProviderUnavailable, errors.New("provider returned principal without id"))
		}
		return &p, nil
	case http.StatusUnauthorized, http.StatusNotFound:
		return nil, ErrSessionInvalid
	default:
		return nil, errors.Join(ErrProviderUnavailable, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// Membership looks up the principal's role within an organization.
// Returns ErrMembershipNotFound when the principal is not a member; a
// nonexistent organization looks exactly the same to the caller.
func (c *Client) Membership(ctx context.Context, principalID, tenantID uuid.UUID) (*Membership, error) {
	if principalID == uuid.Nil || tenantID == uuid.Nil {
		return nil, ErrMembershipNotFound
	}

	path := fmt.Sprintf("/v1/organizations/%s/members/%s", tenantID, principalID)
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, errors.Join(ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var m Membership
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			return nil, errors.Join(ErrProviderUnavailable, err)
		}
		if m.Role == "" {
			return nil, errors.Join(ErrProviderUnavailable, errors.New("provider returned membership without role"))
		}
		return &m, nil
	case http.StatusNotFound, http.StatusForbidden:
		return nil, ErrMembershipNotFound
	default:
		return nil, errors.Join(ErrProviderUnavailable, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
