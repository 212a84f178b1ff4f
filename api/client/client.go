/* client.go
 * Contains the HTTP wrapper around the patota backend. Every request carries the active
 * account's bearer token; a 401 triggers one single-flight token refresh followed by
 * exactly one retry. All other statuses propagate to the caller unmodified.
 */

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"patota-bot/api/shared"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// SessionSource is the slice of the session store the wrapper needs: a snapshot of the
// active account, and the ability to swap its tokens after a refresh.
type SessionSource interface {
	GetActive() (shared.Account, bool)
	UpdateActive(patch shared.AccountPatch) error
}

// Client wraps all communication with the backend
type Client struct {
	baseURL  string
	http     *http.Client
	sessions SessionSource
	limiter  *rate.Limiter
	refresh  singleflight.Group
}

// NewClient creates a Client for the given base URL. The session source supplies bearer
// tokens and receives refreshed ones.
func NewClient(baseURL string, sessions SessionSource) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("a session source is required")
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 30 * time.Second},
		sessions: sessions,
		limiter:  rate.NewLimiter(rate.Limit(10), 20),
	}, nil
}

// do performs one authenticated round trip. On a 401 it refreshes the tokens and retries
// the original request once; a failed refresh propagates the original 401.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, body, out any, retried bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	// A token that is already expired is guaranteed to bounce, so refresh up front and
	// save the wasted round trip. Failure here is not fatal; the 401 path still covers us.
	if acc, ok := c.sessions.GetActive(); ok && !retried && tokenExpired(acc.AccessToken) {
		_ = c.refreshTokens(ctx)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if acc, ok := c.sessions.GetActive(); ok && acc.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+acc.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !retried {
		if rerr := c.refreshTokens(ctx); rerr == nil {
			return c.send(ctx, method, path, body, out, true)
		}
		// refresh failed: the original 401 is the caller's problem, the stale session
		// is left in place for a manual logout
		return newAPIError(resp)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// refreshTokens exchanges the active account's refresh token for a new token pair and
// stores it. Single-flight: concurrent callers share one refresh call and its outcome,
// since racing refreshes could invalidate each other's refresh tokens.
func (c *Client) refreshTokens(ctx context.Context) error {
	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		acc, ok := c.sessions.GetActive()
		if !ok || acc.RefreshToken == "" {
			return nil, fmt.Errorf("no refresh token available for the active account")
		}

		data, err := json.Marshal(refreshRequest{RefreshToken: acc.RefreshToken, AccessToken: acc.AccessToken})
		if err != nil {
			return nil, err
		}
		// Built by hand instead of going through send, which would recurse into this
		// refresh on a 401
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/Authentication/refresh-token", bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if acc.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+acc.AccessToken)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("token refresh failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newAPIError(resp)
		}

		var tokens tokenResponse
		if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
			return nil, fmt.Errorf("failed to decode refresh response: %w", err)
		}
		access, refresh := tokens.NormalizeTokens()
		if access == "" {
			return nil, fmt.Errorf("refresh response carried no access token")
		}
		if refresh == "" {
			// the backend does not always rotate the refresh token
			refresh = acc.RefreshToken
		}
		return nil, c.sessions.UpdateActive(shared.AccountPatch{AccessToken: &access, RefreshToken: &refresh})
	})
	return err
}

// tokenExpired reads the exp claim without verifying the signature; verification is the
// server's job, the client only wants to know whether sending this token is pointless.
// Tokens that do not parse or carry no exp are treated as live.
func tokenExpired(token string) bool {
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}
