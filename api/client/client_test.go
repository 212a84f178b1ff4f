/* client_test.go
 * Contains unit tests for the HTTP wrapper: bearer injection, single-flight token refresh
 * with one retry, refresh failure propagation and server error surfacing. Uses httptest
 * servers instead of the real backend.
 */

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"patota-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessions implements SessionSource for tests
type fakeSessions struct {
	mu      sync.Mutex
	acc     shared.Account
	has     bool
	updates int
}

func (f *fakeSessions) GetActive() (shared.Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acc, f.has
}

func (f *fakeSessions) UpdateActive(patch shared.AccountPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if patch.AccessToken != nil {
		f.acc.AccessToken = *patch.AccessToken
	}
	if patch.RefreshToken != nil {
		f.acc.RefreshToken = *patch.RefreshToken
	}
	f.updates++
	return nil
}

func newTestClient(t *testing.T, srvURL string, sessions *fakeSessions) *Client {
	t.Helper()
	c, err := NewClient(srvURL, sessions)
	require.NoError(t, err)
	return c
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]shared.Match{})
	}))
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "tok123", RefreshToken: "ref"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	_, err := c.Matches(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestDo_NoActiveAccountSendsNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]shared.Match{})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, &fakeSessions{})

	_, err := c.Matches(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDo_RefreshAndRetryOn401(t *testing.T) {
	var refreshCalls, matchCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Authentication/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "new-token", "refreshToken": "new-refresh"})
	})
	mux.HandleFunc("/api/Matches/group/g1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&matchCalls, 1)
		if r.Header.Get("Authorization") != "Bearer new-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]shared.Match{{MatchID: "m1"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "stale", RefreshToken: "ref1"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	matches, err := c.Matches(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
	assert.EqualValues(t, 2, atomic.LoadInt32(&matchCalls), "original call plus exactly one retry")

	acc, _ := sessions.GetActive()
	assert.Equal(t, "new-token", acc.AccessToken)
	assert.Equal(t, "new-refresh", acc.RefreshToken)
}

// Two overlapping 401s must trigger exactly one refresh call, and both original
// requests must be retried with the resulting new token.
func TestDo_ConcurrentRefreshIsSingleFlight(t *testing.T) {
	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Authentication/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(100 * time.Millisecond) // hold the flight open so the second 401 joins it
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "new-token"})
	})
	mux.HandleFunc("/api/Matches/group/g1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer new-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]shared.Match{{MatchID: "m1"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "stale", RefreshToken: "ref1"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Matches(context.Background(), "g1")
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls), "concurrent 401s must share one refresh")
}

func TestDo_RefreshFailurePropagatesOriginal401(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Authentication/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	mux.HandleFunc("/api/Matches/group/g1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "stale", RefreshToken: "dead"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	_, err := c.Matches(context.Background(), "g1")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// the stale session is left as-is for a manual logout
	acc, _ := sessions.GetActive()
	assert.Equal(t, "stale", acc.AccessToken)
	assert.Equal(t, "dead", acc.RefreshToken)
}

func TestRefresh_KeepsOldRefreshTokenWhenNotRotated(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Authentication/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"token": "new-token"}) // alias field, no refresh token
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "stale", RefreshToken: "keep-me"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	require.NoError(t, c.refreshTokens(context.Background()))

	acc, _ := sessions.GetActive()
	assert.Equal(t, "new-token", acc.AccessToken)
	assert.Equal(t, "keep-me", acc.RefreshToken)
}

func TestDo_ServerErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "invite already accepted"})
	}))
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "tok"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	err := c.StartMatch(context.Background(), "m1")
	require.Error(t, err)
	assert.Equal(t, "invite already accepted", err.Error())
}

func TestDo_GenericFallbackForOpaqueErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	sessions := &fakeSessions{acc: shared.Account{UserID: "u1", AccessToken: "tok"}, has: true}
	c := newTestClient(t, srv.URL, sessions)

	err := c.EndMatch(context.Background(), "m1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", &fakeSessions{})
	assert.Error(t, err)

	_, err = NewClient("http://localhost", nil)
	assert.Error(t, err)
}
