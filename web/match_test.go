/* match_test.go
 * Contains unit tests for the match webhook handler
 */

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"patota-bot/api/api"
	"patota-bot/api/shared"
	"patota-bot/api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, announce func(string)) (*Server, *api.MockBackend) {
	t.Helper()
	backend := &api.MockBackend{Match: &shared.Match{
		MatchID:   "m1",
		GroupID:   "g1",
		PlaceName: "Campo 7",
		Status:    shared.StatusCreated,
	}}
	s := &store.Store{}
	require.NoError(t, s.UpsertAccount(shared.Account{
		UserID:        "u1",
		Email:         "alice@example.com",
		AccessToken:   "tok",
		ActiveGroupID: "g1",
	}))
	a, err := api.NewAPI(backend, s)
	require.NoError(t, err)

	return &Server{api: a, groupID: "g1", announce: announce}, backend
}

func TestMatchWebhookHandler_MethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/webhooks/match", nil)
	w := httptest.NewRecorder()

	srv.MatchWebhookHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMatchWebhookHandler_BadBody(t *testing.T) {
	srv, _ := testServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/match", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	srv.MatchWebhookHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchWebhookHandler_OtherGroupIgnored(t *testing.T) {
	announced := make(chan string, 1)
	srv, backend := testServer(t, func(msg string) { announced <- msg })

	body := `{"groupId":"other","matchId":"m9","event":"score-changed"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/match", strings.NewReader(body))
	w := httptest.NewRecorder()

	srv.MatchWebhookHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	select {
	case <-announced:
		t.Fatal("event for another group must not be announced")
	case <-time.After(50 * time.Millisecond):
	}
	assert.Empty(t, backend.Calls)
}

func TestMatchWebhookHandler_AnnouncesFreshStatus(t *testing.T) {
	announced := make(chan string, 1)
	srv, _ := testServer(t, func(msg string) { announced <- msg })

	body := `{"groupId":"g1","matchId":"m1","event":"invite-changed"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/match", strings.NewReader(body))
	w := httptest.NewRecorder()

	srv.MatchWebhookHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	select {
	case msg := <-announced:
		assert.Contains(t, msg, "invite-changed")
		assert.Contains(t, msg, "Campo 7")
	case <-time.After(time.Second):
		t.Fatal("expected an announcement")
	}
}

func TestMatchWebhookHandler_NoAnnounceCallback(t *testing.T) {
	srv, _ := testServer(t, nil)

	body := `{"groupId":"g1","matchId":"m1","event":"score-changed"}`
	req := httptest.NewRequest(http.MethodPost, "/webhooks/match", strings.NewReader(body))
	w := httptest.NewRecorder()

	srv.MatchWebhookHandler(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

// region Config tests

func TestConfig_Fields(t *testing.T) {
	cfg := Config{
		Addr:    ":8080",
		GroupID: "g1",
	}

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "g1", cfg.GroupID)
	assert.Nil(t, cfg.API)
}

// endregion
