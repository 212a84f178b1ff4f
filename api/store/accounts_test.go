/* accounts_test.go
 * Contains unit tests for the session store account operations. Stores are built without
 * collections so state stays in memory; persistence itself is covered by the integration
 * test in store_test.go.
 */

package store

import (
	"testing"

	"patota-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func testAccount(id string) shared.Account {
	return shared.Account{
		UserID:       id,
		Name:         "User " + id,
		Email:        id + "@example.com",
		AccessToken:  "access-" + id,
		RefreshToken: "refresh-" + id,
	}
}

func TestUpsertAccount_InsertsAndActivates(t *testing.T) {
	s := &Store{}

	require.NoError(t, s.UpsertAccount(testAccount("u1")))

	active, ok := s.GetActive()
	require.True(t, ok)
	assert.Equal(t, "u1", active.UserID)
}

func TestUpsertAccount_SecondLoginBecomesActive(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))
	require.NoError(t, s.UpsertAccount(testAccount("u2")))

	active, ok := s.GetActive()
	require.True(t, ok)
	assert.Equal(t, "u2", active.UserID)
	assert.Len(t, s.Accounts(), 2)
}

func TestUpsertAccount_MergeKeepsStoredFields(t *testing.T) {
	s := &Store{}
	acc := testAccount("u1")
	acc.ActiveGroupID = "g1"
	acc.ActivePlayerID = "p1"
	require.NoError(t, s.UpsertAccount(acc))

	// re-login payload has fresh tokens but no group/player selection
	relogin := testAccount("u1")
	relogin.AccessToken = "fresh"
	require.NoError(t, s.UpsertAccount(relogin))

	active, _ := s.GetActive()
	assert.Equal(t, "fresh", active.AccessToken)
	assert.Equal(t, "g1", active.ActiveGroupID, "merge must not wipe the chosen group")
	assert.Equal(t, "p1", active.ActivePlayerID)
}

func TestUpsertAccount_MissingUserID(t *testing.T) {
	s := &Store{}
	assert.Error(t, s.UpsertAccount(shared.Account{Name: "nobody"}))
}

func TestRemoveAccount_PromotesRemaining(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))
	require.NoError(t, s.UpsertAccount(testAccount("u2")))

	// u2 is active; removing it must promote some remaining account
	require.NoError(t, s.RemoveAccount("u2"))

	active, ok := s.GetActive()
	require.True(t, ok)
	assert.Equal(t, "u1", active.UserID)
}

func TestRemoveAccount_LastOneLeavesNoActive(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))
	require.NoError(t, s.RemoveAccount("u1"))

	_, ok := s.GetActive()
	assert.False(t, ok)
	assert.Empty(t, s.Accounts())
}

func TestRemoveAccount_InactiveAccountKeepsActivePointer(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))
	require.NoError(t, s.UpsertAccount(testAccount("u2")))

	require.NoError(t, s.RemoveAccount("u1"))

	active, ok := s.GetActive()
	require.True(t, ok)
	assert.Equal(t, "u2", active.UserID)
}

func TestSetActiveAccount(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))
	require.NoError(t, s.UpsertAccount(testAccount("u2")))

	require.NoError(t, s.SetActiveAccount("u1"))
	active, _ := s.GetActive()
	assert.Equal(t, "u1", active.UserID)

	assert.Error(t, s.SetActiveAccount("ghost"))
}

func TestUpdateActive_MergesFields(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))

	require.NoError(t, s.UpdateActive(shared.AccountPatch{
		AccessToken:   strPtr("rotated"),
		ActiveGroupID: strPtr("g9"),
	}))

	active, _ := s.GetActive()
	assert.Equal(t, "rotated", active.AccessToken)
	assert.Equal(t, "g9", active.ActiveGroupID)
	assert.Equal(t, "refresh-u1", active.RefreshToken, "untouched fields survive")
}

func TestUpdateActive_NoActiveAccountIsNoOp(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.UpdateActive(shared.AccountPatch{AccessToken: strPtr("x")}))
}

func TestUpdateActive_OnlyTouchesActive(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))
	require.NoError(t, s.UpsertAccount(testAccount("u2")))

	require.NoError(t, s.UpdateActive(shared.AccountPatch{AccessToken: strPtr("rotated")}))

	require.NoError(t, s.SetActiveAccount("u1"))
	other, _ := s.GetActive()
	assert.Equal(t, "access-u1", other.AccessToken)
}

func TestLogoutActive(t *testing.T) {
	s := &Store{}
	require.NoError(t, s.UpsertAccount(testAccount("u1")))

	require.NoError(t, s.LogoutActive())
	_, ok := s.GetActive()
	assert.False(t, ok)

	assert.Error(t, s.LogoutActive(), "second logout has nothing to remove")
}

func TestDefaultGroupID_RequiresGUID(t *testing.T) {
	s := &Store{}
	assert.Error(t, s.SetDefaultGroupID("not-a-guid"))
	assert.Empty(t, s.DefaultGroupID())

	require.NoError(t, s.SetDefaultGroupID("6f1f39e0-9df3-4b0f-9a1e-3a8c2d1e4f5b"))
	assert.Equal(t, "6f1f39e0-9df3-4b0f-9a1e-3a8c2d1e4f5b", s.DefaultGroupID())
}

func TestGetActive_NoneSentinel(t *testing.T) {
	s := &Store{}
	acc, ok := s.GetActive()
	assert.False(t, ok)
	assert.Empty(t, acc.UserID)
}
