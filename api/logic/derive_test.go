/* derive_test.go
 * Contains unit tests for the pure derivation functions in derive.go
 */

package logic

import (
	"math"
	"strconv"
	"testing"
	"time"

	"patota-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// region roster partition tests

func TestPartitionRoster(t *testing.T) {
	players := []shared.MatchPlayer{
		{MatchPlayerID: "1", InviteResponse: shared.InviteAccepted},
		{MatchPlayerID: "2", InviteResponse: shared.InvitePending},
		{MatchPlayerID: "3", InviteResponse: shared.InviteRejected},
		{MatchPlayerID: "4", InviteResponse: shared.InviteAccepted},
	}

	accepted, rejected, pending := PartitionRoster(players)

	assert.Len(t, accepted, 2)
	assert.Len(t, rejected, 1)
	assert.Len(t, pending, 1)
}

func TestPartitionRoster_NilInput(t *testing.T) {
	accepted, rejected, pending := PartitionRoster(nil)

	assert.Empty(t, accepted)
	assert.Empty(t, rejected)
	assert.Empty(t, pending)
}

func TestPartitionRoster_UnknownResponseTreatedAsPending(t *testing.T) {
	players := []shared.MatchPlayer{{MatchPlayerID: "1", InviteResponse: 0}}

	accepted, _, pending := PartitionRoster(players)

	assert.Empty(t, accepted)
	assert.Len(t, pending, 1)
}

// endregion

// region capacity tests

func TestMaxPlayers_FieldPriority(t *testing.T) {
	// maxPlayers wins over both aliases
	s := shared.GroupSettings{MaxPlayers: intPtr(10), MaxPlayersPerMatch: intPtr(14), MaxPlayersInMatch: intPtr(16)}
	assert.Equal(t, 10, MaxPlayers(s))

	// first alias wins over the second
	s = shared.GroupSettings{MaxPlayersPerMatch: intPtr(14), MaxPlayersInMatch: intPtr(16)}
	assert.Equal(t, 14, MaxPlayers(s))

	s = shared.GroupSettings{MaxPlayersInMatch: intPtr(16)}
	assert.Equal(t, 16, MaxPlayers(s))
}

func TestMaxPlayers_DefaultAndFloor(t *testing.T) {
	assert.Equal(t, DefaultMaxPlayers, MaxPlayers(shared.GroupSettings{}))
	assert.Equal(t, MinPlayers, MaxPlayers(shared.GroupSettings{MaxPlayers: intPtr(0)}))
	assert.Equal(t, MinPlayers, MaxPlayers(shared.GroupSettings{MaxPlayers: intPtr(-5)}))
}

func TestMaxPlayers_StableUnderRepeatedCalls(t *testing.T) {
	s := shared.GroupSettings{MaxPlayersPerMatch: intPtr(14)}
	first := MaxPlayers(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, MaxPlayers(s))
	}
}

func TestOverLimit(t *testing.T) {
	assert.False(t, OverLimit(10, 12))
	assert.False(t, OverLimit(12, 12))
	assert.True(t, OverLimit(13, 12))
}

// endregion

// region current-match selection tests

func TestSelectCurrentMatch_PrefersMostRecentNonFinalized(t *testing.T) {
	base := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	matches := []shared.Match{
		{MatchID: "old", Status: shared.StatusCreated, PlacedAt: base.Add(-48 * time.Hour)},
		{MatchID: "newest-finalized", Status: shared.StatusFinalized, PlacedAt: base.Add(24 * time.Hour)},
		{MatchID: "current", Status: shared.StatusStarted, PlacedAt: base},
	}

	m := SelectCurrentMatch(matches)

	require.NotNil(t, m)
	assert.Equal(t, "current", m.MatchID)
}

func TestSelectCurrentMatch_AllFinalized(t *testing.T) {
	matches := []shared.Match{
		{MatchID: "a", Status: shared.StatusFinalized},
		{MatchID: "b", Status: shared.StatusFinalized},
	}
	assert.Nil(t, SelectCurrentMatch(matches))
}

func TestSelectCurrentMatch_EmptyList(t *testing.T) {
	assert.Nil(t, SelectCurrentMatch(nil))
	assert.Nil(t, SelectCurrentMatch([]shared.Match{}))
}

// endregion

// region CanAct tests

func TestCanAct_AdminActsOnAnyone(t *testing.T) {
	assert.True(t, CanAct(true, "p1", "p2"))
	assert.True(t, CanAct(true, "", "p2"))
}

func TestCanAct_NonAdminOwnRecordOnly(t *testing.T) {
	assert.True(t, CanAct(false, "p1", "p1"))
	assert.True(t, CanAct(false, " p1 ", "P1"))
	assert.False(t, CanAct(false, "p1", "p2"))
}

func TestCanAct_NoActivePlayer(t *testing.T) {
	assert.False(t, CanAct(false, "", "p1"))
	assert.False(t, CanAct(false, "   ", "p1"))
}

// endregion

// region weight formatting tests

func TestFormatWeight_RoundTrip(t *testing.T) {
	for _, w := range []float64{0, 1.5, 7.123, 99.9994, 0.0004} {
		got := FormatWeight(w)
		parsed, err := strconv.ParseFloat(got, 64)
		require.NoError(t, err)
		assert.InDelta(t, w, parsed, 0.0005)
	}
}

func TestFormatWeight_NonFinite(t *testing.T) {
	assert.Equal(t, WeightPlaceholder, FormatWeight(math.NaN()))
	assert.Equal(t, WeightPlaceholder, FormatWeight(math.Inf(1)))
	assert.Equal(t, WeightPlaceholder, FormatWeight(math.Inf(-1)))
}

// endregion

// region date+time combination tests

func TestCombineDateTime(t *testing.T) {
	ts, err := CombineDateTime("2026-09-05", "19:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 5, 19, 30, 0, 0, time.UTC), ts)
}

func TestCombineDateTime_InvalidParts(t *testing.T) {
	_, err := CombineDateTime("05/09/2026", "19:30")
	assert.Error(t, err)

	_, err = CombineDateTime("2026-09-05", "7pm")
	assert.Error(t, err)
}

// endregion
